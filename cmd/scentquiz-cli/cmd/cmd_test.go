package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scentquiz/internal/adapters/catalogfile"
	"scentquiz/internal/application"
	"scentquiz/internal/domain"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("SCENTQUIZ_STORAGE_BACKEND", "sqlite")
	t.Setenv("SCENTQUIZ_STORAGE_PATH", filepath.Join(dir, "quiz.db"))
	t.Setenv("SCENTQUIZ_AUTH_BCRYPT_COST", "4")
	t.Setenv("SCENTQUIZ_LOGGING_LEVEL", "error")
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetRecommendFlags() {
	recMood, recOccasion, recUser = "", "", ""
	recNotes = nil
}

func TestOptionsCommand(t *testing.T) {
	setupEnv(t)
	out, _, err := execute(t, "options")
	require.NoError(t, err)
	assert.Contains(t, out, "mood:     Romantic, Bold, Fresh, Mysterious, Cozy, Energetic")
	assert.Contains(t, out, "occasion: Everyday Wear, Date Night, Work, Party")
}

func TestUserRecommendHistory(t *testing.T) {
	setupEnv(t)
	t.Cleanup(resetRecommendFlags)

	out, _, err := execute(t, "user", "add", "testuser", "--password", "testpassword")
	require.NoError(t, err)
	assert.Equal(t, "Registered testuser\n", out)

	_, _, err = execute(t, "user", "add", "testuser", "--password", "testpassword")
	assert.Error(t, err)

	out, _, err = execute(t, "recommend", "--mood", "fresh", "--occasion", "everyday wear", "--note", "Citrus", "--user", "testuser")
	require.NoError(t, err)
	assert.Contains(t, out, "Aqua Brillante (Maison Verre)")
	assert.Contains(t, out, "[citrus]")

	out, _, err = execute(t, "history", "testuser")
	require.NoError(t, err)
	assert.Contains(t, out, "Fresh / Everyday Wear / Citrus")
	assert.Contains(t, out, "Aqua Brillante (Maison Verre)")
}

func TestUnknownUserHasNoHistory(t *testing.T) {
	setupEnv(t)
	t.Cleanup(resetRecommendFlags)

	_, _, err := execute(t, "recommend", "--mood", "fresh", "--occasion", "work", "--user", "ghost")
	assert.ErrorIs(t, err, application.ErrNotFound)

	_, _, err = execute(t, "history", "ghost")
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestRecommendRejectsUnknownChoice(t *testing.T) {
	setupEnv(t)
	t.Cleanup(resetRecommendFlags)

	_, _, err := execute(t, "recommend", "--mood", "sleepy", "--occasion", "work")
	assert.ErrorIs(t, err, domain.ErrInvalidChoice)
}

func TestCatalogList(t *testing.T) {
	setupEnv(t)
	out, errOut, err := execute(t, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Aqua Brillante (Maison Verre)  [citrus, fresh, aquatic]")
	assert.Contains(t, errOut, "embedded:default_catalog.csv")
}

func TestSeedCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.csv")

	created, err := seedCatalog(path)
	require.NoError(t, err)
	assert.True(t, created)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, catalogfile.DefaultBytes(), data)

	require.NoError(t, os.WriteFile(path, []byte("Name,Brand,Description\n"), 0o644))
	created, err = seedCatalog(path)
	require.NoError(t, err)
	assert.False(t, created, "an existing catalog is never overwritten")
}

func TestEvictInterval(t *testing.T) {
	assert.Equal(t, time.Duration(0), evictInterval(0))
	assert.Equal(t, time.Second, evictInterval(2*time.Second))
	assert.Equal(t, 5*time.Minute, evictInterval(20*time.Minute))
}
