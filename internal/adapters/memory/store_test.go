package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scentquiz/internal/application"
	"scentquiz/internal/domain"
)

func TestStore_Users(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.CreateUser(ctx, "alice", []byte("hash")))
	assert.ErrorIs(t, s.CreateUser(ctx, "alice", []byte("other")), application.ErrUserExists)

	hash, err := s.PasswordHash(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte("hash"), hash)

	_, err = s.PasswordHash(ctx, "bob")
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestStore_HistoryNewestFirstPerUser(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	q1 := domain.NewPreferenceQuery(domain.MoodFresh, domain.OccasionWork)
	q2 := domain.NewPreferenceQuery(domain.MoodBold, domain.OccasionParty, domain.NoteOud)
	refs := []domain.ItemRef{{Name: "Aqua", Brand: "X"}}

	require.NoError(t, s.AppendHistory(ctx, "alice", q1, refs))
	require.NoError(t, s.AppendHistory(ctx, "bob", q1, nil))
	require.NoError(t, s.AppendHistory(ctx, "alice", q2, nil))

	entries, err := s.GetHistory(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, q2, entries[0].Query)
	assert.Equal(t, q1, entries[1].Query)
	assert.Equal(t, refs, entries[1].Recommended)
	assert.Greater(t, entries[0].ID, entries[1].ID)

	entries, err = s.GetHistory(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_HistoryIsCopied(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	refs := []domain.ItemRef{{Name: "Aqua", Brand: "X"}}
	require.NoError(t, s.AppendHistory(ctx, "alice", domain.NewPreferenceQuery(domain.MoodFresh, domain.OccasionWork), refs))
	refs[0].Name = "Changed"

	entries, err := s.GetHistory(ctx, "alice")
	require.NoError(t, err)
	entries[0].Recommended[0].Brand = "Changed"

	again, err := s.GetHistory(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.ItemRef{Name: "Aqua", Brand: "X"}, again[0].Recommended[0])
}
