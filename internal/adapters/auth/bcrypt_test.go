package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"scentquiz/internal/adapters/memory"
	"scentquiz/internal/application"
)

func TestBcryptIdentity(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	id := NewBcryptIdentity(store, bcrypt.MinCost, nil)

	u, err := id.Register(ctx, "testuser", "testpassword")
	require.NoError(t, err)
	assert.Equal(t, "testuser", u.Username)

	hash, err := store.PasswordHash(ctx, "testuser")
	require.NoError(t, err)
	assert.NotEqual(t, []byte("testpassword"), hash)

	u, err = id.Authenticate(ctx, "testuser", "testpassword")
	require.NoError(t, err)
	assert.Equal(t, "testuser", u.Username)

	_, err = id.Authenticate(ctx, "testuser", "wrong")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)

	_, err = id.Authenticate(ctx, "nobody", "testpassword")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)

	_, err = id.Register(ctx, "testuser", "another1")
	assert.ErrorIs(t, err, application.ErrUserExists)
}

func TestNewBcryptIdentity_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptIdentity(memory.NewStore(), 0, nil).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptIdentity(memory.NewStore(), 99, nil).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptIdentity(memory.NewStore(), bcrypt.MinCost, nil).cost)
}
