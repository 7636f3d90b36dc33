package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/officepantry/internal/domain"
)

func TestUserStoreCreateAndLookup(t *testing.T) {
	users := NewUserStore(openTestDB(t))
	ctx := context.Background()

	u, err := users.Create(ctx, "Jane Smith", " Jane@Example.com ", "hash", domain.RoleAdmin)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "jane@example.com", u.Email)

	got, err := users.GetByEmail(ctx, "JANE@example.COM")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	users := NewUserStore(openTestDB(t))
	ctx := context.Background()

	_, err := users.Create(ctx, "A", "a@example.com", "h", domain.RoleGuest)
	require.NoError(t, err)
	_, err = users.Create(ctx, "B", "A@example.com", "h", domain.RoleGuest)
	assert.Error(t, err)
}

func TestUserStoreGetByEmail_Missing(t *testing.T) {
	users := NewUserStore(openTestDB(t))

	got, err := users.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}
