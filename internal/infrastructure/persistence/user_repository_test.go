package persistence

import (
	"context"
	"testing"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, name, email string, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser(name, email, "s3cret-pass", role)
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Save(context.Background(), user))
	return user
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "Awa Diallo", "awa@example.com", identity.RoleAdmin)

	t.Run("matches regardless of input casing", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "Awa@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("hides soft deleted users", func(t *testing.T) {
		deleted := createUser(t, db, "Gone User", "gone@example.com", identity.RoleController)
		deleted.SoftDelete()
		require.NoError(t, repo.Save(ctx, deleted))

		_, err := repo.FindByEmail(ctx, "gone@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUserRepository_FindActiveCourier(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	t.Run("returns an active courier", func(t *testing.T) {
		courier := createUser(t, db, "Moussa Ba", "moussa@example.com", identity.RoleCourier)

		found, err := repo.FindActiveCourier(ctx, courier.ID)
		require.NoError(t, err)
		assert.Equal(t, courier.ID, found.ID)
	})

	t.Run("rejects a non courier", func(t *testing.T) {
		admin := createUser(t, db, "Admin User", "admin@example.com", identity.RoleAdmin)

		_, err := repo.FindActiveCourier(ctx, admin.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects a deactivated courier", func(t *testing.T) {
		courier := createUser(t, db, "Inactive Courier", "inactive@example.com", identity.RoleCourier)
		courier.Deactivate()
		require.NoError(t, repo.Save(ctx, courier))

		_, err := repo.FindActiveCourier(ctx, courier.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects an unknown id", func(t *testing.T) {
		_, err := repo.FindActiveCourier(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUserRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	createUser(t, db, "Fatou Ndiaye", "fatou@example.com", identity.RoleController)
	createUser(t, db, "Omar Sy", "omar@example.com", identity.RoleCourier)
	createUser(t, db, "Ibrahima Fall", "ibrahima@example.com", identity.RoleCourier)

	t.Run("filters by role", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters = map[string]interface{}{"role": identity.RoleCourier}

		result, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Total)
	})

	t.Run("searches name and email", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "fatou"

		result, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "Fatou Ndiaye", result.Items[0].Name)
	})
}
