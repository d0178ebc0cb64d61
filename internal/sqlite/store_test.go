package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/relay/pkg/relay"
	"github.com/mesh-intelligence/relay/pkg/types"
)

func TestUsers_SetAndGet(t *testing.T) {
	b, _ := setupBackend(t)
	users, err := b.Users()
	require.NoError(t, err)
	ctx := testContext(t)

	u := &types.User{Name: "Oscar", Role: "admin"}
	id, err := users.Set(ctx, u)
	require.NoError(t, err)
	assert.False(t, id.IsZero())
	assert.Equal(t, id, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := users.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Oscar", got.Name)
	assert.Equal(t, "admin", got.Role)
	assert.True(t, got.CreatedAt.Equal(u.CreatedAt))
	assert.Equal(t, types.UserTag, got.ID.Tag())
}

func TestUsers_SetKeepsProvidedID(t *testing.T) {
	b, _ := setupBackend(t)
	users, _ := b.Users()
	ctx := testContext(t)

	id := relay.MustParseID[types.User]("92ba0c2d-4b4e-4e29-91dd-8f96a078c3ff")
	got, err := users.Set(ctx, &types.User{ID: id, Name: "Oscar"})
	require.NoError(t, err)
	assert.Equal(t, id, got)

	u, err := users.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "92ba0c2d4b4e4e2991dd8f96a078c3ffu", u.ID.String())
}

func TestUsers_Update(t *testing.T) {
	b, _ := setupBackend(t)
	users, _ := b.Users()
	ctx := testContext(t)

	u := &types.User{Name: "Oscar", Role: "member"}
	id, err := users.Set(ctx, u)
	require.NoError(t, err)

	u.Role = "owner"
	_, err = users.Set(ctx, u)
	require.NoError(t, err)

	got, err := users.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "owner", got.Role)

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUsers_Errors(t *testing.T) {
	b, _ := setupBackend(t)
	users, _ := b.Users()
	ctx := testContext(t)

	_, err := users.Get(ctx, relay.ID[types.User]{})
	assert.ErrorIs(t, err, types.ErrInvalidID)

	_, err = users.Get(ctx, relay.NewID[types.User]())
	assert.ErrorIs(t, err, types.ErrNotFound)

	err = users.Delete(ctx, relay.NewID[types.User]())
	assert.ErrorIs(t, err, types.ErrNotFound)

	err = users.Delete(ctx, relay.ID[types.User]{})
	assert.ErrorIs(t, err, types.ErrInvalidID)

	_, err = users.Set(ctx, &types.User{Name: "  "})
	assert.ErrorIs(t, err, types.ErrInvalidName)

	_, err = users.Set(ctx, nil)
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestUsers_Delete(t *testing.T) {
	b, _ := setupBackend(t)
	users, _ := b.Users()
	ctx := testContext(t)

	id, err := users.Set(ctx, &types.User{Name: "Oscar"})
	require.NoError(t, err)
	require.NoError(t, users.Delete(ctx, id))

	_, err = users.Get(ctx, id)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestUsers_ListOrderedByCreation(t *testing.T) {
	b, _ := setupBackend(t)
	users, _ := b.Users()
	ctx := testContext(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"carol", "alice", "bob"} {
		_, err := users.Set(ctx, &types.User{Name: name, CreatedAt: base.Add(time.Duration(i) * time.Second)})
		require.NoError(t, err)
	}

	all, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "carol", all[0].Name)
	assert.Equal(t, "alice", all[1].Name)
	assert.Equal(t, "bob", all[2].Name)
}

func TestTenants_CRUD(t *testing.T) {
	b, _ := setupBackend(t)
	tenants, err := b.Tenants()
	require.NoError(t, err)
	ctx := testContext(t)

	tn := &types.Tenant{Name: "acme", Description: "Acme Corp"}
	id, err := tenants.Set(ctx, tn)
	require.NoError(t, err)
	assert.Equal(t, types.TenantTag, id.Tag())

	got, err := tenants.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Description)

	all, err := tenants.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, tenants.Delete(ctx, id))
	_, err = tenants.Get(ctx, id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = tenants.Set(ctx, &types.Tenant{})
	assert.ErrorIs(t, err, types.ErrInvalidName)
}

func TestStores_AreIndependent(t *testing.T) {
	b, _ := setupBackend(t)
	users, _ := b.Users()
	tenants, _ := b.Tenants()
	ctx := testContext(t)

	u := relay.MustParseID[types.User]("92ba0c2d-4b4e-4e29-91dd-8f96a078c3ff")
	_, err := users.Set(ctx, &types.User{ID: u, Name: "Oscar"})
	require.NoError(t, err)

	// Same raw value, different type.
	_, err = tenants.Get(ctx, relay.FromUUID[types.Tenant](u.UUID()))
	assert.ErrorIs(t, err, types.ErrNotFound)
}
