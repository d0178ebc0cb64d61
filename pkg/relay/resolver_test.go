package relay

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fetchCounts records how often each fetch routine ran.
type fetchCounts struct {
	users   atomic.Int32
	tenants atomic.Int32
}

func newTestResolver(t *testing.T, counts *fetchCounts) *Resolver {
	t.Helper()
	r, err := NewResolver(
		Type(func(ctx context.Context, rc Context, id ID[user]) (*user, error) {
			counts.users.Add(1)
			want, _ := Get[string](rc)
			if id.UUID().String() != oscarUUID || want != "ThisIsInTheContext" {
				return nil, nil
			}
			return &user{ID: id, Name: "Oscar"}, nil
		}),
		Type(func(ctx context.Context, rc Context, id ID[tenant]) (*tenant, error) {
			counts.tenants.Add(1)
			return &tenant{ID: id}, nil
		}),
	)
	require.NoError(t, err)
	return r
}

func TestFetchNodeDispatch(t *testing.T) {
	var counts fetchCounts
	r := newTestResolver(t, &counts)
	rc := NewContext("ThisIsInTheContext")

	node, err := r.FetchNode(context.Background(), rc, "92ba0c2d4b4e4e2991dd8f96a078c3ffu")
	require.NoError(t, err)
	assert.Equal(t, "u", node.Tag())
	assert.Equal(t, "92ba0c2d4b4e4e2991dd8f96a078c3ffu", node.ID())

	u, ok := NodeAs[user](node)
	require.True(t, ok)
	assert.Equal(t, "Oscar", u.Name)
	assert.Equal(t, oscarUUID, u.ID.UUID().String())

	_, ok = NodeAs[tenant](node)
	assert.False(t, ok)

	assert.EqualValues(t, 1, counts.users.Load())
	assert.EqualValues(t, 0, counts.tenants.Load(), "dispatch must reach only the tagged type")
}

func TestFetchNodeDispatchIsExclusive(t *testing.T) {
	var counts fetchCounts
	r := newTestResolver(t, &counts)

	for i := 0; i < 50; i++ {
		_, err := r.FetchNode(context.Background(), EmptyContext(), FromUUID[tenant](uuid.New()).String())
		require.NoError(t, err)
	}
	assert.EqualValues(t, 50, counts.tenants.Load())
	assert.EqualValues(t, 0, counts.users.Load())
}

func TestFetchNodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{name: "too short", id: "invalid", wantErr: ErrInvalidID},
		{name: "value without tag", id: "92ba0c2d4b4e4e2991dd8f96a078c3ff", wantErr: ErrInvalidID},
		{name: "value not hex", id: "14b4a5dbb8f04bf9881e37a9e0d0ae3h2", wantErr: ErrInvalidID},
		{name: "unknown tag", id: "92ba0c2d4b4e4e2991dd8f96a078c3ffx", wantErr: ErrUnrecognizedType},
		{name: "tag prefix of registered tag", id: "92ba0c2d4b4e4e2991dd8f96a078c3ffuu", wantErr: ErrUnrecognizedType},
		{name: "long garbage", id: "2b0669af44fb4949bed4d7786cc0164b2b0669af44fb4949bed4d7786cc0164b", wantErr: ErrUnrecognizedType},
		{name: "entity missing", id: FromUUID[user](uuid.New()).String(), wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var counts fetchCounts
			r := newTestResolver(t, &counts)

			node, err := r.FetchNode(context.Background(), NewContext("ThisIsInTheContext"), tt.id)
			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsNoSuchNode(err))
			assert.Nil(t, node.Entity())

			if !errors.Is(tt.wantErr, ErrNotFound) {
				assert.EqualValues(t, 0, counts.users.Load()+counts.tenants.Load(), "no fetch for undispatchable ids")
			}
		})
	}
}

func TestFetchNodeTagNotInSet(t *testing.T) {
	var calls atomic.Int32
	r, err := NewResolver(Type(func(ctx context.Context, rc Context, id ID[tenant]) (*tenant, error) {
		calls.Add(1)
		return &tenant{ID: id}, nil
	}))
	require.NoError(t, err)

	_, err = r.FetchNode(context.Background(), EmptyContext(), "92ba0c2d4b4e4e2991dd8f96a078c3ffu")
	require.ErrorIs(t, err, ErrUnrecognizedType)
	assert.Zero(t, calls.Load(), "no fetch routine runs for a tag outside the set")
}

func TestFetchNodeNotFoundError(t *testing.T) {
	var counts fetchCounts
	r := newTestResolver(t, &counts)
	id := FromUUID[user](uuid.New()).String()

	_, err := r.FetchNode(context.Background(), EmptyContext(), id)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "u", nf.Tag)
	assert.Equal(t, id, nf.ID)
}

func TestFetchNodePropagatesFetchFailure(t *testing.T) {
	errStorage := errors.New("storage unavailable")
	r, err := NewResolver(Type(func(ctx context.Context, rc Context, id ID[user]) (*user, error) {
		return nil, errStorage
	}))
	require.NoError(t, err)

	_, err = r.FetchNode(context.Background(), EmptyContext(), FromUUID[user](uuid.New()).String())
	assert.Same(t, errStorage, err, "fetch errors are returned unchanged")
	assert.False(t, IsNoSuchNode(err))
}

func TestFetchNodePropagatesCancellation(t *testing.T) {
	r, err := NewResolver(Type(func(ctx context.Context, rc Context, id ID[user]) (*user, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.FetchNode(ctx, EmptyContext(), FromUUID[user](uuid.New()).String())
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewResolverRejectsAmbiguousSets(t *testing.T) {
	fetchUser := func(ctx context.Context, rc Context, id ID[user]) (*user, error) { return nil, nil }
	fetchWidget := func(ctx context.Context, rc Context, id ID[widget]) (*widget, error) { return nil, nil }

	// impostor reuses user's tag.
	type impostor struct{ user }

	tests := []struct {
		name    string
		types   []NodeType
		wantErr error
	}{
		{
			name:    "duplicate type",
			types:   []NodeType{Type(fetchUser), Type(fetchUser)},
			wantErr: ErrDuplicateTag,
		},
		{
			name: "distinct types sharing a tag",
			types: []NodeType{
				Type(fetchUser),
				Type(func(ctx context.Context, rc Context, id ID[impostor]) (*impostor, error) { return nil, nil }),
			},
			wantErr: ErrDuplicateTag,
		},
		{
			name:    "unnamed type without tag",
			types:   []NodeType{Type(func(ctx context.Context, rc Context, id ID[*widget]) (**widget, error) { return nil, nil })},
			wantErr: ErrEmptyTag,
		},
		{
			name:    "nil fetch",
			types:   []NodeType{Type[widget](nil)},
			wantErr: ErrNilFetch,
		},
		{
			name:  "prefix-overlapping tags are fine",
			types: []NodeType{Type(fetchUser), Type(fetchWidget)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewResolver(tt.types...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}

	assert.Panics(t, func() { MustNewResolver(Type(fetchUser), Type(fetchUser)) })
}

func TestResolverIntrospection(t *testing.T) {
	var counts fetchCounts
	r := newTestResolver(t, &counts)

	assert.Equal(t, []string{"u", "t"}, r.Tags())

	nt, ok := r.Lookup("t")
	require.True(t, ok)
	assert.Equal(t, "tenant", nt.Name())
	assert.Equal(t, "t", nt.Tag())

	_, ok = r.Lookup("x")
	assert.False(t, ok)

	tags := r.Tags()
	tags[0] = "mutated"
	assert.Equal(t, []string{"u", "t"}, r.Tags(), "Tags returns a copy")
}

func TestFetchNodes(t *testing.T) {
	var counts fetchCounts
	r := newTestResolver(t, &counts)

	ids := []string{
		"92ba0c2d4b4e4e2991dd8f96a078c3ffu",
		"invalid",
		FromUUID[tenant](uuid.New()).String(),
		"92ba0c2d4b4e4e2991dd8f96a078c3ffx",
	}
	for i := 0; i < 20; i++ {
		ids = append(ids, FromUUID[tenant](uuid.New()).String())
	}

	results := r.FetchNodes(context.Background(), NewContext("ThisIsInTheContext"), ids)
	require.Len(t, results, len(ids))
	for i, res := range results {
		assert.Equal(t, ids[i], res.ID, fmt.Sprintf("result %d out of order", i))
	}

	require.NoError(t, results[0].Err)
	u, ok := NodeAs[user](results[0].Node)
	require.True(t, ok)
	assert.Equal(t, "Oscar", u.Name)

	require.ErrorIs(t, results[1].Err, ErrInvalidID)
	require.NoError(t, results[2].Err)
	assert.Equal(t, "t", results[2].Node.Tag())
	require.ErrorIs(t, results[3].Err, ErrUnrecognizedType)

	assert.EqualValues(t, 1, counts.users.Load())
	assert.EqualValues(t, 21, counts.tenants.Load())

	assert.Empty(t, r.FetchNodes(context.Background(), EmptyContext(), nil))
}
