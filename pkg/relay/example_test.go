package relay_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/relay/pkg/relay"
)

type User struct {
	ID   relay.ID[User]
	Name string
}

func (User) NodeTag() string { return "u" }

type Tenant struct {
	ID          relay.ID[Tenant]
	Description string
}

func (Tenant) NodeTag() string { return "t" }

func ExampleID() {
	id := relay.MustParseID[User]("92ba0c2d-4b4e-4e29-91dd-8f96a078c3ff")
	fmt.Println(id)
	fmt.Println(id.UUID())

	back, err := relay.DecodeID[User](id.String())
	fmt.Println(back == id, err)

	_, err = relay.DecodeID[Tenant](id.String())
	fmt.Println(errors.Is(err, relay.ErrUnrecognizedType))
	// Output:
	// 92ba0c2d4b4e4e2991dd8f96a078c3ffu
	// 92ba0c2d-4b4e-4e29-91dd-8f96a078c3ff
	// true <nil>
	// true
}

func ExampleResolver_FetchNode() {
	users := map[relay.ID[User]]*User{}
	oscar := &User{ID: relay.MustParseID[User]("92ba0c2d-4b4e-4e29-91dd-8f96a078c3ff"), Name: "Oscar"}
	users[oscar.ID] = oscar

	res := relay.MustNewResolver(
		relay.Type(func(ctx context.Context, rc relay.Context, id relay.ID[User]) (*User, error) {
			return users[id], nil
		}),
		relay.Type(func(ctx context.Context, rc relay.Context, id relay.ID[Tenant]) (*Tenant, error) {
			return nil, nil
		}),
	)

	ctx := context.Background()
	node, err := res.FetchNode(ctx, relay.EmptyContext(), "92ba0c2d4b4e4e2991dd8f96a078c3ffu")
	if err != nil {
		fmt.Println(err)
		return
	}
	switch e := node.Entity().(type) {
	case *User:
		fmt.Println("user", e.Name)
	case *Tenant:
		fmt.Println("tenant", e.Description)
	}

	_, err = res.FetchNode(ctx, relay.EmptyContext(), "invalid")
	fmt.Println(errors.Is(err, relay.ErrMalformedID))

	_, err = res.FetchNode(ctx, relay.EmptyContext(), "92ba0c2d4b4e4e2991dd8f96a078c3ffx")
	fmt.Println(errors.Is(err, relay.ErrUnrecognizedType))
	// Output:
	// user Oscar
	// true
	// true
}

func ExampleGet() {
	rc := relay.NewContext("Hello World")

	s, ok := relay.Get[string](rc)
	fmt.Println(s, ok)

	_, ok = relay.Get[int](rc)
	fmt.Println(ok)
	// Output:
	// Hello World true
	// false
}
