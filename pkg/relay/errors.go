package relay

import (
	"errors"
	"fmt"
)

// Identifier errors.
var (
	ErrParse            = errors.New("invalid identity value")
	ErrMalformedID      = errors.New("malformed node identifier")
	ErrUnrecognizedType = errors.New("unrecognized node type")
	ErrNotFound         = errors.New("node not found")

	// ErrInvalidID is the name the resolver uses for ErrMalformedID.
	ErrInvalidID = ErrMalformedID
)

// Resolver construction errors.
var (
	ErrEmptyTag     = errors.New("node type tag must not be empty")
	ErrDuplicateTag = errors.New("node type tag already registered")
	ErrNilFetch     = errors.New("node type has no fetch routine")
)

// NotFoundError reports that a fetch routine ran and found no entity.
// It matches ErrNotFound under errors.Is.
type NotFoundError struct {
	Tag string
	ID  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("node %q of type %q not found", e.ID, e.Tag)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNoSuchNode reports whether err means the identifier does not name a
// node: it is malformed, its tag is unknown, or the entity does not exist.
// Fetch failures and cancellation are not included.
func IsNoSuchNode(err error) bool {
	return errors.Is(err, ErrMalformedID) ||
		errors.Is(err, ErrUnrecognizedType) ||
		errors.Is(err, ErrNotFound)
}
