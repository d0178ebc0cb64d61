package relay

import (
	"bytes"
	"database/sql/driver"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Wire layout of an opaque identifier.
const (
	// ValueLength is the number of hex characters that encode the UUID.
	ValueLength = 32

	// MinIDLength is the shortest well-formed identifier: the UUID plus a
	// one-character tag.
	MinIDLength = ValueLength + 1
)

// ID is a node identifier bound to entity type T. The type parameter only
// restricts which operations compile; two IDs are equal when their UUIDs
// are equal. The zero ID wraps uuid.Nil.
type ID[T any] struct {
	value uuid.UUID
}

// NewID returns an ID for T with a freshly generated UUID (v7, falling back
// to v4 if the clock source fails).
func NewID[T any]() ID[T] {
	u, err := uuid.NewV7()
	if err != nil {
		u = uuid.New()
	}
	return ID[T]{value: u}
}

// FromUUID wraps u as an ID for T.
func FromUUID[T any](u uuid.UUID) ID[T] {
	return ID[T]{value: u}
}

// ParseID parses text as a UUID in any of its textual forms (hyphenated,
// 32 hex characters, urn:uuid:, braced) and wraps it as an ID for T.
// It does not accept the opaque form; use DecodeID for that.
func ParseID[T any](text string) (ID[T], error) {
	u, err := uuid.Parse(text)
	if err != nil {
		return ID[T]{}, fmt.Errorf("parse %q: %w: %v", text, ErrParse, err)
	}
	return ID[T]{value: u}, nil
}

// MustParseID is like ParseID but panics on error. Use for literals.
func MustParseID[T any](text string) ID[T] {
	id, err := ParseID[T](text)
	if err != nil {
		panic(err)
	}
	return id
}

// DecodeID decodes an opaque identifier produced by ID[T].String. The tag
// must be T's own tag; an identifier encoded for another type fails with
// ErrUnrecognizedType.
func DecodeID[T any](opaque string) (ID[T], error) {
	u, tag, err := Split(opaque)
	if err != nil {
		return ID[T]{}, err
	}
	if want := TagOf[T](); tag != want {
		return ID[T]{}, fmt.Errorf("decode %q: %w: tag %q, want %q", opaque, ErrUnrecognizedType, tag, want)
	}
	return ID[T]{value: u}, nil
}

// Split separates an opaque identifier into its UUID and tag. It checks the
// structure only: at least MinIDLength characters and a 32-character
// lowercase hex prefix. The tag is not checked against any type.
func Split(opaque string) (uuid.UUID, string, error) {
	if len(opaque) < MinIDLength {
		return uuid.Nil, "", fmt.Errorf("decode %q: %w: shorter than %d characters", opaque, ErrMalformedID, MinIDLength)
	}
	prefix, tag := opaque[:ValueLength], opaque[ValueLength:]
	if !isLowerHex(prefix) {
		return uuid.Nil, "", fmt.Errorf("decode %q: %w: value is not lowercase hex", opaque, ErrMalformedID)
	}
	u, err := uuid.Parse(prefix)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("decode %q: %w: %v", opaque, ErrMalformedID, err)
	}
	return u, tag, nil
}

// Encode renders u with tag in the opaque wire form.
func Encode(u uuid.UUID, tag string) string {
	var buf [ValueLength]byte
	hex.Encode(buf[:], u[:])
	return string(buf[:]) + tag
}

func isLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// String returns the opaque, globally unique form of the identifier. It
// only round-trips through DecodeID when TagOf[T] is non-empty.
func (id ID[T]) String() string {
	return Encode(id.value, TagOf[T]())
}

// GoString renders the identifier for %#v, e.g. relay.ID[User](92ba0c2d-...).
func (id ID[T]) GoString() string {
	return fmt.Sprintf("relay.ID[%s](%s)", typeName[T](), id.value)
}

// UUID returns the raw identity value for storage keys and internal
// lookups. The UUID alone is NOT globally unique: the same value may
// identify entities of different types.
func (id ID[T]) UUID() uuid.UUID {
	return id.value
}

// Tag returns T's type tag.
func (id ID[T]) Tag() string {
	return TagOf[T]()
}

// IsZero reports whether the identifier wraps uuid.Nil.
func (id ID[T]) IsZero() bool {
	return id.value == uuid.Nil
}

// Equal reports whether id and other wrap the same UUID.
func (id ID[T]) Equal(other ID[T]) bool {
	return id.value == other.value
}

// Compare orders identifiers by the bytes of their UUIDs, returning -1, 0
// or +1.
func (id ID[T]) Compare(other ID[T]) int {
	return bytes.Compare(id.value[:], other.value[:])
}

// MarshalText implements encoding.TextMarshaler using the opaque form.
// The zero ID marshals to an empty string.
func (id ID[T]) MarshalText() ([]byte, error) {
	if id.IsZero() {
		return []byte{}, nil
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with the same checks
// as DecodeID. Empty input yields the zero ID.
func (id *ID[T]) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*id = ID[T]{}
		return nil
	}
	parsed, err := DecodeID[T](string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value implements driver.Valuer. Storage holds the raw hyphenated UUID,
// not the opaque form; the zero ID is stored as NULL.
func (id ID[T]) Value() (driver.Value, error) {
	if id.IsZero() {
		return nil, nil
	}
	return id.value.String(), nil
}

// Scan implements sql.Scanner for columns written by Value. It accepts any
// textual UUID form or 16 raw bytes; NULL scans to the zero ID.
func (id *ID[T]) Scan(src any) error {
	if src == nil {
		*id = ID[T]{}
		return nil
	}
	var u uuid.UUID
	switch v := src.(type) {
	case string:
		if v == "" {
			*id = ID[T]{}
			return nil
		}
		if err := u.Scan(v); err != nil {
			return fmt.Errorf("scan %s id: %w: %v", typeName[T](), ErrParse, err)
		}
	case []byte:
		if len(v) == 0 {
			*id = ID[T]{}
			return nil
		}
		if err := u.Scan(v); err != nil {
			return fmt.Errorf("scan %s id: %w: %v", typeName[T](), ErrParse, err)
		}
	default:
		return fmt.Errorf("scan %s id: cannot scan %T", typeName[T](), src)
	}
	*id = ID[T]{value: u}
	return nil
}
