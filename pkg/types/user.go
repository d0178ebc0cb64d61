package types

import (
	"strings"
	"time"

	"github.com/mesh-intelligence/relay/pkg/relay"
)

// UserTag is the node tag of User identifiers.
const UserTag = "u"

// User is a person with access to the directory.
type User struct {
	ID        relay.ID[User] `json:"id"`
	Name      string         `json:"name"`
	Role      string         `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
}

// NodeTag implements relay.Tagger.
func (User) NodeTag() string { return UserTag }

// Validate returns ErrInvalidName if the user has no name.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
