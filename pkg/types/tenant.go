package types

import (
	"strings"
	"time"

	"github.com/mesh-intelligence/relay/pkg/relay"
)

// TenantTag is the node tag of Tenant identifiers.
const TenantTag = "t"

// Tenant is an organization that owns users and data.
type Tenant struct {
	ID          relay.ID[Tenant] `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NodeTag implements relay.Tagger.
func (Tenant) NodeTag() string { return TenantTag }

// Validate returns ErrInvalidName if the tenant has no name.
func (t *Tenant) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
