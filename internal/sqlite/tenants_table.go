package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/relay/internal/logging"
	"github.com/mesh-intelligence/relay/pkg/relay"
	"github.com/mesh-intelligence/relay/pkg/types"
)

const selectTenants = "SELECT tenant_id, name, description, created_at FROM tenants"

var _ types.Store[types.Tenant] = (*tenantsTable)(nil)

type tenantsTable struct {
	backend *Backend
}

// Get retrieves a tenant by ID.
func (tt *tenantsTable) Get(ctx context.Context, id relay.ID[types.Tenant]) (*types.Tenant, error) {
	if id.IsZero() {
		return nil, types.ErrInvalidID
	}
	var tenant *types.Tenant
	err := tt.backend.read(func(db *sql.DB) error {
		var err error
		tenant, err = hydrateTenant(db.QueryRowContext(ctx, selectTenants+" WHERE tenant_id = ?", id))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting tenant %s: %w", id, err)
	}
	return tenant, nil
}

// Set creates or updates a tenant. A zero ID is replaced with a new one and
// a zero CreatedAt with the current time.
func (tt *tenantsTable) Set(ctx context.Context, tenant *types.Tenant) (relay.ID[types.Tenant], error) {
	if tenant == nil {
		return relay.ID[types.Tenant]{}, types.ErrInvalidData
	}
	if err := tenant.Validate(); err != nil {
		return relay.ID[types.Tenant]{}, err
	}
	if tenant.ID.IsZero() {
		tenant.ID = relay.NewID[types.Tenant]()
	}
	if tenant.CreatedAt.IsZero() {
		tenant.CreatedAt = time.Now().UTC()
	}

	err := tt.backend.write(func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, `INSERT INTO tenants (tenant_id, name, description, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(tenant_id) DO UPDATE SET name = excluded.name, description = excluded.description, created_at = excluded.created_at`,
			tenant.ID, tenant.Name, tenant.Description, formatTime(tenant.CreatedAt))
		if err != nil {
			return fmt.Errorf("saving tenant: %w", err)
		}
		return tt.persist(ctx, db)
	})
	if err != nil {
		return relay.ID[types.Tenant]{}, err
	}

	tt.backend.logger.Debug().
		Str(logging.FieldNodeID, tenant.ID.String()).
		Str(logging.FieldTag, types.TenantTag).
		Msg("tenant saved")
	return tenant.ID, nil
}

// Delete removes a tenant by ID.
func (tt *tenantsTable) Delete(ctx context.Context, id relay.ID[types.Tenant]) error {
	if id.IsZero() {
		return types.ErrInvalidID
	}
	return tt.backend.write(func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, "DELETE FROM tenants WHERE tenant_id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting tenant %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return types.ErrNotFound
		}
		return tt.persist(ctx, db)
	})
}

// List returns all tenants ordered by creation time.
func (tt *tenantsTable) List(ctx context.Context) ([]*types.Tenant, error) {
	var tenants []*types.Tenant
	err := tt.backend.read(func(db *sql.DB) error {
		var err error
		tenants, err = queryAll(ctx, db, selectTenants+" ORDER BY created_at, tenant_id", hydrateTenant)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	return tenants, nil
}

// persist rewrites tenants.jsonl from the table. The caller holds the write lock.
func (tt *tenantsTable) persist(ctx context.Context, db *sql.DB) error {
	tenants, err := queryAll(ctx, db, selectTenants+" ORDER BY created_at, tenant_id", hydrateTenant)
	if err != nil {
		return fmt.Errorf("reading tenants: %w", err)
	}
	records := make([]tenantJSON, 0, len(tenants))
	for _, t := range tenants {
		records = append(records, tenantJSON{
			TenantID:    t.ID.UUID().String(),
			Name:        t.Name,
			Description: t.Description,
			CreatedAt:   formatTime(t.CreatedAt),
		})
	}
	return persistJSONL(tt.backend, tenantsJSONL, records)
}

func hydrateTenant(row rowScanner) (*types.Tenant, error) {
	var (
		tn        types.Tenant
		createdAt string
	)
	if err := row.Scan(&tn.ID, &tn.Name, &tn.Description, &createdAt); err != nil {
		return nil, err
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	tn.CreatedAt = created
	return &tn, nil
}
