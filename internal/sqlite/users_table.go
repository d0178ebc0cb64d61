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

const selectUsers = "SELECT user_id, name, role, created_at FROM users"

var _ types.Store[types.User] = (*usersTable)(nil)

type usersTable struct {
	backend *Backend
}

// Get retrieves a user by ID.
func (ut *usersTable) Get(ctx context.Context, id relay.ID[types.User]) (*types.User, error) {
	if id.IsZero() {
		return nil, types.ErrInvalidID
	}
	var user *types.User
	err := ut.backend.read(func(db *sql.DB) error {
		var err error
		user, err = hydrateUser(db.QueryRowContext(ctx, selectUsers+" WHERE user_id = ?", id))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return user, nil
}

// Set creates or updates a user. A zero ID is replaced with a new one and
// a zero CreatedAt with the current time.
func (ut *usersTable) Set(ctx context.Context, user *types.User) (relay.ID[types.User], error) {
	if user == nil {
		return relay.ID[types.User]{}, types.ErrInvalidData
	}
	if err := user.Validate(); err != nil {
		return relay.ID[types.User]{}, err
	}
	if user.ID.IsZero() {
		user.ID = relay.NewID[types.User]()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	err := ut.backend.write(func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, `INSERT INTO users (user_id, name, role, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET name = excluded.name, role = excluded.role, created_at = excluded.created_at`,
			user.ID, user.Name, user.Role, formatTime(user.CreatedAt))
		if err != nil {
			return fmt.Errorf("saving user: %w", err)
		}
		return ut.persist(ctx, db)
	})
	if err != nil {
		return relay.ID[types.User]{}, err
	}

	ut.backend.logger.Debug().
		Str(logging.FieldNodeID, user.ID.String()).
		Str(logging.FieldTag, types.UserTag).
		Msg("user saved")
	return user.ID, nil
}

// Delete removes a user by ID.
func (ut *usersTable) Delete(ctx context.Context, id relay.ID[types.User]) error {
	if id.IsZero() {
		return types.ErrInvalidID
	}
	return ut.backend.write(func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, "DELETE FROM users WHERE user_id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting user %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return types.ErrNotFound
		}
		return ut.persist(ctx, db)
	})
}

// List returns all users ordered by creation time.
func (ut *usersTable) List(ctx context.Context) ([]*types.User, error) {
	var users []*types.User
	err := ut.backend.read(func(db *sql.DB) error {
		var err error
		users, err = queryAll(ctx, db, selectUsers+" ORDER BY created_at, user_id", hydrateUser)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// persist rewrites users.jsonl from the table. The caller holds the write lock.
func (ut *usersTable) persist(ctx context.Context, db *sql.DB) error {
	users, err := queryAll(ctx, db, selectUsers+" ORDER BY created_at, user_id", hydrateUser)
	if err != nil {
		return fmt.Errorf("reading users: %w", err)
	}
	records := make([]userJSON, 0, len(users))
	for _, u := range users {
		records = append(records, userJSON{
			UserID:    u.ID.UUID().String(),
			Name:      u.Name,
			Role:      u.Role,
			CreatedAt: formatTime(u.CreatedAt),
		})
	}
	return persistJSONL(ut.backend, usersJSONL, records)
}

func hydrateUser(row rowScanner) (*types.User, error) {
	var (
		u         types.User
		createdAt string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Role, &createdAt); err != nil {
		return nil, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = t
	return &u, nil
}
