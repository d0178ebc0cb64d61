package sqlite

// Schema DDL. Identifier columns hold the raw hyphenated UUID written by
// relay.ID.Value; the opaque node form is never stored.
const (
	createUsers = `CREATE TABLE users (
    user_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    role TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createTenants = `CREATE TABLE tenants (
    tenant_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createIndexes = `
CREATE INDEX idx_users_created_at ON users(created_at);
CREATE INDEX idx_tenants_created_at ON tenants(created_at);
`
)

// schemaStatements is executed in order on Attach.
var schemaStatements = []string{
	createUsers,
	createTenants,
	createIndexes,
}
