package sqlite

// JSON record structures that mirror the JSONL file format. Field names
// match the SQLite column names so the loader can map them generically.

// userJSON represents a user in users.jsonl.
type userJSON struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// tenantJSON represents a tenant in tenants.jsonl.
type tenantJSON struct {
	TenantID    string `json:"tenant_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}
