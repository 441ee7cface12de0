package sqlite

import (
	"context"
	"fmt"

	"github.com/basedlist/directory/internal/db"
)

// EnsureSchema creates the two profile tables if they do not exist.
// List-valued fields (records, links, skills) are stored as JSON text.
func EnsureSchema(ctx context.Context, d *db.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ens_profiles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			address TEXT NOT NULL DEFAULT '',
			avatar TEXT NOT NULL DEFAULT '',
			records TEXT NOT NULL DEFAULT '[]',
			content_hash TEXT NOT NULL DEFAULT '',
			skills TEXT NOT NULL DEFAULT '[]',
			created INTEGER NOT NULL,
			updated INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_ens_profiles_address ON ens_profiles(address);`,
		`CREATE TABLE IF NOT EXISTS profiles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			ens_name TEXT NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT '',
			profile_image TEXT NOT NULL DEFAULT '',
			links TEXT NOT NULL DEFAULT '[]',
			socials TEXT NOT NULL DEFAULT '{}',
			eth_address TEXT NOT NULL DEFAULT '',
			is_ens_profile INTEGER NOT NULL DEFAULT 0,
			skills TEXT NOT NULL DEFAULT '[]',
			created INTEGER NOT NULL,
			updated INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_name ON profiles(name);`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_ens_name ON profiles(ens_name);`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_updated ON profiles(updated);`,
	}
	for _, s := range stmts {
		if _, err := d.Exec(ctx, s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
