package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

// Schema notes:
// - users.client_id cascades so a client delete removes its account.
// - documents.client_id cascades for the same reason; the blob side of that
//   cascade is handled by the service layer before the row delete runs.
// - documents.label_id SET NULL: removing a label never removes documents.
var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_clients",
		SQL: `CREATE TABLE IF NOT EXISTS clients (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  company_name TEXT        NOT NULL,
  vat_number   TEXT        NOT NULL UNIQUE,
  email        TEXT        NOT NULL,
  status       TEXT        NOT NULL DEFAULT 'active',
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  username      TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  role          TEXT        NOT NULL CHECK (role IN ('admin', 'client')),
  client_id     UUID        REFERENCES clients (id) ON DELETE CASCADE,
  is_active     BOOLEAN     NOT NULL DEFAULT FALSE,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  CHECK ((role = 'client') = (client_id IS NOT NULL))
);`,
	},
	{
		Name: "create_table_document_labels",
		SQL: `CREATE TABLE IF NOT EXISTS document_labels (
  id         UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT NOT NULL UNIQUE,
  color_code TEXT NOT NULL
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id     UUID        NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  file_name     TEXT        NOT NULL,
  original_name TEXT        NOT NULL,
  storage_path  TEXT        NOT NULL UNIQUE,
  file_type     TEXT        NOT NULL,
  file_size     BIGINT      NOT NULL CHECK (file_size >= 0),
  label_id      UUID        REFERENCES document_labels (id) ON DELETE SET NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_client_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_client_id ON documents (client_id);`,
	},
	{
		Name: "create_index_documents_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents (created_at);`,
	},
	{
		Name: "create_index_users_client_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_users_client_id ON users (client_id);`,
	},
	{
		Name: "seed_document_labels",
		SQL: `INSERT INTO document_labels (name, color_code) VALUES
  ('Contabilità', '#f59e0b'),
  ('Fiscale', '#3b82f6'),
  ('Buste Paga', '#8b5cf6'),
  ('Altro', '#64748b')
ON CONFLICT (name) DO NOTHING;`,
	},
}

// EnsureMigrated checks if the 'clients' table exists and runs migrations if
// it doesn't. When adminUsername and adminHash are non-empty it also seeds a
// bootstrap admin account into an empty users table; adminHash must already
// be a credential digest, never a plaintext password.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost, adminUsername, adminHash string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.clients') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return seedAdmin(ctx, db, loc, dbHost, adminUsername, adminHash)
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	if err := seedAdmin(ctx, db, loc, dbHost, adminUsername, adminHash); err != nil {
		return err
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

// seedAdmin inserts the bootstrap admin account if no users exist yet.
func seedAdmin(ctx context.Context, db *sql.DB, loc *time.Location, dbHost, username, hash string) error {
	if username == "" || hash == "" {
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check users table: %w", err)
	}
	if count > 0 {
		return nil
	}

	const q = `INSERT INTO users (username, password_hash, role, client_id, is_active) VALUES ($1, $2, 'admin', NULL, TRUE)`
	if _, err := db.ExecContext(ctx, q, username, hash); err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_seed_admin_failed",
			"status":        "error",
			"error_message": err.Error(),
			"db_host":       dbHost,
		})
		return fmt.Errorf("seed admin account: %w", err)
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_seed_admin",
		"status":    "success",
		"username":  username,
		"db_host":   dbHost,
	})
	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
