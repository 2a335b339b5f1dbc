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

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_user_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS user_profiles (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  email      TEXT        NOT NULL UNIQUE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_files",
		SQL: `CREATE TABLE IF NOT EXISTS files (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  owner_id     UUID        NOT NULL,
  name         TEXT        NOT NULL,
  is_folder    BOOLEAN     NOT NULL DEFAULT FALSE,
  parent_id    UUID        REFERENCES files (id),
  size         BIGINT      NOT NULL DEFAULT 0 CHECK (size >= 0),
  content_type TEXT        NOT NULL DEFAULT '',
  storage_path TEXT        NOT NULL DEFAULT '',
  is_deleted   BOOLEAN     NOT NULL DEFAULT FALSE,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  modified_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_files_owner_parent",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_files_owner_parent ON files (owner_id, parent_id, is_deleted);`,
	},
	{
		Name: "create_index_files_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_files_name ON files (name);`,
	},
	{
		Name: "create_index_files_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_files_created_at ON files (created_at);`,
	},
	{
		Name: "create_table_file_versions",
		SQL: `CREATE TABLE IF NOT EXISTS file_versions (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  file_id        UUID        NOT NULL REFERENCES files (id) ON DELETE CASCADE,
  version_number INTEGER     NOT NULL CHECK (version_number >= 1),
  storage_path   TEXT        NOT NULL,
  author_id      UUID        NOT NULL,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (file_id, version_number)
);`,
	},
	{
		Name: "create_table_favorites",
		SQL: `CREATE TABLE IF NOT EXISTS favorites (
  owner_id   UUID        NOT NULL,
  file_id    UUID        NOT NULL REFERENCES files (id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (owner_id, file_id)
);`,
	},
	{
		Name: "create_table_shares",
		SQL: `CREATE TABLE IF NOT EXISTS shares (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  file_id     UUID        NOT NULL REFERENCES files (id) ON DELETE CASCADE,
  shared_by   UUID        NOT NULL,
  shared_with UUID        NOT NULL,
  permission  TEXT        NOT NULL CHECK (permission IN ('view', 'edit')),
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (file_id, shared_with)
);`,
	},
	{
		Name: "create_index_shares_shared_with",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_shares_shared_with ON shares (shared_with);`,
	},
}

// EnsureMigrated checks if the 'files' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.files') IS NOT NULL"
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
		return nil
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

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
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
