package repository

import (
	"context"
	"encoding/json"
	"fmt"
)

const ratingColumns = `
	floors INTEGER,
	vertical_horizontal_surfaces INTEGER,
	ceiling INTEGER,
	restrooms INTEGER,
	customer_satisfaction INTEGER,
	trash INTEGER,
	project_cleaning INTEGER,
	activity_support INTEGER,
	safety_compliance INTEGER,
	equipment INTEGER,
	monitoring INTEGER,`

func schemaStatements(d Dialect) []string {
	id := "id SERIAL PRIMARY KEY"
	createdAt := "created_at TIMESTAMPTZ NOT NULL DEFAULT now()"
	fileSize := "file_size BIGINT NOT NULL DEFAULT 0"
	if d == SQLite {
		id = "id INTEGER PRIMARY KEY AUTOINCREMENT"
		createdAt = "created_at TIMESTAMP NOT NULL"
		fileSize = "file_size INTEGER NOT NULL DEFAULT 0"
	}

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS inspections (
	%s,
	inspector_name TEXT,
	school TEXT NOT NULL,
	date TEXT NOT NULL,
	inspection_type TEXT NOT NULL,
	location_description TEXT NOT NULL DEFAULT '',
	room_number TEXT,
	location_category TEXT,
	building_name TEXT,
	building_inspection_id INTEGER,%s
	notes TEXT,
	images TEXT NOT NULL DEFAULT '[]',
	verified_rooms TEXT NOT NULL DEFAULT '[]',
	is_completed BOOLEAN NOT NULL DEFAULT FALSE,
	%s
)`, id, ratingColumns, createdAt),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS room_inspections (
	%s,
	building_inspection_id INTEGER NOT NULL,
	room_type TEXT NOT NULL,
	room_identifier TEXT,%s
	notes TEXT,
	images TEXT NOT NULL DEFAULT '[]',
	%s
)`, id, ratingColumns, createdAt),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS custodial_notes (
	%s,
	inspector_name TEXT,
	school TEXT NOT NULL,
	date TEXT NOT NULL,
	location TEXT NOT NULL,
	location_description TEXT,
	notes TEXT NOT NULL,
	images TEXT NOT NULL DEFAULT '[]',
	%s
)`, id, createdAt),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS monthly_feedback (
	%s,
	school TEXT NOT NULL,
	month TEXT NOT NULL,
	year INTEGER NOT NULL,
	pdf_url TEXT NOT NULL DEFAULT '',
	file_name TEXT NOT NULL,
	extracted_text TEXT,
	notes TEXT,
	uploaded_by TEXT,
	%s,
	%s
)`, id, fileSize, createdAt),
	}
}

// Migrate creates the four tables if they do not exist.
func Migrate(ctx context.Context, d *DB) error {
	for _, stmt := range schemaStatements(d.Dialect) {
		if _, err := d.SQL.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// marshalList encodes a string list as JSON text for storage. Both supported
// engines hold list columns as JSON rather than native arrays so statements
// stay identical across dialects.
func marshalList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func unmarshalList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
