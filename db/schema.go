// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the database and verifies the connection.
// dbType is "postgres" or "sqlite".
func Open(dbType, url string) (*sqlx.DB, error) {
	driver, err := driverName(dbType)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == "sqlite" {
		// One connection keeps :memory: databases and PRAGMAs consistent
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

func driverName(dbType string) (string, error) {
	switch dbType {
	case "postgres", "postgresql":
		return "postgres", nil
	case "sqlite", "sqlite3", "":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dbType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The DDL stays within the subset shared by SQLite and PostgreSQL.
const schema = `
-- Yoga difficulty levels
CREATE TABLE IF NOT EXISTS difficulty (
    id INTEGER PRIMARY KEY,
    difficulty_level TEXT NOT NULL UNIQUE
);

-- Yoga poses
CREATE TABLE IF NOT EXISTS poses (
    id INTEGER PRIMARY KEY,
    english_name TEXT NOT NULL,
    sanskrit_name_adapted TEXT,
    sanskrit_name TEXT,
    translation_name TEXT,
    pose_description TEXT,
    pose_benefits TEXT,
    url_svg TEXT,
    url_png TEXT,
    url_svg_alt TEXT
);

CREATE INDEX IF NOT EXISTS idx_poses_english_name ON poses(english_name);

-- Yoga categories
CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY,
    category_name TEXT NOT NULL,
    category_description TEXT
);

-- Category <-> pose membership at a difficulty
CREATE TABLE IF NOT EXISTS transitive_poses (
    id INTEGER PRIMARY KEY,
    category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
    pose_id INTEGER NOT NULL REFERENCES poses(id) ON DELETE CASCADE,
    difficulty_id INTEGER REFERENCES difficulty(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_transitive_poses_category ON transitive_poses(category_id);
CREATE INDEX IF NOT EXISTS idx_transitive_poses_pose ON transitive_poses(pose_id);
CREATE INDEX IF NOT EXISTS idx_transitive_poses_difficulty ON transitive_poses(difficulty_id);

-- Meditation categories
CREATE TABLE IF NOT EXISTS meditation_categories (
    id INTEGER PRIMARY KEY,
    category_name TEXT NOT NULL,
    category_description TEXT NOT NULL DEFAULT ''
);

-- Meditation practices
CREATE TABLE IF NOT EXISTS meditation_practices (
    id INTEGER PRIMARY KEY,
    category_id INTEGER NOT NULL REFERENCES meditation_categories(id) ON DELETE CASCADE,
    english_name TEXT NOT NULL,
    practice_benefits TEXT NOT NULL DEFAULT '',
    practice_description TEXT NOT NULL DEFAULT '',
    suggested_duration TEXT NOT NULL DEFAULT '',
    url_png TEXT,
    url_svg TEXT,
    url_svg_alt TEXT
);

CREATE INDEX IF NOT EXISTS idx_meditation_practices_category ON meditation_practices(category_id);

-- Moods
CREATE TABLE IF NOT EXISTS moods (
    id INTEGER PRIMARY KEY,
    mood TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    recommended_practices TEXT NOT NULL DEFAULT '[]'
);
`
