// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation, and seeding.

# Connecting

Open returns an *sqlx.DB for PostgreSQL (lib/pq) or SQLite (modernc.org/sqlite):

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections are limited to one so in-memory databases survive
across queries, and foreign keys are switched on.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - difficulty: Yoga difficulty levels
  - poses: Yoga poses with names, descriptions, media URLs
  - categories: Yoga categories
  - transitive_poses: Links categories and poses at a difficulty
  - meditation_categories: Meditation groupings
  - meditation_practices: Practices per meditation category
  - moods: Moods with recommended practice ids (JSON text)

# Relationships

	categories 1──* transitive_poses *──1 poses
	transitive_poses *──1 difficulty
	meditation_categories 1──* meditation_practices

# Seeding

Seed loads the JSON table exports (difficulty.json, poses.json, ...) from
an fs.FS in one transaction, clearing existing rows first:

	result, err := db.Seed(ctx, conn, os.DirFS(cfg.SeedDir))
*/
package db
