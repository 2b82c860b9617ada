// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"reflect"

	"github.com/jmoiron/sqlx"

	"github.com/sanskar1309/fitnest-fullstack/models"
)

// practiceRow keeps media URLs, which models.MeditationPractice hides from JSON
type practiceRow struct {
	ID                  int64   `json:"id" db:"id"`
	CategoryID          int64   `json:"category_id" db:"category_id"`
	EnglishName         string  `json:"english_name" db:"english_name"`
	PracticeBenefits    string  `json:"practice_benefits" db:"practice_benefits"`
	PracticeDescription string  `json:"practice_description" db:"practice_description"`
	SuggestedDuration   string  `json:"suggested_duration" db:"suggested_duration"`
	URLPNG              *string `json:"url_png" db:"url_png"`
	URLSVG              *string `json:"url_svg" db:"url_svg"`
	URLSVGAlt           *string `json:"url_svg_alt" db:"url_svg_alt"`
}

type seedTable struct {
	file   string
	table  string
	insert string
	rows   func() any
}

// Parents first; clearing walks this list in reverse.
var seedTables = []seedTable{
	{
		file:   "difficulty.json",
		table:  "difficulty",
		insert: `INSERT INTO difficulty (id, difficulty_level) VALUES (:id, :difficulty_level)`,
		rows:   func() any { return &[]models.Difficulty{} },
	},
	{
		file:  "poses.json",
		table: "poses",
		insert: `INSERT INTO poses (id, english_name, sanskrit_name_adapted, sanskrit_name, translation_name,
			pose_description, pose_benefits, url_svg, url_png, url_svg_alt)
			VALUES (:id, :english_name, :sanskrit_name_adapted, :sanskrit_name, :translation_name,
			:pose_description, :pose_benefits, :url_svg, :url_png, :url_svg_alt)`,
		rows: func() any { return &[]models.Pose{} },
	},
	{
		file:   "categories.json",
		table:  "categories",
		insert: `INSERT INTO categories (id, category_name, category_description) VALUES (:id, :category_name, :category_description)`,
		rows:   func() any { return &[]models.Category{} },
	},
	{
		file:  "transitive_poses.json",
		table: "transitive_poses",
		insert: `INSERT INTO transitive_poses (id, category_id, pose_id, difficulty_id)
			VALUES (:id, :category_id, :pose_id, :difficulty_id)`,
		rows: func() any { return &[]models.TransitivePose{} },
	},
	{
		file:  "meditation_categories.json",
		table: "meditation_categories",
		insert: `INSERT INTO meditation_categories (id, category_name, category_description)
			VALUES (:id, :category_name, :category_description)`,
		rows: func() any { return &[]models.MeditationCategory{} },
	},
	{
		file:  "meditation_practices.json",
		table: "meditation_practices",
		insert: `INSERT INTO meditation_practices (id, category_id, english_name, practice_benefits,
			practice_description, suggested_duration, url_png, url_svg, url_svg_alt)
			VALUES (:id, :category_id, :english_name, :practice_benefits,
			:practice_description, :suggested_duration, :url_png, :url_svg, :url_svg_alt)`,
		rows: func() any { return &[]practiceRow{} },
	},
	{
		file:   "moods.json",
		table:  "moods",
		insert: `INSERT INTO moods (id, mood, description, recommended_practices) VALUES (:id, :mood, :description, :recommended_practices)`,
		rows:   func() any { return &[]models.Mood{} },
	},
}

// SeedResult reports how many rows were loaded per table
type SeedResult map[string]int

// Seed replaces the catalog tables with the JSON exports found in fsys.
// Every table is cleared; files that are missing leave their table empty.
// Runs in a single transaction.
func Seed(ctx context.Context, db *sqlx.DB, fsys fs.FS) (SeedResult, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for i := len(seedTables) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+seedTables[i].table); err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", seedTables[i].table, err)
		}
	}

	result := SeedResult{}
	for _, st := range seedTables {
		raw, err := fs.ReadFile(fsys, st.file)
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("seed file not found, skipping", "file", st.file)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", st.file, err)
		}

		rows := st.rows()
		if err := json.Unmarshal(raw, rows); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", st.file, err)
		}

		n, err := insertAll(ctx, tx, st.insert, rows)
		if err != nil {
			return nil, fmt.Errorf("failed to insert %s: %w", st.table, err)
		}
		result[st.table] = n
		slog.Info("seeded table", "table", st.table, "rows", n)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed: %w", err)
	}
	return result, nil
}

func insertAll(ctx context.Context, tx *sqlx.Tx, query string, rows any) (int, error) {
	list := reflect.ValueOf(rows).Elem()
	for i := 0; i < list.Len(); i++ {
		if _, err := tx.NamedExecContext(ctx, query, list.Index(i).Interface()); err != nil {
			return i, err
		}
	}
	return list.Len(), nil
}
