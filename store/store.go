// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sanskar1309/fitnest-fullstack/models"
)

const poseColumns = `p.id, p.english_name, p.sanskrit_name_adapted, p.sanskrit_name, p.translation_name,
	p.pose_description, p.pose_benefits, p.url_svg, p.url_png, p.url_svg_alt`

// Store reads the yoga and meditation catalog
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// categoryPose is one row of the category/pose join
type categoryPose struct {
	CategoryID int64 `db:"category_id"`
	models.Pose
}

// ListCategories returns every category with its poses
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := s.db.SelectContext(ctx, &categories, `
		SELECT id, category_name, category_description
		FROM categories
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	if err := s.attachPoses(ctx, categories, ""); err != nil {
		return nil, err
	}
	return categories, nil
}

// FindCategory returns the first category matching the id and/or name.
// Name matching is case-insensitive. Returns nil when nothing matches.
func (s *Store) FindCategory(ctx context.Context, q models.CatalogQuery) (*models.Category, error) {
	where, args := idNameFilter(q, "id", "category_name")

	categories := []models.Category{}
	err := s.db.SelectContext(ctx, &categories, s.db.Rebind(`
		SELECT id, category_name, category_description
		FROM categories`+where+`
		ORDER BY id
		LIMIT 1
	`), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	if len(categories) == 0 {
		return nil, nil
	}

	if err := s.attachPoses(ctx, categories, ""); err != nil {
		return nil, err
	}
	return &categories[0], nil
}

// FindCategoryByLevel returns the category with only the poses filed under
// the given difficulty level. Returns nil if the category has none.
func (s *Store) FindCategoryByLevel(ctx context.Context, id int64, level string) (*models.Category, error) {
	categories := []models.Category{}
	err := s.db.SelectContext(ctx, &categories, s.db.Rebind(`
		SELECT id, category_name, category_description
		FROM categories
		WHERE id = ?
	`), id)
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	if len(categories) == 0 {
		return nil, nil
	}

	if err := s.attachPoses(ctx, categories, level); err != nil {
		return nil, err
	}
	if len(categories[0].Poses) == 0 {
		return nil, nil
	}
	return &categories[0], nil
}

// attachPoses fills Poses for each category from the join table.
// A non-empty level restricts poses to that difficulty and sets DifficultyLevel.
func (s *Store) attachPoses(ctx context.Context, categories []models.Category, level string) error {
	if len(categories) == 0 {
		return nil
	}

	ids := make([]int64, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}

	query := `
		SELECT tp.category_id, ` + poseColumns + `, COALESCE(d.difficulty_level, '') AS difficulty_level
		FROM transitive_poses tp
		JOIN poses p ON p.id = tp.pose_id
		LEFT JOIN difficulty d ON d.id = tp.difficulty_id
		WHERE tp.category_id IN (?)`
	args := []any{ids}
	if level != "" {
		query += ` AND LOWER(d.difficulty_level) = LOWER(?)`
		args = append(args, level)
	}
	query += ` ORDER BY tp.id`

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return fmt.Errorf("failed to build pose query: %w", err)
	}

	rows := []categoryPose{}
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to query category poses: %w", err)
	}

	byCategory := make(map[int64][]models.Pose, len(categories))
	for _, row := range rows {
		pose := row.Pose
		if level == "" {
			pose.DifficultyLevel = ""
		}
		byCategory[row.CategoryID] = append(byCategory[row.CategoryID], pose)
	}

	for i := range categories {
		categories[i].Poses = byCategory[categories[i].ID]
		if categories[i].Poses == nil {
			categories[i].Poses = []models.Pose{}
		}
	}
	return nil
}

// ListPoses returns all poses ordered by English name
func (s *Store) ListPoses(ctx context.Context) ([]models.Pose, error) {
	poses := []models.Pose{}
	err := s.db.SelectContext(ctx, &poses, `
		SELECT `+poseColumns+`
		FROM poses p
		ORDER BY p.english_name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query poses: %w", err)
	}
	return poses, nil
}

// FindPose returns the first pose matching the id and/or English name.
// Returns nil when nothing matches.
func (s *Store) FindPose(ctx context.Context, q models.CatalogQuery) (*models.Pose, error) {
	where, args := idNameFilter(q, "p.id", "p.english_name")

	poses := []models.Pose{}
	err := s.db.SelectContext(ctx, &poses, s.db.Rebind(`
		SELECT `+poseColumns+`
		FROM poses p`+where+`
		ORDER BY p.id
		LIMIT 1
	`), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pose: %w", err)
	}
	if len(poses) == 0 {
		return nil, nil
	}
	return &poses[0], nil
}

// ListPosesByLevel returns each pose filed under the difficulty level in
// any category, once, ordered by English name
func (s *Store) ListPosesByLevel(ctx context.Context, level string) ([]models.Pose, error) {
	rows := []models.Pose{}
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(`
		SELECT `+poseColumns+`, d.difficulty_level
		FROM poses p
		JOIN transitive_poses tp ON tp.pose_id = p.id
		JOIN difficulty d ON d.id = tp.difficulty_id
		WHERE LOWER(d.difficulty_level) = LOWER(?)
		ORDER BY p.english_name ASC, tp.id ASC
	`), level)
	if err != nil {
		return nil, fmt.Errorf("failed to query poses by level: %w", err)
	}

	seen := make(map[int64]bool, len(rows))
	poses := make([]models.Pose, 0, len(rows))
	for _, p := range rows {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		poses = append(poses, p)
	}
	return poses, nil
}

// ListMeditation returns every meditation category with its practices
func (s *Store) ListMeditation(ctx context.Context) ([]models.MeditationCategory, error) {
	categories := []models.MeditationCategory{}
	err := s.db.SelectContext(ctx, &categories, `
		SELECT id, category_name, category_description
		FROM meditation_categories
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query meditation categories: %w", err)
	}

	practices := []models.MeditationPractice{}
	err = s.db.SelectContext(ctx, &practices, `
		SELECT id, category_id, english_name, practice_benefits, practice_description,
		       suggested_duration, url_png, url_svg, url_svg_alt
		FROM meditation_practices
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query meditation practices: %w", err)
	}

	byCategory := make(map[int64][]models.MeditationPractice)
	for _, p := range practices {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}
	for i := range categories {
		categories[i].Practices = byCategory[categories[i].ID]
		if categories[i].Practices == nil {
			categories[i].Practices = []models.MeditationPractice{}
		}
	}
	return categories, nil
}

// ListMoods returns every mood
func (s *Store) ListMoods(ctx context.Context) ([]models.Mood, error) {
	moods := []models.Mood{}
	err := s.db.SelectContext(ctx, &moods, `
		SELECT id, mood, description, recommended_practices
		FROM moods
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query moods: %w", err)
	}
	return moods, nil
}

// idNameFilter builds a WHERE clause for exact id and case-insensitive name
func idNameFilter(q models.CatalogQuery, idCol, nameCol string) (string, []any) {
	var clauses []string
	var args []any
	if q.ID != 0 {
		clauses = append(clauses, idCol+" = ?")
		args = append(args, q.ID)
	}
	if q.Name != "" {
		clauses = append(clauses, "LOWER("+nameCol+") = LOWER(?)")
		args = append(args, q.Name)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return "\n\t\tWHERE " + strings.Join(clauses, " AND "), args
}
