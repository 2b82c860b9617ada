// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package fallback serves the meditation and mood catalogs from static JSON
// files when the database cannot.
package fallback

import (
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/sanskar1309/fitnest-fullstack/models"
)

const (
	MeditationFile = "meditations.json"
	MoodsFile      = "moods.json"
)

// Loader reads fallback files from FS
type Loader struct {
	FS fs.FS
}

// Meditation returns the categories from meditations.json.
// Practice media URLs are dropped on decode.
func (l Loader) Meditation() ([]models.MeditationCategory, error) {
	var file struct {
		Categories []models.MeditationCategory `json:"categories"`
	}
	if err := l.decode(MeditationFile, &file); err != nil {
		return nil, err
	}
	if file.Categories == nil {
		return nil, fmt.Errorf("%s has no categories", MeditationFile)
	}

	for i := range file.Categories {
		if file.Categories[i].Practices == nil {
			file.Categories[i].Practices = []models.MeditationPractice{}
		}
	}
	return file.Categories, nil
}

// Moods returns the moods from moods.json, numbering any without an id by position
func (l Loader) Moods() ([]models.Mood, error) {
	var file struct {
		Moods []models.Mood `json:"moods"`
	}
	if err := l.decode(MoodsFile, &file); err != nil {
		return nil, err
	}
	if file.Moods == nil {
		return nil, fmt.Errorf("%s has no moods", MoodsFile)
	}

	for i := range file.Moods {
		if file.Moods[i].ID == 0 {
			file.Moods[i].ID = int64(i + 1)
		}
		if file.Moods[i].RecommendedPractices == nil {
			file.Moods[i].RecommendedPractices = models.IntList{}
		}
	}
	return file.Moods, nil
}

func (l Loader) decode(name string, v any) error {
	if l.FS == nil {
		return fmt.Errorf("no fallback directory configured")
	}
	data, err := fs.ReadFile(l.FS, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
