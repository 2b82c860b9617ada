// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fallback

import (
	"encoding/json"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

var files = fstest.MapFS{
	"meditations.json": {Data: []byte(`{"categories": [
		{"id": 1, "category_name": "Breath", "category_description": "Breathing", "practices": [
			{"id": 1, "english_name": "Box Breathing", "practice_benefits": "Calm",
			 "practice_description": "Four counts", "suggested_duration": "5 minutes",
			 "url_png": "https://cdn.example/box.png", "url_svg": "https://cdn.example/box.svg"}
		]},
		{"id": 2, "category_name": "Empty", "category_description": "Nothing yet"}
	]}`)},
	"moods.json": {Data: []byte(`{"moods": [
		{"mood": "Anxious", "description": "Worried", "recommended_practices": [1, 3]},
		{"mood": "Tired", "description": "Low energy"}
	]}`)},
}

func TestMeditation(t *testing.T) {
	categories, err := Loader{FS: files}.Meditation()
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(categories))
	}
	if categories[1].Practices == nil {
		t.Error("Expected an empty practice list, got nil")
	}

	out, err := json.Marshal(categories)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "url_") {
		t.Errorf("Media URLs leaked into output: %s", out)
	}
	if !strings.Contains(string(out), `"suggested_duration":"5 minutes"`) {
		t.Errorf("Expected practice fields to survive: %s", out)
	}
}

func TestMeditationKeepsFixedShape(t *testing.T) {
	extra := fstest.MapFS{
		"meditations.json": {Data: []byte(`{"categories": [
			{"id": 1, "category_name": "Breath", "category_description": "Breathing", "practices": [
				{"id": 7, "english_name": "Box Breathing", "suggested_duration": "5 minutes", "instructor": "Ada"}
			]}
		]}`)},
	}

	categories, err := Loader{FS: extra}.Meditation()
	if err != nil {
		t.Fatalf("Unknown practice fields should not fail the load: %v", err)
	}
	out, err := json.Marshal(categories)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "instructor") {
		t.Errorf("Fields outside the practice type should be dropped: %s", out)
	}
	if !strings.Contains(string(out), `"english_name":"Box Breathing"`) {
		t.Errorf("Expected known fields to survive: %s", out)
	}
}

func TestMoodsNumberedByPosition(t *testing.T) {
	moods, err := Loader{FS: files}.Moods()
	if err != nil {
		t.Fatal(err)
	}
	if len(moods) != 2 {
		t.Fatalf("Expected 2 moods, got %d", len(moods))
	}
	if moods[0].ID != 1 || moods[1].ID != 2 {
		t.Errorf("Expected ids 1 and 2, got %d and %d", moods[0].ID, moods[1].ID)
	}
	if len(moods[0].RecommendedPractices) != 2 {
		t.Errorf("Unexpected practices: %v", moods[0].RecommendedPractices)
	}
	if moods[1].RecommendedPractices == nil {
		t.Error("Expected empty recommended practices, got nil")
	}
}

func TestMissingFile(t *testing.T) {
	_, err := Loader{FS: fstest.MapFS{}}.Moods()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestMalformedFile(t *testing.T) {
	bad := fstest.MapFS{
		"meditations.json": {Data: []byte(`{"categories": `)},
		"moods.json":       {Data: []byte(`{"something_else": []}`)},
	}
	if _, err := (Loader{FS: bad}).Meditation(); err == nil {
		t.Error("Expected parse error")
	}
	if _, err := (Loader{FS: bad}).Moods(); err == nil {
		t.Error("Expected error for file without moods")
	}
}

func TestNoDirectory(t *testing.T) {
	if _, err := (Loader{}).Meditation(); err == nil {
		t.Error("Expected error without FS")
	}
}
