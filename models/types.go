package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Catalog metadata constants
const (
	CatalogVersion     = "1.0.0"
	CatalogLastUpdated = "2025-11-08"
	CatalogCreatedBy   = "Fitnest"
)

// Catalog types

type Pose struct {
	ID                  int64   `json:"id" db:"id"`
	EnglishName         string  `json:"english_name" db:"english_name"`
	SanskritNameAdapted *string `json:"sanskrit_name_adapted" db:"sanskrit_name_adapted"`
	SanskritName        *string `json:"sanskrit_name" db:"sanskrit_name"`
	TranslationName     *string `json:"translation_name" db:"translation_name"`
	PoseDescription     *string `json:"pose_description" db:"pose_description"`
	PoseBenefits        *string `json:"pose_benefits" db:"pose_benefits"`
	URLSVG              *string `json:"url_svg" db:"url_svg"`
	URLPNG              *string `json:"url_png" db:"url_png"`
	URLSVGAlt           *string `json:"url_svg_alt" db:"url_svg_alt"`
	DifficultyLevel     string  `json:"difficulty_level,omitempty" db:"difficulty_level"`
}

type Category struct {
	ID                  int64   `json:"id" db:"id"`
	CategoryName        string  `json:"category_name" db:"category_name"`
	CategoryDescription *string `json:"category_description" db:"category_description"`
	Poses               []Pose  `json:"poses" db:"-"`
}

type Difficulty struct {
	ID              int64  `json:"id" db:"id"`
	DifficultyLevel string `json:"difficulty_level" db:"difficulty_level"`
}

// TransitivePose links a pose to a category at a difficulty
type TransitivePose struct {
	ID           int64  `json:"id" db:"id"`
	CategoryID   int64  `json:"category_id" db:"category_id"`
	PoseID       int64  `json:"pose_id" db:"pose_id"`
	DifficultyID *int64 `json:"difficulty_id" db:"difficulty_id"`
}

type MeditationCategory struct {
	ID                  int64                `json:"id" db:"id"`
	CategoryName        string               `json:"category_name" db:"category_name"`
	CategoryDescription string               `json:"category_description" db:"category_description"`
	Practices           []MeditationPractice `json:"practices" db:"-"`
}

// MeditationPractice media URLs are stored but never served
type MeditationPractice struct {
	ID                  int64   `json:"id" db:"id"`
	CategoryID          int64   `json:"category_id" db:"category_id"`
	EnglishName         string  `json:"english_name" db:"english_name"`
	PracticeBenefits    string  `json:"practice_benefits" db:"practice_benefits"`
	PracticeDescription string  `json:"practice_description" db:"practice_description"`
	SuggestedDuration   string  `json:"suggested_duration" db:"suggested_duration"`
	URLPNG              *string `json:"-" db:"url_png"`
	URLSVG              *string `json:"-" db:"url_svg"`
	URLSVGAlt           *string `json:"-" db:"url_svg_alt"`
}

type Mood struct {
	ID                   int64   `json:"id" db:"id"`
	Mood                 string  `json:"mood" db:"mood"`
	Description          string  `json:"description" db:"description"`
	RecommendedPractices IntList `json:"recommended_practices" db:"recommended_practices"`
}

// IntList is a list of ids persisted as a JSON array in a text column
type IntList []int64

func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]int64(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *IntList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = IntList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into IntList", src)
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return fmt.Errorf("decode id list: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	*l = ids
	return nil
}

// CatalogQuery holds recognized catalog filters; zero values mean unset
type CatalogQuery struct {
	ID    int64
	Name  string
	Level string
}

func (q CatalogQuery) Empty() bool {
	return q.ID == 0 && q.Name == "" && q.Level == ""
}

type Metadata struct {
	Version            string   `json:"version"`
	LastUpdated        string   `json:"last_updated"`
	SupportedLanguages []string `json:"supported_languages"`
	CreatedBy          string   `json:"created_by"`
}

func CatalogMetadata() Metadata {
	return Metadata{
		Version:            CatalogVersion,
		LastUpdated:        CatalogLastUpdated,
		SupportedLanguages: []string{"en"},
		CreatedBy:          CatalogCreatedBy,
	}
}

type Envelope struct {
	Metadata Metadata `json:"metadata"`
	Data     any      `json:"data"`
}

// Calculator request types

type BMIRequest struct {
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
	Unit   string  `json:"unit"`
}

type BMRRequest struct {
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	Age           float64 `json:"age"`
	Gender        string  `json:"gender"`
	Unit          string  `json:"unit"`
	ActivityLevel string  `json:"activity_level"`
}

type NutritionRequest struct {
	Height   float64 `json:"height"`
	Weight   float64 `json:"weight"`
	Age      float64 `json:"age"`
	Gender   string  `json:"gender"`
	Unit     string  `json:"unit"`
	Activity float64 `json:"activity"`
	Goal     string  `json:"goal"`
}

// Account request types

type CheckUserRequest struct {
	Email string `json:"email"`
}

type CheckUserResponse struct {
	Exists bool `json:"exists"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	Email string `json:"email"`
}

type UpdatePasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type PasswordStrengthRequest struct {
	Password string `json:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
