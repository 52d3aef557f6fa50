// Package seed loads reference categories and questions into the store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"trivia/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type File struct {
	Categories []Category `yaml:"categories"`
	Questions  []Question `yaml:"questions"`
}

type Category struct {
	ID   uint   `yaml:"id"`
	Type string `yaml:"type"`
}

type Question struct {
	Question   string `yaml:"question"`
	Answer     string `yaml:"answer"`
	Category   uint   `yaml:"category"`
	Difficulty int    `yaml:"difficulty"`
}

// Result counts what Apply wrote.
type Result struct {
	Categories int
	Questions  int
	Skipped    int
}

// Defaults returns the six stock trivia categories.
func Defaults() *File {
	return &File{
		Categories: []Category{
			{ID: 1, Type: "Science"},
			{ID: 2, Type: "Art"},
			{ID: 3, Type: "Geography"},
			{ID: 4, Type: "History"},
			{ID: 5, Type: "Entertainment"},
			{ID: 6, Type: "Sports"},
		},
	}
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks ids, difficulties and that every question points at a
// category defined in the same file.
func (f *File) Validate() error {
	var errs []error
	known := make(map[uint]bool, len(f.Categories))
	for i, c := range f.Categories {
		if c.ID == 0 {
			errs = append(errs, fmt.Errorf("categories[%d]: id must be positive", i))
		}
		if strings.TrimSpace(c.Type) == "" {
			errs = append(errs, fmt.Errorf("categories[%d]: type is required", i))
		}
		if known[c.ID] {
			errs = append(errs, fmt.Errorf("categories[%d]: duplicate id %d", i, c.ID))
		}
		known[c.ID] = true
	}

	for i, q := range f.Questions {
		if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Answer) == "" {
			errs = append(errs, fmt.Errorf("questions[%d]: question and answer are required", i))
		}
		if q.Difficulty < models.MinDifficulty || q.Difficulty > models.MaxDifficulty {
			errs = append(errs, fmt.Errorf("questions[%d]: difficulty %d out of range", i, q.Difficulty))
		}
		if !known[q.Category] {
			errs = append(errs, fmt.Errorf("questions[%d]: unknown category %d", i, q.Category))
		}
	}
	return errors.Join(errs...)
}

// Apply upserts categories by id and inserts questions in one transaction.
// A question whose text already exists in its category is skipped.
func Apply(ctx context.Context, db *gorm.DB, f *File) (*Result, error) {
	result := &Result{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range f.Categories {
			category := models.Category{ID: c.ID, Type: strings.TrimSpace(c.Type)}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"type"}),
			}).Create(&category).Error
			if err != nil {
				return fmt.Errorf("upsert category %d: %w", c.ID, err)
			}
			result.Categories++
		}

		for _, q := range f.Questions {
			text := strings.TrimSpace(q.Question)
			var existing int64
			err := tx.Model(&models.Question{}).
				Where("category_id = ? AND question = ?", q.Category, text).
				Count(&existing).Error
			if err != nil {
				return fmt.Errorf("check question %q: %w", text, err)
			}
			if existing > 0 {
				result.Skipped++
				continue
			}

			question := models.Question{
				Question:   text,
				Answer:     strings.TrimSpace(q.Answer),
				CategoryID: q.Category,
				Difficulty: q.Difficulty,
			}
			if err := tx.Create(&question).Error; err != nil {
				return fmt.Errorf("insert question %q: %w", text, err)
			}
			result.Questions++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
