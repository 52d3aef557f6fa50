package services

import (
	"context"
	"sync"
	"testing"

	"trivia/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func seedCategories(t *testing.T, db *gorm.DB, names ...string) []models.Category {
	t.Helper()
	categories := make([]models.Category, len(names))
	for i, name := range names {
		categories[i] = models.Category{ID: uint(i + 1), Type: name}
	}
	require.NoError(t, db.Create(&categories).Error)
	return categories
}

func seedQuestion(t *testing.T, db *gorm.DB, category uint, text string) models.Question {
	t.Helper()
	q := models.Question{Question: text, Answer: "answer to " + text, CategoryID: category, Difficulty: 2}
	require.NoError(t, db.Create(&q).Error)
	return q
}

type testFixture struct {
	db         *gorm.DB
	categories *CategoryService
	questions  *QuestionService
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()
	db := newTestDB(t)
	categories := NewCategoryService(db, nil)
	return &testFixture{
		db:         db,
		categories: categories,
		questions:  NewQuestionService(db, categories, 3),
	}
}

type recordedEvent struct {
	Type    string
	Payload interface{}
}

type recordingFeed struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *recordingFeed) Publish(eventType string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{Type: eventType, Payload: payload})
}

func (f *recordingFeed) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Type
	}
	return out
}

// staticLister serves a fixed question set, keyed by category.
type staticLister struct {
	questions []models.Question
	err       error
	calls     int
}

func (l *staticLister) QuestionsByCategory(_ context.Context, filter CategoryFilter) ([]models.Question, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	var out []models.Question
	for _, q := range l.questions {
		if filter == AllCategories || q.CategoryID == uint(filter) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (l *staticLister) CategoryExists(_ context.Context, id uint) (bool, error) {
	return id >= 1 && id <= 6, nil
}
