package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"trivia/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	categoriesCacheKey = "categories:all"
	categoriesCacheTTL = 10 * time.Minute
)

type CategoryService struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewCategoryService builds the service. A nil redis client disables caching.
func NewCategoryService(db *gorm.DB, redis *redis.Client) *CategoryService {
	return &CategoryService{
		db:    db,
		redis: redis,
	}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	if categories, ok := s.getCachedCategories(ctx); ok {
		return categories, nil
	}

	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if err := s.storeCategories(ctx, categories); err != nil {
		log.Printf("Failed to cache categories: %v", err)
	}

	return categories, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	for i := range categories {
		if categories[i].ID == id {
			return &categories[i], nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (s *CategoryService) CategoryExists(ctx context.Context, id uint) (bool, error) {
	_, err := s.GetCategory(ctx, id)
	if errors.Is(err, ErrCategoryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InvalidateCache drops the cached category list so the next read hits the DB.
func (s *CategoryService) InvalidateCache(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	if err := s.redis.Del(ctx, categoriesCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate category cache: %w", err)
	}
	return nil
}

func (s *CategoryService) storeCategories(ctx context.Context, categories []models.Category) error {
	if s.redis == nil {
		return nil
	}

	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}

	if err := s.redis.Set(ctx, categoriesCacheKey, data, categoriesCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to store in Redis: %w", err)
	}
	return nil
}

func (s *CategoryService) getCachedCategories(ctx context.Context) ([]models.Category, bool) {
	if s.redis == nil {
		return nil, false
	}

	data, err := s.redis.Get(ctx, categoriesCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis error getting categories: %v", err)
		}
		return nil, false
	}

	var categories []models.Category
	if err := json.Unmarshal([]byte(data), &categories); err != nil {
		log.Printf("Failed to unmarshal cached categories: %v", err)
		return nil, false
	}
	return categories, true
}
