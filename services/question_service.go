package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trivia/models"

	"gorm.io/gorm"
)

const DefaultQuestionsPerPage = 10

// CategoryFilter selects questions by category id. AllCategories means no
// filtering.
type CategoryFilter uint

const AllCategories CategoryFilter = 0

// FeedPublisher receives catalog change events.
type FeedPublisher interface {
	Publish(eventType string, payload interface{})
}

const (
	EventQuestionCreated = "question_created"
	EventQuestionUpdated = "question_updated"
	EventQuestionDeleted = "question_deleted"
)

type QuestionService struct {
	db         *gorm.DB
	categories *CategoryService
	perPage    int
	feed       FeedPublisher
}

func NewQuestionService(db *gorm.DB, categories *CategoryService, perPage int) *QuestionService {
	if perPage <= 0 {
		perPage = DefaultQuestionsPerPage
	}
	return &QuestionService{
		db:         db,
		categories: categories,
		perPage:    perPage,
	}
}

// AttachFeed makes create/update/delete publish events to feed.
func (s *QuestionService) AttachFeed(feed FeedPublisher) {
	s.feed = feed
}

type CreateQuestionRequest struct {
	Question   string `json:"question" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
	Category   uint   `json:"category" binding:"required"`
	Difficulty int    `json:"difficulty" binding:"required,min=1,max=5"`
}

type UpdateQuestionRequest struct {
	Question   *string `json:"question" binding:"omitempty,min=1"`
	Answer     *string `json:"answer" binding:"omitempty,min=1"`
	Category   *uint   `json:"category" binding:"omitempty,min=1"`
	Difficulty *int    `json:"difficulty" binding:"omitempty,min=1,max=5"`
}

type SearchQuestionsRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

type QuestionPage struct {
	Page      int
	Questions []models.Question
	Total     int64
}

func (s *QuestionService) PerPage() int {
	return s.perPage
}

func (s *QuestionService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	total, err := s.CountQuestions(ctx)
	if err != nil {
		return nil, err
	}

	var questions []models.Question
	err = s.db.WithContext(ctx).
		Order("id").
		Offset((page - 1) * s.perPage).
		Limit(s.perPage).
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	if len(questions) == 0 && page > 1 {
		return nil, ErrPageNotFound
	}

	return &QuestionPage{Page: page, Questions: questions, Total: total}, nil
}

func (s *QuestionService) CountQuestions(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Question{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return total, nil
}

func (s *QuestionService) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	if err := s.db.WithContext(ctx).First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question %d: %w", id, err)
	}
	return &question, nil
}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SearchQuestions returns questions whose text contains term, ignoring case.
func (s *QuestionService) SearchQuestions(ctx context.Context, term string) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.WithContext(ctx).
		Where(`LOWER(question) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(term))+"%").
		Order("id").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return questions, nil
}

func (s *QuestionService) QuestionsByCategory(ctx context.Context, filter CategoryFilter) ([]models.Question, error) {
	query := s.db.WithContext(ctx).Order("id")
	if filter != AllCategories {
		query = query.Where("category_id = ?", uint(filter))
	}

	var questions []models.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("questions for category %d: %w", filter, err)
	}
	return questions, nil
}

func (s *QuestionService) CreateQuestion(ctx context.Context, req *CreateQuestionRequest) (*models.Question, error) {
	question := models.Question{
		Question:   strings.TrimSpace(req.Question),
		Answer:     strings.TrimSpace(req.Answer),
		CategoryID: req.Category,
		Difficulty: req.Difficulty,
	}
	if question.Question == "" || question.Answer == "" {
		return nil, ErrBlankText
	}

	if err := s.requireCategory(ctx, req.Category); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&question).Error; err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	s.publish(EventQuestionCreated, question)
	return &question, nil
}

// UpdateQuestion applies only the fields present in req.
func (s *QuestionService) UpdateQuestion(ctx context.Context, id uint, req *UpdateQuestionRequest) (*models.Question, error) {
	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		if err := s.requireCategory(ctx, *req.Category); err != nil {
			return nil, err
		}
		question.CategoryID = *req.Category
	}
	if req.Question != nil {
		question.Question = strings.TrimSpace(*req.Question)
	}
	if req.Answer != nil {
		question.Answer = strings.TrimSpace(*req.Answer)
	}
	if question.Question == "" || question.Answer == "" {
		return nil, ErrBlankText
	}
	if req.Difficulty != nil {
		question.Difficulty = *req.Difficulty
	}

	if err := s.db.WithContext(ctx).Save(question).Error; err != nil {
		return nil, fmt.Errorf("update question %d: %w", id, err)
	}

	s.publish(EventQuestionUpdated, *question)
	return question, nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id uint) error {
	// Check if question exists
	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Question{}, id).Error; err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}

	s.publish(EventQuestionDeleted, *question)
	return nil
}

func (s *QuestionService) requireCategory(ctx context.Context, id uint) error {
	ok, err := s.categories.CategoryExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *QuestionService) publish(eventType string, question models.Question) {
	if s.feed == nil {
		return
	}
	s.feed.Publish(eventType, question)
}
