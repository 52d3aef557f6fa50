package services

import (
	"context"

	"trivia/models"
)

// MaxPreviousQuestions bounds the caller-supplied history of a quiz session.
const MaxPreviousQuestions = 1000

// QuestionSource is the read-only store view a quiz needs.
type QuestionSource interface {
	QuestionLister
	CategoryExists(ctx context.Context, id uint) (bool, error)
}

// StoreSource combines the question and category services into a
// QuestionSource.
type StoreSource struct {
	Questions  *QuestionService
	Categories *CategoryService
}

func (s StoreSource) QuestionsByCategory(ctx context.Context, filter CategoryFilter) ([]models.Question, error) {
	return s.Questions.QuestionsByCategory(ctx, filter)
}

func (s StoreSource) CategoryExists(ctx context.Context, id uint) (bool, error) {
	return s.Categories.CategoryExists(ctx, id)
}

type QuizRequest struct {
	PreviousQuestions []uint        `json:"previous_questions" binding:"required"`
	QuizCategory      *QuizCategory `json:"quiz_category" binding:"required"`
}

// QuizCategory identifies the category to draw from. ID 0 means every
// category, whatever Type says.
type QuizCategory struct {
	Type string `json:"type"`
	ID   *int   `json:"id" binding:"required"`
}

type QuizService struct {
	source   QuestionSource
	selector *QuizSelector
}

func NewQuizService(source QuestionSource) *QuizService {
	return &QuizService{
		source:   source,
		selector: NewQuizSelector(source),
	}
}

// NextQuestion validates the requested category and then picks an unseen
// question. It returns ErrInvalidCategory for unknown categories and a nil
// question once the category is exhausted.
func (s *QuizService) NextQuestion(ctx context.Context, req *QuizRequest) (*models.Question, error) {
	if len(req.PreviousQuestions) > MaxPreviousQuestions {
		return nil, ErrTooManyPrevious
	}

	filter, err := s.resolveFilter(ctx, req.QuizCategory)
	if err != nil {
		return nil, err
	}

	previous := make(map[uint]struct{}, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		previous[id] = struct{}{}
	}

	return s.selector.SelectNext(ctx, previous, filter)
}

func (s *QuizService) resolveFilter(ctx context.Context, category *QuizCategory) (CategoryFilter, error) {
	// Binding rejects a missing category over HTTP; direct callers get ALL.
	if category == nil || category.ID == nil || *category.ID == 0 {
		return AllCategories, nil
	}
	if *category.ID < 0 {
		return 0, ErrInvalidCategory
	}

	id := uint(*category.ID)
	ok, err := s.source.CategoryExists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrInvalidCategory
	}
	return CategoryFilter(id), nil
}
