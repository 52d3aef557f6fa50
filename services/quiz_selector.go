package services

import (
	"context"
	"math/rand/v2"

	"trivia/models"
)

// QuestionLister returns every question matching a category filter. Order is
// irrelevant to the selector.
type QuestionLister interface {
	QuestionsByCategory(ctx context.Context, filter CategoryFilter) ([]models.Question, error)
}

// QuizSelector draws one unseen question per call. It holds no session state;
// callers accumulate the ids already asked.
type QuizSelector struct {
	questions QuestionLister
	intn      func(n int) int
}

func NewQuizSelector(questions QuestionLister) *QuizSelector {
	return &QuizSelector{
		questions: questions,
		intn:      rand.IntN,
	}
}

// SelectNext returns a uniformly random question matching filter whose id is
// not in previous. A nil question with a nil error means every candidate has
// already been asked.
func (s *QuizSelector) SelectNext(ctx context.Context, previous map[uint]struct{}, filter CategoryFilter) (*models.Question, error) {
	questions, err := s.questions.QuestionsByCategory(ctx, filter)
	if err != nil {
		return nil, err
	}

	var candidates []models.Question
	for _, q := range questions {
		if _, seen := previous[q.ID]; !seen {
			candidates = append(candidates, q)
		}
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	picked := candidates[s.intn(len(candidates))]
	return &picked, nil
}
