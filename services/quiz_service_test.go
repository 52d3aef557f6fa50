package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryRef(id int) *QuizCategory {
	return &QuizCategory{Type: "History", ID: &id}
}

func TestNextQuestionInvalidCategory(t *testing.T) {
	lister := &staticLister{questions: questionsAcrossCategories()}
	quiz := NewQuizService(lister)

	for _, id := range []int{400, 7, -1} {
		q, err := quiz.NextQuestion(context.Background(), &QuizRequest{
			PreviousQuestions: []uint{},
			QuizCategory:      categoryRef(id),
		})
		assert.ErrorIs(t, err, ErrInvalidCategory, "category %d", id)
		assert.Nil(t, q)
	}
	assert.Zero(t, lister.calls, "selection must not run for invalid categories")
}

func TestNextQuestionAllSentinel(t *testing.T) {
	quiz := NewQuizService(&staticLister{questions: questionsAcrossCategories()})

	q, err := quiz.NextQuestion(context.Background(), &QuizRequest{
		PreviousQuestions: []uint{},
		QuizCategory:      &QuizCategory{Type: "ALL", ID: new(int)},
	})
	require.NoError(t, err)
	assert.NotNil(t, q)
}

func TestNextQuestionWithoutCategoryDrawsFromAll(t *testing.T) {
	lister := &staticLister{questions: questionsAcrossCategories()}
	quiz := NewQuizService(lister)

	for _, category := range []*QuizCategory{nil, {Type: "Science"}} {
		q, err := quiz.NextQuestion(context.Background(), &QuizRequest{QuizCategory: category})
		require.NoError(t, err)
		assert.NotNil(t, q)
	}
	assert.Equal(t, 2, lister.calls)
}

func TestNextQuestionExhaustionIsNotAnError(t *testing.T) {
	quiz := NewQuizService(&staticLister{questions: questionsAcrossCategories()})

	q, err := quiz.NextQuestion(context.Background(), &QuizRequest{
		PreviousQuestions: []uint{1, 2, 3, 3, 999},
		QuizCategory:      categoryRef(1),
	})
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestNextQuestionTooManyPrevious(t *testing.T) {
	quiz := NewQuizService(&staticLister{})

	previous := make([]uint, MaxPreviousQuestions+1)
	_, err := quiz.NextQuestion(context.Background(), &QuizRequest{
		PreviousQuestions: previous,
		QuizCategory:      categoryRef(0),
	})
	assert.ErrorIs(t, err, ErrTooManyPrevious)
}

func TestNextQuestionAgainstStore(t *testing.T) {
	f := newFixture(t)
	seedCategories(t, f.db, "Science", "Art")
	first := seedQuestion(t, f.db, 1, "What is H2O?")
	second := seedQuestion(t, f.db, 1, "What is NaCl?")
	seedQuestion(t, f.db, 2, "Who painted the Mona Lisa?")

	quiz := NewQuizService(StoreSource{Questions: f.questions, Categories: f.categories})

	q, err := quiz.NextQuestion(context.Background(), &QuizRequest{
		PreviousQuestions: []uint{first.ID},
		QuizCategory:      categoryRef(1),
	})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, second.ID, q.ID)

	_, err = quiz.NextQuestion(context.Background(), &QuizRequest{
		PreviousQuestions: []uint{},
		QuizCategory:      categoryRef(3),
	})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}
