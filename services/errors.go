package services

import "errors"

var (
	ErrQuestionNotFound   = errors.New("question not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrBlankText          = errors.New("question and answer must not be blank")
	ErrInvalidCategory    = errors.New("quiz category does not exist")
	ErrInvalidPage        = errors.New("page must be a positive integer")
	ErrPageNotFound       = errors.New("page out of range")
	ErrTooManyPrevious    = errors.New("too many previous questions")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
