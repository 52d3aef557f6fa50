package handlers

import (
	"errors"
	"net/http"

	"trivia/models"
	"trivia/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
	questionService *services.QuestionService
}

func NewCategoryHandler(categoryService *services.CategoryService, questionService *services.QuestionService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		questionService: questionService,
	}
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if len(categories) == 0 {
		RespondError(c, http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"categories":       models.CategoryMap(categories),
		"total_categories": len(categories),
	})
}

func (h *CategoryHandler) GetCategoryQuestions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if errors.Is(err, services.ErrCategoryNotFound) {
		// An unknown category in the path is a missing resource here.
		RespondError(c, http.StatusNotFound)
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	questions, err := h.questionService.QuestionsByCategory(c.Request.Context(), services.CategoryFilter(category.ID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        nonNil(questions),
		"total_questions":  len(questions),
		"category":         category.Type,
		"current_category": category.Type,
	})
}
