package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"trivia/models"
	"trivia/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type QuestionHandler struct {
	questionService *services.QuestionService
	categoryService *services.CategoryService
}

func NewQuestionHandler(questionService *services.QuestionService, categoryService *services.CategoryService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		categoryService: categoryService,
	}
}

func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest)
			return
		}
		page = n
	}

	result, err := h.questionService.ListQuestions(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"questions":          nonNil(result.Questions),
		"total_questions":    result.Total,
		"categories":         models.CategoryMap(categories),
		"current_categories": currentCategories(result.Questions, categories),
		"current_category":   nil,
	})
}

func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	question, err := h.questionService.GetQuestion(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "question": question})
}

// PostQuestions searches when the body carries searchTerm and creates a
// question otherwise.
func (h *QuestionHandler) PostQuestions(c *gin.Context) {
	var search services.SearchQuestionsRequest
	if err := c.ShouldBindBodyWith(&search, binding.JSON); err != nil {
		RespondError(c, http.StatusBadRequest)
		return
	}

	if search.SearchTerm != nil {
		h.searchQuestions(c, *search.SearchTerm)
		return
	}
	h.createQuestion(c)
}

func (h *QuestionHandler) searchQuestions(c *gin.Context, term string) {
	questions, err := h.questionService.SearchQuestions(c.Request.Context(), term)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        nonNil(questions),
		"total_questions":  len(questions),
		"current_category": nil,
	})
}

func (h *QuestionHandler) createQuestion(c *gin.Context) {
	var req services.CreateQuestionRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		RespondError(c, http.StatusBadRequest)
		return
	}

	question, err := h.questionService.CreateQuestion(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	total, err := h.questionService.CountQuestions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"created":         question.ID,
		"question":        question,
		"total_questions": total,
	})
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest)
		return
	}

	question, err := h.questionService.UpdateQuestion(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "question": question})
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.questionService.DeleteQuestion(c.Request.Context(), id)
	if errors.Is(err, services.ErrQuestionNotFound) {
		RespondError(c, http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result, err := h.questionService.ListQuestions(c.Request.Context(), 1)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"deleted_question": id,
		"questions":        nonNil(result.Questions),
		"total_questions":  result.Total,
	})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		RespondError(c, http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

// currentCategories lists the distinct category types present on a page, in
// order of first appearance.
func currentCategories(questions []models.Question, categories []models.Category) []string {
	names := models.CategoryMap(categories)
	seen := make(map[uint]bool)
	out := []string{}
	for _, q := range questions {
		if seen[q.CategoryID] {
			continue
		}
		seen[q.CategoryID] = true
		if name, ok := names[q.CategoryID]; ok {
			out = append(out, name)
		}
	}
	return out
}

func nonNil(questions []models.Question) []models.Question {
	if questions == nil {
		return []models.Question{}
	}
	return questions
}
