package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mquintal/aitutor/internal/services"
	"github.com/mquintal/aitutor/pkg/errors"
	"github.com/mquintal/aitutor/pkg/response"
)

// QuizHandler exposes quiz authoring and quiz-taking endpoints.
type QuizHandler struct {
	quizzes *services.QuizService
}

func NewQuizHandler(quizzes *services.QuizService) *QuizHandler {
	return &QuizHandler{quizzes: quizzes}
}

type createQuestionRequest struct {
	Text          string   `json:"text" validate:"required"`
	Type          string   `json:"type" validate:"required,oneof=multiple_choice short_answer"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Options       []string `json:"options"`
}

type createQuizRequest struct {
	Title          string                  `json:"title" validate:"required,max=255"`
	SourceMaterial string                  `json:"source_material"`
	Questions      []createQuestionRequest `json:"questions" validate:"dive"`
}

// POST /api/quizzes
func (h *QuizHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req createQuizRequest
	if !bindAndValidate(c, &req) {
		return
	}

	questions := make([]services.AddQuestionInput, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, services.AddQuestionInput{
			Text:          q.Text,
			Type:          q.Type,
			CorrectAnswer: q.CorrectAnswer,
			Options:       q.Options,
		})
	}

	// The quiz and its questions land atomically; a bad question leaves
	// nothing behind.
	quiz, err := h.quizzes.CreateQuizWithQuestions(requestContext(c), req.Title, req.SourceMaterial, &userID, questions)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"quiz": quiz})
}

// GET /api/quizzes/:id
func (h *QuizHandler) Get(c *gin.Context) {
	quizID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	quiz, err := h.quizzes.GetQuizWithQuestions(requestContext(c), quizID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if quiz == nil {
		response.Error(c, errors.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}

// POST /api/quizzes/:id/attempts
func (h *QuizHandler) StartAttempt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	quizID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	attempt, err := h.quizzes.StartAttempt(requestContext(c), quizID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"attempt": attempt})
}

type recordResponseRequest struct {
	QuestionID   uint   `json:"question_id" validate:"required"`
	UserResponse string `json:"user_response"`
	IsCorrect    bool   `json:"is_correct"`
}

// POST /api/attempts/:id/responses
func (h *QuizHandler) RecordResponse(c *gin.Context) {
	attemptID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req recordResponseRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.quizzes.RecordResponse(requestContext(c), attemptID, req.QuestionID, req.UserResponse, req.IsCorrect)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"response": resp})
}

type completeAttemptRequest struct {
	Score    float64 `json:"score"`
	MaxScore int     `json:"max_score" validate:"required,min=1"`
}

// POST /api/attempts/:id/complete
func (h *QuizHandler) CompleteAttempt(c *gin.Context) {
	attemptID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req completeAttemptRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.quizzes.CompleteAttempt(requestContext(c), attemptID, req.Score, req.MaxScore); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"completed": true})
}

// GET /api/history
func (h *QuizHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	history, err := h.quizzes.UserHistory(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attempts": history})
}
