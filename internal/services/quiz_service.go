package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mquintal/aitutor/internal/models"
	apperrors "github.com/mquintal/aitutor/pkg/errors"
	"github.com/mquintal/aitutor/pkg/metrics"
)

// QuizOption customises QuizService behaviour.
type QuizOption func(*QuizService)

// WithQuizClock injects a custom clock primarily for testing.
func WithQuizClock(clock func() time.Time) QuizOption {
	return func(s *QuizService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// AddQuestionInput describes a question to append to a quiz.
type AddQuestionInput struct {
	QuizID        uint
	Text          string
	Type          string
	CorrectAnswer string
	Options       []string
}

// AttemptHistoryEntry is one row of a user's quiz history.
type AttemptHistoryEntry struct {
	AttemptID   uint       `json:"attempt_id"`
	QuizTitle   string     `json:"quiz_title"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Score       *float64   `json:"score,omitempty"`
	MaxScore    *int       `json:"max_score,omitempty"`
}

// QuizService persists quizzes, their questions, attempts and per-question
// responses. Grading happens upstream; this service stores what it is given.
type QuizService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewQuizService constructs a QuizService instance.
func NewQuizService(db *gorm.DB, opts ...QuizOption) (*QuizService, error) {
	if db == nil {
		return nil, errors.New("quiz service: db is required")
	}

	service := &QuizService{db: db, now: time.Now}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// CreateQuiz stores a new quiz. CreatedBy is nil for system-generated quizzes.
func (s *QuizService) CreateQuiz(ctx context.Context, title, sourceMaterial string, createdBy *uint) (*models.Quiz, error) {
	ctx = ensureContext(ctx)

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewBadRequest("title is required")
	}

	quiz := &models.Quiz{
		Title:          title,
		SourceMaterial: sourceMaterial,
		CreatedAt:      s.now(),
		CreatedBy:      createdBy,
	}

	if err := s.db.WithContext(ctx).Create(quiz).Error; err != nil {
		if isForeignKeyError(err) {
			return nil, apperrors.ErrConstraintViolation.WithInternal(err)
		}
		return nil, fmt.Errorf("quiz service: create quiz: %w", err)
	}
	return quiz, nil
}

// buildQuestion validates the input and shapes the record to store. Options
// are required and non-empty for multiple choice and must be absent
// otherwise; the stored list round-trips unchanged.
func buildQuestion(input AddQuestionInput) (*models.Question, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, apperrors.NewBadRequest("question text is required")
	}

	switch input.Type {
	case models.QuestionTypeMultipleChoice:
		if len(input.Options) == 0 {
			return nil, apperrors.NewBadRequest("multiple choice questions require options")
		}
	case models.QuestionTypeShortAnswer:
		if len(input.Options) > 0 {
			return nil, apperrors.NewBadRequest("short answer questions do not take options")
		}
	default:
		return nil, apperrors.NewBadRequest(fmt.Sprintf("unknown question type %q", input.Type))
	}

	question := &models.Question{
		QuizID:        input.QuizID,
		QuestionText:  input.Text,
		QuestionType:  input.Type,
		CorrectAnswer: input.CorrectAnswer,
	}
	if len(input.Options) > 0 {
		question.Options = datatypes.NewJSONSlice(input.Options)
	}
	return question, nil
}

// AddQuestion appends a question to an existing quiz.
func (s *QuizService) AddQuestion(ctx context.Context, input AddQuestionInput) (*models.Question, error) {
	ctx = ensureContext(ctx)

	question, err := buildQuestion(input)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(question).Error; err != nil {
		if isForeignKeyError(err) {
			return nil, apperrors.ErrConstraintViolation.WithInternal(err)
		}
		return nil, fmt.Errorf("quiz service: add question: %w", err)
	}
	return question, nil
}

// CreateQuizWithQuestions stores a quiz and its questions in one
// transaction. A rejected question rolls the quiz row back too, so a quiz
// never appears with only part of its question list.
func (s *QuizService) CreateQuizWithQuestions(ctx context.Context, title, sourceMaterial string, createdBy *uint, questions []AddQuestionInput) (*models.Quiz, error) {
	ctx = ensureContext(ctx)

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewBadRequest("title is required")
	}

	quiz := &models.Quiz{
		Title:          title,
		SourceMaterial: sourceMaterial,
		CreatedAt:      s.now(),
		CreatedBy:      createdBy,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			if isForeignKeyError(err) {
				return apperrors.ErrConstraintViolation.WithInternal(err)
			}
			return fmt.Errorf("quiz service: create quiz: %w", err)
		}

		for _, input := range questions {
			question, err := buildQuestion(input)
			if err != nil {
				return err
			}
			question.QuizID = quiz.ID

			if err := tx.Create(question).Error; err != nil {
				return fmt.Errorf("quiz service: add question: %w", err)
			}
			quiz.Questions = append(quiz.Questions, *question)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

// GetQuizWithQuestions returns a quiz with its questions in insertion order,
// or nil when the quiz does not exist.
func (s *QuizService) GetQuizWithQuestions(ctx context.Context, quizID uint) (*models.Quiz, error) {
	ctx = ensureContext(ctx)

	var quiz models.Quiz
	err := s.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id ASC")
		}).
		First(&quiz, quizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("quiz service: get quiz: %w", err)
	}
	return &quiz, nil
}

// StartAttempt opens a new attempt at started_at = now. Completion fields
// stay unset until CompleteAttempt.
func (s *QuizService) StartAttempt(ctx context.Context, quizID, userID uint) (*models.QuizAttempt, error) {
	ctx = ensureContext(ctx)

	attempt := &models.QuizAttempt{
		QuizID:    quizID,
		UserID:    userID,
		StartedAt: s.now(),
	}

	if err := s.db.WithContext(ctx).Create(attempt).Error; err != nil {
		if isForeignKeyError(err) {
			return nil, apperrors.ErrConstraintViolation.WithInternal(err)
		}
		return nil, fmt.Errorf("quiz service: start attempt: %w", err)
	}

	metrics.QuizAttemptsStarted.Inc()
	return attempt, nil
}

// RecordResponse appends a response row. De-duplication of repeated answers
// to the same question is a caller concern; every call creates a new row.
func (s *QuizService) RecordResponse(ctx context.Context, attemptID, questionID uint, userResponse string, isCorrect bool) (*models.QuestionResponse, error) {
	ctx = ensureContext(ctx)

	response := &models.QuestionResponse{
		AttemptID:    attemptID,
		QuestionID:   questionID,
		UserResponse: userResponse,
		IsCorrect:    isCorrect,
	}

	if err := s.db.WithContext(ctx).Create(response).Error; err != nil {
		if isForeignKeyError(err) {
			return nil, apperrors.ErrConstraintViolation.WithInternal(err)
		}
		return nil, fmt.Errorf("quiz service: record response: %w", err)
	}
	return response, nil
}

// CompleteAttempt sets completed_at together with the score fields in a
// single update. Calling it again overwrites all three; the last call wins.
func (s *QuizService) CompleteAttempt(ctx context.Context, attemptID uint, score float64, maxScore int) error {
	ctx = ensureContext(ctx)

	err := s.db.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Where("id = ?", attemptID).
		Updates(map[string]any{
			"completed_at": s.now(),
			"score":        score,
			"max_score":    maxScore,
		}).Error
	if err != nil {
		return fmt.Errorf("quiz service: complete attempt: %w", err)
	}
	return nil
}

// UserHistory joins attempts with their quizzes for one user, newest attempt
// first. Attempts whose quiz is gone are excluded by the inner join.
func (s *QuizService) UserHistory(ctx context.Context, userID uint) ([]AttemptHistoryEntry, error) {
	ctx = ensureContext(ctx)

	var history []AttemptHistoryEntry
	err := s.db.WithContext(ctx).
		Table("quiz_attempts").
		Select("quiz_attempts.id AS attempt_id, quizzes.title AS quiz_title, quiz_attempts.started_at, quiz_attempts.completed_at, quiz_attempts.score, quiz_attempts.max_score").
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Where("quiz_attempts.user_id = ?", userID).
		Order("quiz_attempts.started_at DESC, quiz_attempts.id DESC").
		Scan(&history).Error
	if err != nil {
		return nil, fmt.Errorf("quiz service: user history: %w", err)
	}
	return history, nil
}
