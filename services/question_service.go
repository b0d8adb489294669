package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/utils/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// previewLength is the number of characters of question text shown in lists
const previewLength = 100

// ComplexityLevels offered by the question forms
var ComplexityLevels = []string{"Remember", "Understand", "Apply", "Analyze", "Evaluate", "Create"}

// QuestionForm is the payload for creating or editing a question
type QuestionForm struct {
	QuestionText    string `form:"question_text" json:"question_text" validate:"required"`
	Topic           string `form:"topic" json:"topic" validate:"required"`
	MainSLO         string `form:"main_slo" json:"main_slo" validate:"required"`
	EnablingSLOs    string `form:"enabling_slos" json:"enabling_slos"`
	ComplexityLevel string `form:"complexity" json:"complexity" validate:"required"`
	StudentLevel    string `form:"student_level" json:"student_level" validate:"required"`
	Options         string `form:"options" json:"options" validate:"required"`
	CorrectAnswer   string `form:"correct_answer" json:"correct_answer" validate:"required"`
}

// FromQuestion fills the form from a stored question for editing
func FromQuestion(q *model.Question) QuestionForm {
	return QuestionForm{
		QuestionText:    q.QuestionText,
		Topic:           q.Topic,
		MainSLO:         q.MainSLO,
		EnablingSLOs:    q.EnablingSLOs,
		ComplexityLevel: q.ComplexityLevel,
		StudentLevel:    q.StudentLevel,
		Options:         q.Options,
		CorrectAnswer:   q.CorrectAnswer,
	}
}

// QuestionSummary is a list or search row
type QuestionSummary struct {
	ID              uint   `json:"id"`
	Topic           string `json:"topic"`
	MainSLO         string `json:"main_slo"`
	ComplexityLevel string `json:"complexity_level"`
	StudentLevel    string `json:"student_level"`
	Preview         string `json:"preview"`
	Created         string `json:"created"`
}

// QuestionService manages the shared question bank
type QuestionService struct {
	db        *gorm.DB
	validator *validation.Validator
	log       *zap.Logger
}

// NewQuestionService creates a question service over the question bank database
func NewQuestionService(db *gorm.DB, log *zap.Logger) *QuestionService {
	return &QuestionService{
		db:        db,
		validator: validation.NewValidator(),
		log:       log,
	}
}

// validate checks presence, option count and the answer letter, and
// normalizes the form in place
func (s *QuestionService) validate(form *QuestionForm) error {
	if err := checkForm(s.validator, form); err != nil {
		return err
	}

	options := model.SplitOptions(form.Options)
	if len(options) < 2 {
		return &ValidationError{Kind: KindTooFewOptions, Field: "options", Message: MsgTooFewOptions}
	}

	form.CorrectAnswer = strings.ToUpper(form.CorrectAnswer)
	for _, opt := range options {
		first, _ := utf8.DecodeRuneInString(opt)
		if strings.ToUpper(string(first)) == form.CorrectAnswer {
			return nil
		}
	}
	return &ValidationError{Kind: KindAnswerMismatch, Field: "correct_answer", Message: MsgAnswerMismatch}
}

func (f *QuestionForm) apply(q *model.Question) {
	q.QuestionText = f.QuestionText
	q.Topic = f.Topic
	q.MainSLO = f.MainSLO
	q.EnablingSLOs = f.EnablingSLOs
	q.ComplexityLevel = f.ComplexityLevel
	q.StudentLevel = f.StudentLevel
	q.Options = f.Options
	q.CorrectAnswer = f.CorrectAnswer
}

// Create validates and stores a new question
func (s *QuestionService) Create(ctx context.Context, form *QuestionForm) (*model.Question, error) {
	if err := s.validate(form); err != nil {
		return nil, err
	}

	q := &model.Question{}
	form.apply(q)
	if err := s.db.WithContext(ctx).Create(q).Error; err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.log.Info("question created", zap.Uint("question_id", q.ID), zap.String("topic", q.Topic))
	return q, nil
}

// Get returns one question by id
func (s *QuestionService) Get(ctx context.Context, id uint) (*model.Question, error) {
	var q model.Question
	if err := s.db.WithContext(ctx).First(&q, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &q, nil
}

// Update replaces every field of an existing question
func (s *QuestionService) Update(ctx context.Context, id uint, form *QuestionForm) (*model.Question, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(form); err != nil {
		return nil, err
	}

	form.apply(q)
	if err := s.db.WithContext(ctx).Save(q).Error; err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	s.log.Info("question updated", zap.Uint("question_id", q.ID))
	return q, nil
}

// Delete removes a question
func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Question{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete question: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	s.log.Info("question deleted", zap.Uint("question_id", id))
	return nil
}

// List returns every question, newest id first
func (s *QuestionService) List(ctx context.Context) ([]QuestionSummary, error) {
	var questions []model.Question
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return summarize(questions), nil
}

// Search matches term against question text, topic and main SLO, and
// complexity exactly. Empty criteria are ignored.
func (s *QuestionService) Search(ctx context.Context, term, complexity string) ([]QuestionSummary, error) {
	term = validation.SanitizeString(term)
	complexity = validation.SanitizeString(complexity)

	q := s.db.WithContext(ctx).Model(&model.Question{})
	if term != "" {
		like := "%" + term + "%"
		q = q.Where("question_text LIKE ? OR topic LIKE ? OR main_slo LIKE ?", like, like, like)
	}
	if complexity != "" {
		q = q.Where("complexity_level = ?", complexity)
	}

	var questions []model.Question
	if err := q.Order("id DESC").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	return summarize(questions), nil
}

func summarize(questions []model.Question) []QuestionSummary {
	out := make([]QuestionSummary, len(questions))
	for i, q := range questions {
		out[i] = QuestionSummary{
			ID:              q.ID,
			Topic:           q.Topic,
			MainSLO:         q.MainSLO,
			ComplexityLevel: q.ComplexityLevel,
			StudentLevel:    q.StudentLevel,
			Preview:         preview(q.QuestionText),
			Created:         q.CreatedAt.Format("2006-01-02"),
		}
	}
	return out
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewLength {
		return text
	}
	return string([]rune(text)[:previewLength])
}
