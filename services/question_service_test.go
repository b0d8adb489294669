package services

import (
	"strings"
	"testing"

	"github.com/Abdelrazek97/form-app/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleQuestion() *QuestionForm {
	return &QuestionForm{
		QuestionText:    "  Which layer routes packets?  ",
		Topic:           "Networking",
		MainSLO:         "SLO-1",
		EnablingSLOs:    "SLO-1.2",
		ComplexityLevel: "Understand",
		StudentLevel:    "Level 2",
		Options:         "A) Physical\n\n  B) Network  \nC) Session\n",
		CorrectAnswer:   " b ",
	}
}

func TestCreateQuestionNormalizesInput(t *testing.T) {
	svc := NewQuestionService(dbtest.NewQuestions(t), zap.NewNop())

	q, err := svc.Create(ctx, sampleQuestion())
	require.NoError(t, err)
	assert.Equal(t, "Which layer routes packets?", q.QuestionText)
	assert.Equal(t, "B", q.CorrectAnswer)
	assert.Equal(t, []string{"A) Physical", "B) Network", "C) Session"}, q.OptionList())

	got, err := svc.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.QuestionText, got.QuestionText)
	assert.Equal(t, "SLO-1", got.MainSLO)
	assert.Equal(t, "Understand", got.ComplexityLevel)
}

func TestCreateQuestionValidation(t *testing.T) {
	svc := NewQuestionService(dbtest.NewQuestions(t), zap.NewNop())

	tests := []struct {
		name   string
		mutate func(*QuestionForm)
		kind   string
	}{
		{"missing topic", func(f *QuestionForm) { f.Topic = " " }, KindMissingFields},
		{"single option", func(f *QuestionForm) { f.Options = "A) Only\n\n" }, KindTooFewOptions},
		{"answer not an option letter", func(f *QuestionForm) { f.CorrectAnswer = "D" }, KindAnswerMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := sampleQuestion()
			tt.mutate(form)
			_, err := svc.Create(ctx, form)
			verr, ok := AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, verr.Kind)
		})
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEnablingSLOsIsOptional(t *testing.T) {
	svc := NewQuestionService(dbtest.NewQuestions(t), zap.NewNop())

	form := sampleQuestion()
	form.EnablingSLOs = ""
	_, err := svc.Create(ctx, form)
	assert.NoError(t, err)
}

func TestUpdateAndDeleteQuestion(t *testing.T) {
	svc := NewQuestionService(dbtest.NewQuestions(t), zap.NewNop())

	q, err := svc.Create(ctx, sampleQuestion())
	require.NoError(t, err)

	edit := FromQuestion(q)
	edit.Topic = "Routing"
	edit.CorrectAnswer = "c"
	updated, err := svc.Update(ctx, q.ID, &edit)
	require.NoError(t, err)
	assert.Equal(t, "Routing", updated.Topic)
	assert.Equal(t, "C", updated.CorrectAnswer)

	_, err = svc.Update(ctx, q.ID+1, &edit)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, q.ID))
	_, err = svc.Get(ctx, q.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, q.ID), ErrNotFound)
}

func TestListAndSearchQuestions(t *testing.T) {
	svc := NewQuestionService(dbtest.NewQuestions(t), zap.NewNop())

	long := sampleQuestion()
	long.QuestionText = strings.Repeat("é", 150)
	long.Topic = "Encoding"
	_, err := svc.Create(ctx, long)
	require.NoError(t, err)

	apply := sampleQuestion()
	apply.ComplexityLevel = "Apply"
	apply.MainSLO = "Routing tables"
	_, err = svc.Create(ctx, apply)
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Greater(t, list[0].ID, list[1].ID)
	assert.Equal(t, 100, len([]rune(list[1].Preview)))
	assert.Len(t, list[1].Created, len("2006-01-02"))

	results, err := svc.Search(ctx, "routing", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Apply", results[0].ComplexityLevel)

	results, err = svc.Search(ctx, "", "Understand")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Encoding", results[0].Topic)

	results, err = svc.Search(ctx, "packets", "Understand")
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = svc.Search(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
