package question

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Abdelrazek97/form-app/services"
	"github.com/Abdelrazek97/form-app/utils/view"
	"github.com/gofiber/fiber/v2"
)

const (
	MsgQuestionAdded   = "Question added successfully!"
	MsgQuestionUpdated = "Question updated successfully!"
	MsgQuestionDeleted = "Question deleted successfully!"
)

// SearchRequest is the question search payload
type SearchRequest struct {
	Term            string `form:"search_term" json:"search_term" query:"search_term"`
	ComplexityLevel string `form:"complexity_level" json:"complexity_level" query:"complexity_level"`
}

// QuestionHandler serves the question bank
type QuestionHandler struct {
	questions *services.QuestionService
	presenter *view.Presenter
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questions *services.QuestionService, presenter *view.Presenter) *QuestionHandler {
	return &QuestionHandler{
		questions: questions,
		presenter: presenter,
	}
}

func questionID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func formData(title, action string, form services.QuestionForm) fiber.Map {
	return fiber.Map{
		"Title":  title,
		"Action": action,
		"Submit": "Save question",
		"Fields": []view.Field{
			{Name: "question_text", Label: "Question", Type: "textarea", Value: form.QuestionText},
			{Name: "topic", Label: "Topic", Type: "text", Value: form.Topic},
			{Name: "main_slo", Label: "Main SLO", Type: "text", Value: form.MainSLO},
			{Name: "enabling_slos", Label: "Enabling SLOs", Type: "text", Value: form.EnablingSLOs, Optional: true},
			{Name: "complexity", Label: "Complexity level", Type: "select", Options: services.ComplexityLevels, Value: form.ComplexityLevel},
			{Name: "student_level", Label: "Student level", Type: "text", Value: form.StudentLevel},
			{Name: "options", Label: "Options (one per line, e.g. A) ...)", Type: "textarea", Value: form.Options},
			{Name: "correct_answer", Label: "Correct answer letter", Type: "text", Value: form.CorrectAnswer},
		},
	}
}

// reject maps a service error onto the question form
func (h *QuestionHandler) reject(c *fiber.Ctx, err error, data fiber.Map) error {
	if errors.Is(err, services.ErrNotFound) {
		return h.presenter.NotFound(c)
	}
	if verr, ok := services.AsValidationError(err); ok {
		return h.presenter.InvalidFields(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", verr.Message, "form", data, verr.Details)
	}
	return h.presenter.ServerError(c, err)
}

// List handles GET /questions
func (h *QuestionHandler) List(c *fiber.Ctx) error {
	questions, err := h.questions.List(c.UserContext())
	if err != nil {
		return h.presenter.ServerError(c, err)
	}
	return h.presenter.Show(c, "questions/list", fiber.Map{"Title": "Question Bank", "Questions": questions}, questions)
}

// AddPage handles GET /questions/add
func (h *QuestionHandler) AddPage(c *fiber.Ctx) error {
	return h.presenter.Page(c, fiber.StatusOK, "form", formData("Add Question", "/questions/add", services.QuestionForm{}))
}

// Add handles POST /questions/add
func (h *QuestionHandler) Add(c *fiber.Ctx) error {
	var form services.QuestionForm
	if err := c.BodyParser(&form); err != nil {
		return h.presenter.Invalid(c, fiber.StatusBadRequest, "BAD_REQUEST", "Invalid request body",
			"form", formData("Add Question", "/questions/add", form))
	}
	input := form

	q, err := h.questions.Create(c.UserContext(), &form)
	if err != nil {
		return h.reject(c, err, formData("Add Question", "/questions/add", input))
	}
	return h.presenter.Done(c, "/questions/add", fiber.StatusCreated, view.Success, MsgQuestionAdded, q)
}

// Detail handles GET /questions/:id
func (h *QuestionHandler) Detail(c *fiber.Ctx) error {
	id, ok := questionID(c)
	if !ok {
		return h.presenter.NotFound(c)
	}
	q, err := h.questions.Get(c.UserContext(), id)
	if err != nil {
		return h.reject(c, err, nil)
	}
	return h.presenter.Show(c, "questions/detail", fiber.Map{
		"Title":    fmt.Sprintf("Question #%d", q.ID),
		"Question": q,
		"Options":  q.OptionList(),
	}, q)
}

// EditPage handles GET /questions/:id/edit
func (h *QuestionHandler) EditPage(c *fiber.Ctx) error {
	id, ok := questionID(c)
	if !ok {
		return h.presenter.NotFound(c)
	}
	q, err := h.questions.Get(c.UserContext(), id)
	if err != nil {
		return h.reject(c, err, nil)
	}
	return h.presenter.Page(c, fiber.StatusOK, "form", editData(q.ID, services.FromQuestion(q)))
}

func editData(id uint, form services.QuestionForm) fiber.Map {
	return formData(fmt.Sprintf("Edit Question #%d", id), fmt.Sprintf("/questions/%d/edit", id), form)
}

// Edit handles POST /questions/:id/edit
func (h *QuestionHandler) Edit(c *fiber.Ctx) error {
	id, ok := questionID(c)
	if !ok {
		return h.presenter.NotFound(c)
	}

	var form services.QuestionForm
	if err := c.BodyParser(&form); err != nil {
		return h.presenter.Invalid(c, fiber.StatusBadRequest, "BAD_REQUEST", "Invalid request body", "form", editData(id, form))
	}
	input := form

	q, err := h.questions.Update(c.UserContext(), id, &form)
	if err != nil {
		return h.reject(c, err, editData(id, input))
	}
	return h.presenter.Done(c, fmt.Sprintf("/questions/%d", q.ID), fiber.StatusOK, view.Success, MsgQuestionUpdated, q)
}

// Delete handles POST /questions/:id/delete and DELETE /questions/:id
func (h *QuestionHandler) Delete(c *fiber.Ctx) error {
	id, ok := questionID(c)
	if !ok {
		return h.presenter.NotFound(c)
	}
	if err := h.questions.Delete(c.UserContext(), id); err != nil {
		return h.reject(c, err, nil)
	}
	return h.presenter.Done(c, "/questions", fiber.StatusOK, view.Success, MsgQuestionDeleted, fiber.Map{"id": id})
}

// SearchPage handles GET /questions/search. Query parameters run a search
// directly.
func (h *QuestionHandler) SearchPage(c *fiber.Ctx) error {
	var req SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return h.presenter.Invalid(c, fiber.StatusBadRequest, "BAD_REQUEST", "Invalid query", "questions/search", nil)
	}
	if req.Term == "" && req.ComplexityLevel == "" {
		return h.presenter.Show(c, "questions/search", searchData(req, nil, false), []services.QuestionSummary{})
	}
	return h.search(c, req)
}

// Search handles POST /questions/search
func (h *QuestionHandler) Search(c *fiber.Ctx) error {
	var req SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return h.presenter.Invalid(c, fiber.StatusBadRequest, "BAD_REQUEST", "Invalid request body",
			"questions/search", searchData(req, nil, false))
	}
	return h.search(c, req)
}

func (h *QuestionHandler) search(c *fiber.Ctx, req SearchRequest) error {
	results, err := h.questions.Search(c.UserContext(), req.Term, req.ComplexityLevel)
	if err != nil {
		return h.presenter.ServerError(c, err)
	}
	return h.presenter.Show(c, "questions/search", searchData(req, results, true), results)
}

func searchData(req SearchRequest, results []services.QuestionSummary, searched bool) fiber.Map {
	return fiber.Map{
		"Title":      "Search Questions",
		"Term":       req.Term,
		"Complexity": req.ComplexityLevel,
		"Levels":     services.ComplexityLevels,
		"Searched":   searched,
		"Results":    results,
	}
}
