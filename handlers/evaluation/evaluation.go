package evaluation

import (
	"errors"
	"strconv"

	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/services"
	"github.com/Abdelrazek97/form-app/utils/auth"
	"github.com/Abdelrazek97/form-app/utils/view"
	"github.com/gofiber/fiber/v2"
)

// MsgEvaluationSaved is the notice shown after an evaluation is written
const MsgEvaluationSaved = "Evaluation updated successfully!"

// Page describes the evaluation form of one record kind
type Page struct {
	Kind   model.RecordKind
	Path   string
	Title  string
	Back   string   // listing shown after a successful update
	Labels []string // one per review column
}

// Pages lists the evaluable kinds
var Pages = []Page{
	{
		Kind:   model.KindPublication,
		Path:   "/update/:id",
		Title:  "Evaluate Scientific Production",
		Back:   "/view/Scientific_production",
		Labels: []string{"Scientific research evaluation", "Supervision evaluation"},
	},
	{
		Kind:  model.KindCriteria,
		Path:  "/update/criteria/:id",
		Title: "Evaluate Teaching Criteria",
		Back:  "/view/criteria_of_evaluation",
		Labels: []string{
			"Developing courses", "Course file", "Electronic tests", "Material content",
			"E-learning use", "Teaching methods", "Student assessment", "Test questions", "Academic guidance",
		},
	},
	{
		Kind:   model.KindUniversityEvaluation,
		Path:   "/update/university/:id",
		Title:  "Evaluate University Service",
		Back:   "/view/university_evaluation",
		Labels: []string{"Committee work", "Community service", "Institutional activities", "Professional development"},
	},
}

type evaluated interface {
	Evaluations() []*int
}

// EvaluationHandler serves the admin evaluation forms
type EvaluationHandler struct {
	evaluations *services.EvaluationService
	presenter   *view.Presenter
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(evaluations *services.EvaluationService, presenter *view.Presenter) *EvaluationHandler {
	return &EvaluationHandler{
		evaluations: evaluations,
		presenter:   presenter,
	}
}

func recordID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *EvaluationHandler) formData(c *fiber.Ctx, page Page, record model.Record, keepInput bool) fiber.Map {
	details := [][2]string{}
	if owner := record.Owner(); owner != nil {
		details = append(details, [2]string{"Owner", owner.Username + " " + owner.FullName})
	}
	cells := record.Cells()
	for i, col := range page.Kind.Columns() {
		if i < len(cells) {
			details = append(details, [2]string{col, cells[i]})
		}
	}

	review, _ := services.NewReview(page.Kind)
	var current []*int
	if e, ok := record.(evaluated); ok {
		current = e.Evaluations()
	}

	fields := make([]view.Field, len(review.Columns()))
	for i, name := range review.Columns() {
		fields[i] = view.Field{Name: name, Label: page.Labels[i], Type: "number"}
		switch {
		case keepInput:
			fields[i].Value = c.FormValue(name)
		case i < len(current) && current[i] != nil:
			fields[i].Value = strconv.Itoa(*current[i])
		}
	}

	return fiber.Map{
		"Title":   page.Title,
		"Details": details,
		"Action":  view.EvaluationURL(page.Kind, record.RecordID()),
		"Fields":  fields,
		"Submit":  "Save evaluation",
	}
}

// Form handles GET on an evaluation route
func (h *EvaluationHandler) Form(page Page) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := recordID(c)
		if !ok {
			return h.presenter.NotFound(c)
		}

		record, err := h.evaluations.Get(c.UserContext(), auth.CurrentIdentity(c), page.Kind, id)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return h.presenter.NotFound(c)
			}
			return h.presenter.ServerError(c, err)
		}

		return h.presenter.Show(c, "form", h.formData(c, page, record, false), record)
	}
}

// Submit handles POST on an evaluation route
func (h *EvaluationHandler) Submit(page Page) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := recordID(c)
		if !ok {
			return h.presenter.NotFound(c)
		}
		identity := auth.CurrentIdentity(c)

		review, err := services.NewReview(page.Kind)
		if err != nil {
			return h.presenter.ServerError(c, err)
		}
		if err := c.BodyParser(review); err != nil {
			return h.reject(c, page, id, fiber.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		}

		record, err := h.evaluations.Evaluate(c.UserContext(), identity, id, review, services.AuditMeta{
			IPAddress: c.IP(),
			UserAgent: c.Get(fiber.HeaderUserAgent),
		})
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return h.presenter.NotFound(c)
			}
			if verr, ok := services.AsValidationError(err); ok {
				return h.reject(c, page, id, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", verr.Message, verr.Details)
			}
			return h.presenter.ServerError(c, err)
		}

		return h.presenter.Done(c, page.Back, fiber.StatusOK, view.Success, MsgEvaluationSaved, record)
	}
}

// reject re-renders the evaluation form with the submitted scores
func (h *EvaluationHandler) reject(c *fiber.Ctx, page Page, id uint, status int, code, message string, details map[string]string) error {
	record, err := h.evaluations.Get(c.UserContext(), auth.CurrentIdentity(c), page.Kind, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return h.presenter.NotFound(c)
		}
		return h.presenter.ServerError(c, err)
	}
	return h.presenter.InvalidFields(c, status, code, message, "form", h.formData(c, page, record, true), details)
}
