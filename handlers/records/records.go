package records

import (
	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/services"
	"github.com/Abdelrazek97/form-app/utils/auth"
	"github.com/Abdelrazek97/form-app/utils/view"
	"github.com/gofiber/fiber/v2"
)

// MsgDataAdded is the notice shown after any record is stored
const MsgDataAdded = "Data added successfully!"

// RecordHandler serves the entry forms and the owner scoped listings
type RecordHandler struct {
	records   *services.RecordService
	reports   *services.ReportService
	presenter *view.Presenter
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(records *services.RecordService, reports *services.ReportService, presenter *view.Presenter) *RecordHandler {
	return &RecordHandler{
		records:   records,
		reports:   reports,
		presenter: presenter,
	}
}

func (h *RecordHandler) formData(c *fiber.Ctx, page FormPage, keepInput bool) fiber.Map {
	fields := make([]view.Field, len(page.Fields))
	copy(fields, page.Fields)
	if keepInput {
		for i := range fields {
			fields[i].Value = c.FormValue(fields[i].Name)
		}
	}
	return fiber.Map{
		"Title":  page.Title,
		"Action": page.Path,
		"Fields": fields,
	}
}

// Form handles GET on an entry form route
func (h *RecordHandler) Form(page FormPage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return h.presenter.Page(c, fiber.StatusOK, "form", h.formData(c, page, false))
	}
}

// Submit handles POST on an entry form route
func (h *RecordHandler) Submit(page FormPage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := services.NewRecordForm(page.Kind)
		if err != nil {
			return h.presenter.ServerError(c, err)
		}
		if err := c.BodyParser(form); err != nil {
			return h.presenter.Invalid(c, fiber.StatusBadRequest, "BAD_REQUEST", "Invalid request body",
				"form", h.formData(c, page, true))
		}

		record, err := h.records.Create(c.UserContext(), auth.CurrentIdentity(c), form)
		if err != nil {
			if verr, ok := services.AsValidationError(err); ok {
				return h.presenter.InvalidFields(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", verr.Message,
					"form", h.formData(c, page, true), verr.Details)
			}
			return h.presenter.ServerError(c, err)
		}

		return h.presenter.Done(c, "/view", fiber.StatusCreated, view.Success, MsgDataAdded, record)
	}
}

// Overview handles GET /view
func (h *RecordHandler) Overview(c *fiber.Ctx) error {
	identity := auth.CurrentIdentity(c)
	listings, err := h.reports.Overview(c.UserContext(), identity)
	if err != nil {
		return h.presenter.ServerError(c, err)
	}
	return h.presenter.Show(c, "records", fiber.Map{
		"Title":  "My Records",
		"Kinds":  model.RecordKinds,
		"Tables": Tables(listings, identity.IsAdmin()),
	}, listings)
}

// List handles GET /records/:kind
func (h *RecordHandler) List(c *fiber.Ctx) error {
	kind, ok := model.ParseRecordKind(c.Params("kind"))
	if !ok {
		return h.presenter.NotFound(c)
	}

	identity := auth.CurrentIdentity(c)
	listings, err := h.reports.ListMany(c.UserContext(), identity, kind)
	if err != nil {
		return h.presenter.ServerError(c, err)
	}
	return h.presenter.Show(c, "records", fiber.Map{
		"Title":  kind.Title(),
		"Kinds":  model.RecordKinds,
		"Tables": Tables(listings, identity.IsAdmin()),
	}, listings[0])
}

// Tables converts service listings into rendered tables
func Tables(listings []services.Listing, admin bool) []view.Table {
	tables := make([]view.Table, len(listings))
	for i, l := range listings {
		tables[i] = view.NewTable(l.Kind, l.Records, admin)
	}
	return tables
}
