package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Abdelrazek97/form-app/handlers/records"
	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/services"
	"github.com/Abdelrazek97/form-app/utils/auth"
	"github.com/Abdelrazek97/form-app/utils/view"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the admin cross-record reports
type ReportHandler struct {
	reports   *services.ReportService
	export    *services.ExportService
	presenter *view.Presenter
	log       *zap.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *services.ReportService, export *services.ExportService, presenter *view.Presenter, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reports:   reports,
		export:    export,
		presenter: presenter,
		log:       log,
	}
}

// Listing renders every owner's records of kinds under one title
func (h *ReportHandler) Listing(title string, kinds ...model.RecordKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := auth.CurrentIdentity(c)
		listings, err := h.reports.ListMany(c.UserContext(), identity, kinds...)
		if err != nil {
			return h.presenter.ServerError(c, err)
		}
		return h.presenter.Show(c, "records", fiber.Map{
			"Title":  title,
			"Tables": records.Tables(listings, identity.IsAdmin()),
		}, listings)
	}
}

// KPIs handles GET /kpis
func (h *ReportHandler) KPIs(c *fiber.Ctx) error {
	report, err := h.reports.KPIs(c.UserContext(), auth.CurrentIdentity(c))
	if err != nil {
		return h.presenter.ServerError(c, err)
	}
	return h.presenter.Show(c, "kpis", fiber.Map{"Title": "KPIs", "KPI": report}, report)
}

// Export handles GET /admin/reports/export.xlsx
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	identity := auth.CurrentIdentity(c)

	var buf bytes.Buffer
	if err := h.export.Write(c.UserContext(), identity, &buf); err != nil {
		return h.presenter.ServerError(c, err)
	}

	h.log.Info("report exported", zap.Uint("user_id", identity.UserID), zap.Int("bytes", buf.Len()))

	filename := fmt.Sprintf("faculty-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, xlsxMIME)
	return c.Send(buf.Bytes())
}
