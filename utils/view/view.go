// Package view renders HTML pages and flash notices, or the JSON envelope
// when the client asks for application/json.
package view

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/utils/auth"
	"github.com/Abdelrazek97/form-app/utils/response"
	"github.com/Abdelrazek97/form-app/views"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

// Flash categories
const (
	Success = "success"
	Info    = "info"
	Danger  = "danger"
)

const flashKey = "flashes"

// Flash is a one-shot notice shown on the next rendered page
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Field describes one input of a generic form page
type Field struct {
	Name     string
	Label    string
	Type     string // text, number, date, textarea, select
	Options  []string
	Value    string
	Optional bool
}

// NewEngine returns the template engine over the embedded views
func NewEngine() *html.Engine {
	engine := html.NewFileSystem(http.FS(views.FS), ".html")
	engine.AddFunc("add1", func(i int) int { return i + 1 })
	engine.AddFunc("eq_str", func(a, b string) bool { return a == b })
	return engine
}

// WantsJSON reports whether the client prefers the JSON envelope over HTML
func WantsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

// Presenter writes every user facing outcome, choosing HTML or JSON per request
type Presenter struct {
	sessions *session.Store
	log      *zap.Logger
}

func NewPresenter(sessions *session.Store, log *zap.Logger) *Presenter {
	return &Presenter{sessions: sessions, log: log}
}

// AddFlash queues a notice for the next rendered page
func (p *Presenter) AddFlash(c *fiber.Ctx, category, message string) error {
	sess, err := p.sessions.Get(c)
	if err != nil {
		return err
	}
	flashes := decodeFlashes(sess.Get(flashKey))
	flashes = append(flashes, Flash{Category: category, Message: message})
	raw, err := json.Marshal(flashes)
	if err != nil {
		return err
	}
	sess.Set(flashKey, string(raw))
	return sess.Save()
}

// TakeFlashes returns and clears the queued notices
func (p *Presenter) TakeFlashes(c *fiber.Ctx) []Flash {
	sess, err := p.sessions.Get(c)
	if err != nil {
		return nil
	}
	flashes := decodeFlashes(sess.Get(flashKey))
	if len(flashes) == 0 {
		return nil
	}
	sess.Delete(flashKey)
	if err := sess.Save(); err != nil {
		p.log.Warn("failed to clear flashes", zap.Error(err))
	}
	return flashes
}

func decodeFlashes(v interface{}) []Flash {
	raw, ok := v.(string)
	if !ok || raw == "" {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal([]byte(raw), &flashes); err != nil {
		return nil
	}
	return flashes
}

// Page renders an HTML template inside the main layout
func (p *Presenter) Page(c *fiber.Ctx, status int, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	flashes := p.TakeFlashes(c)
	if extra, ok := data["Flashes"].([]Flash); ok {
		flashes = append(flashes, extra...)
	}
	data["Flashes"] = flashes
	data["Identity"] = auth.CurrentIdentity(c)
	return c.Status(status).Render(name, data, "layouts/main")
}

// Show renders name for browsers and returns data as JSON otherwise
func (p *Presenter) Show(c *fiber.Ctx, name string, data fiber.Map, payload interface{}) error {
	if WantsJSON(c) {
		return response.Success(c, payload)
	}
	return p.Page(c, fiber.StatusOK, name, data)
}

// Done reports a successful state change: a flash plus redirect for
// browsers, the envelope for JSON clients
func (p *Presenter) Done(c *fiber.Ctx, to string, status int, category, message string, data interface{}) error {
	if WantsJSON(c) {
		return c.Status(status).JSON(response.Response{
			Success: true,
			Message: message,
			Data:    data,
		})
	}
	if err := p.AddFlash(c, category, message); err != nil {
		p.log.Warn("failed to store flash", zap.Error(err))
	}
	return c.Redirect(to, fiber.StatusSeeOther)
}

// Deny redirects browsers to with a danger notice and answers JSON clients
// with status and code
func (p *Presenter) Deny(c *fiber.Ctx, to string, status int, code, message string) error {
	if WantsJSON(c) {
		return response.Error(c, status, message, code)
	}
	if err := p.AddFlash(c, Danger, message); err != nil {
		p.log.Warn("failed to store flash", zap.Error(err))
	}
	return c.Redirect(to, fiber.StatusSeeOther)
}

// Invalid re-renders page with the submitted input and one danger notice
func (p *Presenter) Invalid(c *fiber.Ctx, status int, code, message, page string, data fiber.Map) error {
	return p.InvalidFields(c, status, code, message, page, data, nil)
}

// InvalidFields is Invalid plus per-field messages, sent as error.details to
// JSON clients and exposed to templates as FieldErrors
func (p *Presenter) InvalidFields(c *fiber.Ctx, status int, code, message, page string, data fiber.Map, details map[string]string) error {
	if WantsJSON(c) {
		return response.ErrorWithDetails(c, status, message, code, details)
	}
	if data == nil {
		data = fiber.Map{}
	}
	data["Flashes"] = []Flash{{Category: Danger, Message: message}}
	data["FieldErrors"] = details
	return p.Page(c, status, page, data)
}

// NotFound renders the generic not-found page
func (p *Presenter) NotFound(c *fiber.Ctx) error {
	if WantsJSON(c) {
		return response.NotFound(c, "")
	}
	return p.Page(c, fiber.StatusNotFound, "not_found", fiber.Map{"Title": "Not Found"})
}

// ServerError logs err and shows a generic failure
func (p *Presenter) ServerError(c *fiber.Ctx, err error) error {
	p.log.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	if WantsJSON(c) {
		return response.InternalServerError(c, "")
	}
	return p.Page(c, fiber.StatusInternalServerError, "error", fiber.Map{"Title": "Error"})
}

// Table is a generic listing rendered by the records page
type Table struct {
	Title     string
	Columns   []string
	ShowOwner bool
	Rows      []Row
}

// Row is one record in a Table
type Row struct {
	ID      uint
	Owner   string
	Created string
	Cells   []string
	EditURL string
}

var evaluationPaths = map[model.RecordKind]string{
	model.KindPublication:          "/update/%d",
	model.KindCriteria:             "/update/criteria/%d",
	model.KindUniversityEvaluation: "/update/university/%d",
}

// EvaluationURL returns the admin evaluation form of a record, or "" when
// the kind is not evaluated
func EvaluationURL(kind model.RecordKind, id uint) string {
	pattern, ok := evaluationPaths[kind]
	if !ok {
		return ""
	}
	return fmt.Sprintf(pattern, id)
}

// NewTable lays out records of one kind. Admins see the owner column and
// evaluation links.
func NewTable(kind model.RecordKind, records []model.Record, admin bool) Table {
	t := Table{
		Title:     kind.Title(),
		Columns:   kind.Columns(),
		ShowOwner: admin,
		Rows:      make([]Row, 0, len(records)),
	}
	for _, r := range records {
		row := Row{
			ID:      r.RecordID(),
			Created: r.Created().Format("2006-01-02 15:04"),
			Cells:   r.Cells(),
		}
		if owner := r.Owner(); owner != nil {
			row.Owner = owner.Username
			if owner.FullName != "" {
				row.Owner += " (" + owner.FullName + ")"
			}
		}
		if admin {
			row.EditURL = EvaluationURL(kind, r.RecordID())
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
