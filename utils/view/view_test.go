package view

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/utils/response"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEvaluationURL(t *testing.T) {
	assert.Equal(t, "/update/7", EvaluationURL(model.KindPublication, 7))
	assert.Equal(t, "/update/criteria/7", EvaluationURL(model.KindCriteria, 7))
	assert.Equal(t, "/update/university/7", EvaluationURL(model.KindUniversityEvaluation, 7))
	assert.Empty(t, EvaluationURL(model.KindActivity, 7))
}

func TestNewTable(t *testing.T) {
	sum := 9
	records := []model.Record{
		&model.Publication{
			ID:                    3,
			ScientificResearch:    "Paper",
			SupervisionGraduation: "Thesis",
			EvaluationSum:         &sum,
			CreatedAt:             time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
			User:                  &model.User{Username: "mona", FullName: "Mona Ali"},
		},
	}

	admin := NewTable(model.KindPublication, records, true)
	assert.True(t, admin.ShowOwner)
	require.Len(t, admin.Rows, 1)
	row := admin.Rows[0]
	assert.Equal(t, uint(3), row.ID)
	assert.Equal(t, "mona (Mona Ali)", row.Owner)
	assert.Equal(t, "2024-03-01 09:30", row.Created)
	assert.Equal(t, "/update/3", row.EditURL)
	assert.Equal(t, []string{"Paper", "Thesis", "", "", "9"}, row.Cells)

	user := NewTable(model.KindPublication, records, false)
	assert.False(t, user.ShowOwner)
	assert.Empty(t, user.Rows[0].EditURL)
}

func TestWantsJSON(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if WantsJSON(c) {
			return c.SendString("json")
		}
		return c.SendString("html")
	})

	tests := []struct {
		accept string
		want   string
	}{
		{"application/json", "json"},
		{"text/html,application/xhtml+xml", "html"},
		{"", "html"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		if tt.accept != "" {
			req.Header.Set(fiber.HeaderAccept, tt.accept)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		body := make([]byte, 8)
		n, _ := resp.Body.Read(body)
		assert.Equal(t, tt.want, string(body[:n]), tt.accept)
	}
}

func TestInvalidFieldsSendsDetails(t *testing.T) {
	presenter := NewPresenter(session.New(), zap.NewNop())
	app := fiber.New()
	app.Post("/fields", func(c *fiber.Ctx) error {
		return presenter.InvalidFields(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"year must be a whole number!", "form", nil, map[string]string{"year": "year must be a whole number"})
	})
	app.Post("/plain", func(c *fiber.Ctx) error {
		return presenter.Invalid(c, fiber.StatusBadRequest, "BAD_REQUEST", "Invalid request body", "form", nil)
	})

	req := httptest.NewRequest("POST", "/fields", nil)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var env response.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, map[string]string{"year": "year must be a whole number"}, env.Error.Details)

	req = httptest.NewRequest("POST", "/plain", nil)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)

	var raw map[string]map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.NotContains(t, raw["error"], "details")
}
