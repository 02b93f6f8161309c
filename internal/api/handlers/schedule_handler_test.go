package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adforgehq/adforge-api/internal/models"
	"github.com/adforgehq/adforge-api/internal/service"
	"github.com/adforgehq/adforge-api/internal/transfer"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScheduleService struct {
	scheduleResult *transfer.ScheduleResult
	scheduleErr    error
	cancelResult   *transfer.CancelResult
	cancelErr      error
	list           []*models.PostIntent
	gotRequest     *transfer.ScheduleRequest
	gotUserID      int64
}

func (s *stubScheduleService) Schedule(ctx context.Context, userID int64, req *transfer.ScheduleRequest) (*transfer.ScheduleResult, error) {
	s.gotUserID = userID
	s.gotRequest = req
	return s.scheduleResult, s.scheduleErr
}

func (s *stubScheduleService) RetryRegistration(ctx context.Context, intentID int64) error {
	return nil
}

func (s *stubScheduleService) Cancel(ctx context.Context, userID, intentID int64) (*transfer.CancelResult, error) {
	return s.cancelResult, s.cancelErr
}

func (s *stubScheduleService) List(ctx context.Context, userID int64) ([]*models.PostIntent, error) {
	return s.list, nil
}

func (s *stubScheduleService) IntentInfo(ctx context.Context, intentID, userID int64) (*transfer.IntentDetail, error) {
	return &transfer.IntentDetail{}, nil
}

func newScheduleApp(stub *stubScheduleService) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "7")
		return c.Next()
	})

	h := NewScheduleHandler(stub, false, nil)
	app.Post("/api/schedule", h.CreateIntent)
	app.Get("/api/schedule", h.ListIntents)
	app.Post("/api/schedule/cancel", h.CancelIntent)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateIntentReturnsCreated(t *testing.T) {
	stub := &stubScheduleService{
		scheduleResult: &transfer.ScheduleResult{
			Post:       &models.PostIntent{ID: 1, Status: models.IntentStatusScheduled},
			LateStatus: transfer.LateStatusSuccess,
		},
	}
	app := newScheduleApp(stub)

	resp := doJSON(t, app, http.MethodPost, "/api/schedule",
		`{"items":[{"id":"a1","type":"ad"},{"id":"a2","type":"ad"}],"caption":"hi","scheduled_for":"2026-03-01","platforms":[{"platform":"instagram","account_id":"acc1"}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(7), stub.gotUserID)
	require.NotNil(t, stub.gotRequest)
	assert.Len(t, stub.gotRequest.Items, 2)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"late_status":"success"`)
}

func TestCreateIntentMapsServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrValidation, http.StatusBadRequest},
		{service.ErrNotFoundOrForbidden, http.StatusNotFound},
		{service.ErrUnauthorized, http.StatusUnauthorized},
		{service.ErrPersistence, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		app := newScheduleApp(&stubScheduleService{scheduleErr: tc.err})

		resp := doJSON(t, app, http.MethodPost, "/api/schedule", `{"items":[]}`)
		assert.Equal(t, tc.want, resp.StatusCode, "error %v", tc.err)
		resp.Body.Close()
	}
}

func TestCreateIntentRejectsMalformedBody(t *testing.T) {
	app := newScheduleApp(&stubScheduleService{})

	resp := doJSON(t, app, http.MethodPost, "/api/schedule", `{broken`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListIntents(t *testing.T) {
	stub := &stubScheduleService{list: []*models.PostIntent{{ID: 1}, {ID: 2}}}
	app := newScheduleApp(stub)

	resp := doJSON(t, app, http.MethodGet, "/api/schedule", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCancelIntent(t *testing.T) {
	stub := &stubScheduleService{cancelResult: &transfer.CancelResult{Success: true, LateDelete: transfer.LateDeleteSuccess}}
	app := newScheduleApp(stub)

	resp := doJSON(t, app, http.MethodPost, "/api/schedule/cancel", `{"id":1}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"success":true`)
}

func TestCancelIntentNotFound(t *testing.T) {
	app := newScheduleApp(&stubScheduleService{cancelErr: service.ErrNotFoundOrForbidden})

	resp := doJSON(t, app, http.MethodPost, "/api/schedule/cancel", `{"id":99}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
