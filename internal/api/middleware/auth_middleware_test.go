package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	config "github.com/adforgehq/adforge-api/configs"
	"github.com/adforgehq/adforge-api/internal/models"
	"github.com/adforgehq/adforge-api/internal/service"
	"github.com/adforgehq/adforge-api/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubKeyService struct {
	keys map[string]int64
}

func (s *stubKeyService) Create(ctx context.Context, userID int64) error { return nil }

func (s *stubKeyService) List(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	return nil, nil
}

func (s *stubKeyService) GetUserID(ctx context.Context, apiKey string) (int64, error) {
	userID, ok := s.keys[apiKey]
	if !ok {
		return 0, service.ErrUnauthorized
	}
	return userID, nil
}

func (s *stubKeyService) RemoveAPIKey(ctx context.Context, userID, keyID int64) error { return nil }

func newGateApp(cfg config.Config, keys *stubKeyService) *fiber.App {
	app := fiber.New()
	app.Use(NewAuthMiddleware(cfg, keys).AuthMiddleware())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id")})
	})
	return app
}

func gateConfig() config.Config {
	return config.Config{SecretKey: "gate-test-secret", CookieName: "adforge_session"}
}

func TestGateRejectsAnonymousRequest(t *testing.T) {
	app := newGateApp(gateConfig(), &stubKeyService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGateAcceptsSessionCookie(t *testing.T) {
	cfg := gateConfig()
	app := newGateApp(cfg, &stubKeyService{})

	token, err := utils.GenerateToken(cfg.SecretKey, "42", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateExpiresBadSessionCookie(t *testing.T) {
	cfg := gateConfig()
	app := newGateApp(cfg, &stubKeyService{})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: "not-a-token"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var cleared bool
	for _, cookie := range resp.Cookies() {
		if cookie.Name == cfg.CookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "a rejected session cookie must be expired on the client")
}

func TestGateAcceptsAPIKey(t *testing.T) {
	app := newGateApp(gateConfig(), &stubKeyService{keys: map[string]int64{"k1": 7}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami?api_key=k1", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateRejectsUnknownAPIKey(t *testing.T) {
	app := newGateApp(gateConfig(), &stubKeyService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami?api_key=nope", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
