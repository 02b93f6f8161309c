package middleware

import (
	"log/slog"
	"strconv"

	config "github.com/adforgehq/adforge-api/configs"
	"github.com/adforgehq/adforge-api/internal/service"
	"github.com/adforgehq/adforge-api/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware guards the /api group. A request authenticates either with
// the session cookie minted at /login/callback or with an api_key query
// parameter; both resolve to the same user_id local that handlers read.
type AuthMiddleware struct {
	cfg  config.Config
	keys service.ApiKeyService
}

func NewAuthMiddleware(cfg config.Config, keys service.ApiKeyService) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg, keys: keys}
}

func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiKey := c.Query("api_key"); apiKey != "" {
			return m.withAPIKey(c, apiKey)
		}
		if session := c.Cookies(m.cfg.CookieName); session != "" {
			return m.withSession(c, session)
		}

		return unauthorized(c, "authentication required")
	}
}

func (m *AuthMiddleware) withAPIKey(c *fiber.Ctx, apiKey string) error {
	userID, err := m.keys.GetUserID(c.Context(), apiKey)
	if err != nil {
		slog.Info("api key rejected", "err", err.Error())
		return unauthorized(c, "invalid api key")
	}

	c.Locals("user_id", strconv.FormatInt(userID, 10))
	return c.Next()
}

func (m *AuthMiddleware) withSession(c *fiber.Ctx, session string) error {
	claims, err := utils.ValidateToken(m.cfg.SecretKey, session)
	if err != nil {
		slog.Info("session rejected", "err", err.Error())

		// Expire the dead cookie so the client stops sending it.
		c.Cookie(&fiber.Cookie{
			Name:   m.cfg.CookieName,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		return unauthorized(c, "invalid or expired session")
	}

	c.Locals("user_id", claims.UserID)
	return c.Next()
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": msg,
	})
}
