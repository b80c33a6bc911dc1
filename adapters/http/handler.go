package http

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/embedchat/embedchat/domain"
	"github.com/embedchat/embedchat/usecase"
	"github.com/embedchat/embedchat/utils/log"
)

const (
	JWTExpiry = 24 * time.Hour
)

// ChatHandler exposes the relay over HTTP.
type ChatHandler struct {
	relay     *usecase.Relay
	jwtSecret []byte
}

type JWTClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// NewChatHandler builds the handler. An empty jwtSecret leaves the
// relay open; a non-empty one gates /api/chat behind session tokens.
func NewChatHandler(relay *usecase.Relay, jwtSecret string) *ChatHandler {
	return &ChatHandler{
		relay:     relay,
		jwtSecret: []byte(jwtSecret),
	}
}

// AuthEnabled reports whether session tokens are required.
func (h *ChatHandler) AuthEnabled() bool {
	return len(h.jwtSecret) > 0
}

// Chat handles POST /api/chat: the full conversation in, the provider's
// answer out. Provider failure detail stays in the server log; the
// client only sees a generic error body.
func (h *ChatHandler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: "invalid request body"})
	}

	resp, err := h.relay.Exchange(c.Request().Context(), req.Messages)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoMessages),
			errors.Is(err, domain.ErrLastTurnNotUser),
			errors.Is(err, domain.ErrConversationTooLong):
			return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: err.Error()})
		default:
			log.WithCtx(c.Request().Context()).Error("exchange failed",
				zap.Error(err),
				zap.String("remote_addr", c.RealIP()),
			)
			return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: "failed to reach the assistant"})
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// GenerateToken creates a widget session token. The widget fetches one
// at mount time when the relay runs with auth enabled.
func (h *ChatHandler) GenerateToken(c echo.Context) error {
	sessionID, err := generateSessionID()
	if err != nil {
		log.With(zap.Error(err)).Error("generating session id")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}

	claims := &JWTClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "embedchat-relay",
			Subject:   "chat-widget",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.jwtSecret)
	if err != nil {
		log.With(zap.Error(err)).Error("signing session token")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"token": tokenString,
		"type":  "Bearer",
	})
}

// JWTMiddleware validates the widget session token.
func (h *ChatHandler) JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return h.jwtSecret, nil
		})
		if err != nil {
			log.With(zap.Error(err)).Warn("session token rejected")
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}

		if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
			c.Set("session_id", claims.SessionID)
			return next(c)
		}

		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token claims")
	}
}

// HealthCheck reports liveness.
func (h *ChatHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "chat-relay",
	})
}

func generateSessionID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", bytes), nil
}
