package middleware

import (
	"net/http"

	"tagnotes/cmd/internal/utils"
	"tagnotes/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type TokenValidator interface {
	ParseTokenDataCtx(ctx echo.Context) (*utils.TokenData, error)
}

type AuthMiddlewareConfig struct {
	// Validator checks bearer tokens. When nil every request passes.
	Validator TokenValidator
}

// NewAuthMiddleware creates the handler with dependencies injected
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if cfg == nil || cfg.Validator == nil {
			return next
		}

		return func(c echo.Context) error {
			tokenData, err := cfg.Validator.ParseTokenDataCtx(c)
			if err != nil {
				log.Debugf("rejected token: %v", err)
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			c.Set(utils.TokenContextKey, tokenData)
			return next(c)
		}
	}
}
