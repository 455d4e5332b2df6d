package utils

import (
	"tagnotes/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const TokenContextKey = "token"

func GetTokenFromContext(c echo.Context) (*TokenData, apierror.ErrorResponse) {
	val := c.Get(TokenContextKey)
	if val == nil {
		log.Debugf("route %s has no token in context", c.Request().URL)
		return nil, apierror.UnauthorizedError
	}

	token, ok := val.(*TokenData)
	if !ok {
		log.Warnf("expected token type at '%s' context key, got %T", TokenContextKey, val)
		return nil, apierror.InternalServerError
	}
	return token, nil
}
