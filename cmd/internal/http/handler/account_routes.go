package handler

import (
	"net/http"

	"tagnotes/cmd/internal/utils"

	"github.com/labstack/echo/v4"
)

type AccountResponse struct {
	Login       string   `json:"login"`
	Authorities []string `json:"authorities"`
}

// GetAccount describes the caller behind the bearer token. Without
// authentication configured there is no caller and the answer is 401.
func GetAccount(c echo.Context) error {
	token, apierr := utils.GetTokenFromContext(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	authorities := token.Authorities
	if authorities == nil {
		authorities = []string{}
	}
	return c.JSON(http.StatusOK, &AccountResponse{
		Login:       token.Sub,
		Authorities: authorities,
	})
}
