package handler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"tagnotes/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

const MIMEApplicationMergePatchJSON = "application/merge-patch+json"

// bindJSON decodes the request body with echo's binder and maps its
// failures onto API errors.
func bindJSON(c echo.Context, dst any) apierror.ErrorResponse {
	if err := c.Bind(dst); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusUnsupportedMediaType {
			return apierror.InvalidMediaTypeError
		}
		return apierror.MalformedBodyError
	}
	return nil
}

// bindPatch accepts both plain JSON and JSON merge patch documents. Echo's
// binder only knows the former.
func bindPatch(c echo.Context, dst any) apierror.ErrorResponse {
	mediaType, _, err := mime.ParseMediaType(c.Request().Header.Get(echo.HeaderContentType))
	if err != nil {
		return apierror.InvalidMediaTypeError
	}

	switch mediaType {
	case echo.MIMEApplicationJSON, MIMEApplicationMergePatchJSON:
	default:
		return apierror.InvalidMediaTypeError
	}

	if err := json.NewDecoder(c.Request().Body).Decode(dst); err != nil {
		return apierror.MalformedBodyError
	}
	return nil
}
