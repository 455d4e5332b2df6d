package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"tagnotes/cmd/internal/domain/page"
	"tagnotes/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

const HeaderTotalCount = "X-Total-Count"

// parsePageable reads the page, size and sort query parameters. Missing
// values fall back to the first page of DefaultSize elements.
func parsePageable(c echo.Context) (page.Pageable, apierror.ErrorResponse) {
	pageable := page.Of(0, page.DefaultSize)

	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return pageable, apierror.NewInvalidParamTypeError("page", "int")
		}
		pageable.Page = n
	}

	if raw := c.QueryParam("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return pageable, apierror.NewInvalidParamTypeError("size", "int")
		}
		pageable.Size = n
	}

	sort, err := page.ParseSort(c.QueryParams()["sort"])
	if err != nil {
		return pageable, apierror.NewInvalidParamError("sort", err)
	}
	pageable.Sort = sort
	return pageable, nil
}

func parseEagerLoad(c echo.Context) (bool, apierror.ErrorResponse) {
	raw := c.QueryParam("eagerload")
	if raw == "" {
		return true, nil
	}

	eager, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apierror.NewInvalidParamTypeError("eagerload", "bool")
	}
	return eager, nil
}

func parseID(c echo.Context) (int64, apierror.ErrorResponse) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError("id", "int64")
	}
	return id, nil
}

// writePageHeaders sets X-Total-Count and an RFC 5988 Link header pointing
// at the neighbouring, first and last pages.
func writePageHeaders[T any](c echo.Context, p *page.Page[T]) {
	h := c.Response().Header()
	h.Set(HeaderTotalCount, strconv.FormatInt(p.TotalElements, 10))

	base := *c.Request().URL
	links := make([]string, 0, 4)
	if p.HasNext() {
		links = append(links, pageLink(base, p.Number+1, p.Size, "next"))
	}
	if p.HasPrevious() {
		links = append(links, pageLink(base, p.Number-1, p.Size, "prev"))
	}

	last := max(p.TotalPages()-1, 0)
	links = append(links,
		pageLink(base, last, p.Size, "last"),
		pageLink(base, 0, p.Size, "first"),
	)
	h.Set("Link", strings.Join(links, ","))
}

func pageLink(u url.URL, number, size int, rel string) string {
	q := u.Query()
	q.Set("page", strconv.Itoa(number))
	q.Set("size", strconv.Itoa(size))
	u.RawQuery = q.Encode()
	return fmt.Sprintf("<%s>; rel=\"%s\"", u.String(), rel)
}
