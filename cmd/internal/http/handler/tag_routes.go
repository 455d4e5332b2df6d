package handler

import (
	"context"
	"fmt"
	"net/http"

	"tagnotes/cmd/internal/contract"
	"tagnotes/cmd/internal/domain/page"
	"tagnotes/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type TagService interface {
	GetTags(ctx context.Context, pageable page.Pageable) (*page.Page[*contract.TagDTO], apierror.ErrorResponse)
	GetTagByID(ctx context.Context, tagID int64) (*contract.TagDTO, apierror.ErrorResponse)
	CreateTag(ctx context.Context, req *contract.TagDTO) (*contract.TagDTO, apierror.ErrorResponse)
	UpdateTag(ctx context.Context, tagID int64, req *contract.TagDTO) (*contract.TagDTO, apierror.ErrorResponse)
	PartialUpdateTag(ctx context.Context, tagID int64, req *contract.TagDTO) (*contract.TagDTO, apierror.ErrorResponse)
	DeleteTag(ctx context.Context, tagID int64) apierror.ErrorResponse
}

type DefaultTagRoute struct {
	TagService TagService
}

func NewTagDefault(tagService TagService) *DefaultTagRoute {
	return &DefaultTagRoute{TagService: tagService}
}

func (t *DefaultTagRoute) GetTags(c echo.Context) error {
	pageable, apierr := parsePageable(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	tags, apierr := t.TagService.GetTags(c.Request().Context(), pageable)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	writePageHeaders(c, tags)
	return c.JSON(http.StatusOK, tags.Content)
}

func (t *DefaultTagRoute) GetTag(c echo.Context) error {
	id, apierr := parseID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	tag, apierr := t.TagService.GetTagByID(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, tag)
}

func (t *DefaultTagRoute) CreateTag(c echo.Context) error {
	var req contract.TagDTO
	if apierr := bindJSON(c, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	tag, apierr := t.TagService.CreateTag(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/tags/%d", *tag.ID))
	return c.JSON(http.StatusCreated, tag)
}

func (t *DefaultTagRoute) UpdateTag(c echo.Context) error {
	id, apierr := parseID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.TagDTO
	if apierr := bindJSON(c, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	tag, apierr := t.TagService.UpdateTag(c.Request().Context(), id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, tag)
}

func (t *DefaultTagRoute) PartialUpdateTag(c echo.Context) error {
	id, apierr := parseID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.TagDTO
	if apierr := bindPatch(c, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	tag, apierr := t.TagService.PartialUpdateTag(c.Request().Context(), id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, tag)
}

func (t *DefaultTagRoute) DeleteTag(c echo.Context) error {
	id, apierr := parseID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := t.TagService.DeleteTag(c.Request().Context(), id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
