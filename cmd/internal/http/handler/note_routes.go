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

type NoteService interface {
	GetNotes(ctx context.Context, pageable page.Pageable, eager bool) (*page.Page[*contract.NoteDTO], apierror.ErrorResponse)
	GetNoteByID(ctx context.Context, noteID int64) (*contract.NoteDTO, apierror.ErrorResponse)
	CreateNote(ctx context.Context, req *contract.NoteDTO) (*contract.NoteDTO, apierror.ErrorResponse)
	UpdateNote(ctx context.Context, noteID int64, req *contract.NoteDTO) (*contract.NoteDTO, apierror.ErrorResponse)
	PartialUpdateNote(ctx context.Context, noteID int64, req *contract.NoteDTO) (*contract.NoteDTO, apierror.ErrorResponse)
	DeleteNote(ctx context.Context, noteID int64) apierror.ErrorResponse
}

type DefaultNoteRoute struct {
	NoteService NoteService
}

func NewNoteDefault(noteService NoteService) *DefaultNoteRoute {
	return &DefaultNoteRoute{NoteService: noteService}
}

func (n *DefaultNoteRoute) GetNotes(c echo.Context) error {
	pageable, apierr := parsePageable(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	eager, apierr := parseEagerLoad(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	notes, apierr := n.NoteService.GetNotes(c.Request().Context(), pageable, eager)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	writePageHeaders(c, notes)
	return c.JSON(http.StatusOK, notes.Content)
}

func (n *DefaultNoteRoute) GetNote(c echo.Context) error {
	id, apierr := parseID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	note, apierr := n.NoteService.GetNoteByID(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (n *DefaultNoteRoute) CreateNote(c echo.Context) error {
	var req contract.NoteDTO
	if apierr := bindJSON(c, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	note, apierr := n.NoteService.CreateNote(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/notes/%d", *note.ID))
	return c.JSON(http.StatusCreated, note)
}

func (n *DefaultNoteRoute) UpdateNote(c echo.Context) error {
	id, apierr := parseID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.NoteDTO
	if apierr := bindJSON(c, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	note, apierr := n.NoteService.UpdateNote(c.Request().Context(), id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (n *DefaultNoteRoute) PartialUpdateNote(c echo.Context) error {
	id, apierr := parseID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.NoteDTO
	if apierr := bindPatch(c, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	note, apierr := n.NoteService.PartialUpdateNote(c.Request().Context(), id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (n *DefaultNoteRoute) DeleteNote(c echo.Context) error {
	id, apierr := parseID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := n.NoteService.DeleteNote(c.Request().Context(), id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
