package service

import (
	"context"
	"net/http"
	"testing"

	"tagnotes/cmd/internal/contract"
	"tagnotes/cmd/internal/domain/page"
	"tagnotes/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tagID := f.createTag(t, "work")

	note, apierr := f.notes.CreateNote(ctx, &contract.NoteDTO{
		Title:   ptr("  Groceries  "),
		Content: ptr("milk"),
		Tags:    tagRefs(tagID),
	})
	require.Nil(t, apierr)
	require.NotNil(t, note.ID)
	assert.Equal(t, "Groceries", *note.Title)
	assert.Equal(t, []int64{tagID}, refIDs(note.Tags))

	found, apierr := f.notes.GetNoteByID(ctx, *note.ID)
	require.Nil(t, apierr)
	assert.Equal(t, "milk", *found.Content)
	assert.Equal(t, []int64{tagID}, refIDs(found.Tags))
}

func TestCreateNote_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, apierr := f.notes.CreateNote(ctx, &contract.NoteDTO{ID: ptr(int64(1)), Title: ptr("x")})
	requireStatus(t, apierr, http.StatusBadRequest)
	assert.IsType(t, &apierror.APIError{}, apierr)

	_, apierr = f.notes.CreateNote(ctx, &contract.NoteDTO{})
	requireStatus(t, apierr, http.StatusBadRequest)
	serr, ok := apierr.(*apierror.StructuredError)
	require.True(t, ok)
	assert.Contains(t, serr.Errors, "title")

	long := make([]byte, contract.NoteTitleMaxLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, apierr = f.notes.CreateNote(ctx, &contract.NoteDTO{Title: ptr(string(long))})
	requireStatus(t, apierr, http.StatusBadRequest)

	_, apierr = f.notes.CreateNote(ctx, &contract.NoteDTO{Title: ptr("x"), Tags: tagRefs(404)})
	requireStatus(t, apierr, http.StatusBadRequest)
	serr, ok = apierr.(*apierror.StructuredError)
	require.True(t, ok)
	assert.Equal(t, []string{"Unknown tag ids: 404"}, serr.Errors["tags"])

	notes, apierr := f.notes.GetNotes(ctx, page.Of(0, 20), false)
	require.Nil(t, apierr)
	assert.Zero(t, notes.TotalElements)
}

func TestGetNoteByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, apierr := f.notes.GetNoteByID(context.Background(), 42)
	requireStatus(t, apierr, http.StatusNotFound)
}

func TestUpdateNote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	work := f.createTag(t, "work")
	home := f.createTag(t, "home")

	note, apierr := f.notes.CreateNote(ctx, &contract.NoteDTO{
		Title:   ptr("before"),
		Content: ptr("body"),
		Tags:    tagRefs(work),
	})
	require.Nil(t, apierr)

	updated, apierr := f.notes.UpdateNote(ctx, *note.ID, &contract.NoteDTO{
		ID:    note.ID,
		Title: ptr("after"),
		Tags:  tagRefs(home),
	})
	require.Nil(t, apierr)
	assert.Equal(t, "after", *updated.Title)

	found, apierr := f.notes.GetNoteByID(ctx, *note.ID)
	require.Nil(t, apierr)
	assert.Equal(t, "after", *found.Title)
	assert.Nil(t, found.Content)
	assert.Equal(t, []int64{home}, refIDs(found.Tags))
}

func TestUpdateNote_IdentityRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	note, apierr := f.notes.CreateNote(ctx, &contract.NoteDTO{Title: ptr("note")})
	require.Nil(t, apierr)

	_, apierr = f.notes.UpdateNote(ctx, *note.ID, &contract.NoteDTO{Title: ptr("x")})
	assert.Equal(t, apierror.IDNullError, apierr)

	_, apierr = f.notes.UpdateNote(ctx, *note.ID, &contract.NoteDTO{ID: ptr(*note.ID + 1), Title: ptr("x")})
	assert.Equal(t, apierror.IDInvalidError, apierr)

	missing := *note.ID + 100
	_, apierr = f.notes.UpdateNote(ctx, missing, &contract.NoteDTO{ID: &missing, Title: ptr("x")})
	requireStatus(t, apierr, http.StatusBadRequest)

	_, apierr = f.notes.UpdateNote(ctx, *note.ID, &contract.NoteDTO{ID: note.ID})
	requireStatus(t, apierr, http.StatusBadRequest)

	found, apierr := f.notes.GetNoteByID(ctx, *note.ID)
	require.Nil(t, apierr)
	assert.Equal(t, "note", *found.Title)
}

func TestPartialUpdateNote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	work := f.createTag(t, "work")
	home := f.createTag(t, "home")

	note, apierr := f.notes.CreateNote(ctx, &contract.NoteDTO{
		Title:   ptr("title"),
		Content: ptr("content"),
		Tags:    tagRefs(work, home),
	})
	require.Nil(t, apierr)

	patched, apierr := f.notes.PartialUpdateNote(ctx, *note.ID, &contract.NoteDTO{
		ID:      note.ID,
		Content: ptr("changed"),
	})
	require.Nil(t, apierr)
	assert.Equal(t, "title", *patched.Title)
	assert.Equal(t, "changed", *patched.Content)
	assert.ElementsMatch(t, []int64{work, home}, refIDs(patched.Tags))

	patched, apierr = f.notes.PartialUpdateNote(ctx, *note.ID, &contract.NoteDTO{
		ID:   note.ID,
		Tags: []*contract.TagRef{},
	})
	require.Nil(t, apierr)
	assert.Empty(t, patched.Tags)

	found, apierr := f.notes.GetNoteByID(ctx, *note.ID)
	require.Nil(t, apierr)
	assert.Equal(t, "changed", *found.Content)
	assert.Empty(t, found.Tags)
}

func TestPartialUpdateNote_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	note, apierr := f.notes.CreateNote(ctx, &contract.NoteDTO{Title: ptr("title")})
	require.Nil(t, apierr)

	_, apierr = f.notes.PartialUpdateNote(ctx, *note.ID, &contract.NoteDTO{Title: ptr("")})
	assert.Equal(t, apierror.IDNullError, apierr)

	_, apierr = f.notes.PartialUpdateNote(ctx, *note.ID, &contract.NoteDTO{ID: note.ID, Title: ptr("   ")})
	requireStatus(t, apierr, http.StatusBadRequest)

	missing := *note.ID + 1
	_, apierr = f.notes.PartialUpdateNote(ctx, missing, &contract.NoteDTO{ID: &missing})
	requireStatus(t, apierr, http.StatusBadRequest)

	_, apierr = f.notes.PartialUpdateNote(ctx, *note.ID, &contract.NoteDTO{ID: note.ID, Tags: tagRefs(99)})
	requireStatus(t, apierr, http.StatusBadRequest)
}

func TestDeleteNote_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tagID := f.createTag(t, "keep")

	note, apierr := f.notes.CreateNote(ctx, &contract.NoteDTO{Title: ptr("gone"), Tags: tagRefs(tagID)})
	require.Nil(t, apierr)

	assert.Nil(t, f.notes.DeleteNote(ctx, *note.ID))
	assert.Nil(t, f.notes.DeleteNote(ctx, *note.ID))

	_, apierr = f.notes.GetNoteByID(ctx, *note.ID)
	requireStatus(t, apierr, http.StatusNotFound)

	tag, apierr := f.tags.GetTagByID(ctx, tagID)
	require.Nil(t, apierr)
	assert.Empty(t, tag.Notes)
}

func TestGetNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tagID := f.createTag(t, "shared")

	for _, title := range []string{"c", "a", "b"} {
		_, apierr := f.notes.CreateNote(ctx, &contract.NoteDTO{Title: ptr(title), Tags: tagRefs(tagID)})
		require.Nil(t, apierr)
	}

	sorted := page.Of(0, 2, page.Order{Property: "title", Direction: page.Asc})
	notes, apierr := f.notes.GetNotes(ctx, sorted, true)
	require.Nil(t, apierr)
	assert.EqualValues(t, 3, notes.TotalElements)
	assert.Equal(t, 2, notes.TotalPages())
	require.Len(t, notes.Content, 2)
	assert.Equal(t, "a", *notes.Content[0].Title)
	assert.Equal(t, "b", *notes.Content[1].Title)
	for _, note := range notes.Content {
		assert.Equal(t, []int64{tagID}, refIDs(note.Tags))
	}

	lazy, apierr := f.notes.GetNotes(ctx, sorted, false)
	require.Nil(t, apierr)
	for _, note := range lazy.Content {
		assert.Empty(t, note.Tags)
	}

	_, apierr = f.notes.GetNotes(ctx, page.Of(0, 20, page.Order{Property: "content"}), true)
	requireStatus(t, apierr, http.StatusBadRequest)
}

func TestExportNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, apierr := f.notes.ExportNotes(ctx)
	require.Nil(t, apierr)
	assert.Empty(t, empty)

	work := f.createTag(t, "work")
	home := f.createTag(t, "home")
	for _, dto := range []*contract.NoteDTO{
		{Title: ptr("first"), Tags: tagRefs(work, home)},
		{Title: ptr("second")},
		{Title: ptr("third"), Tags: tagRefs(home)},
	} {
		_, apierr := f.notes.CreateNote(ctx, dto)
		require.Nil(t, apierr)
	}

	notes, apierr := f.notes.ExportNotes(ctx)
	require.Nil(t, apierr)
	require.Len(t, notes, 3)
	assert.Equal(t, "first", *notes[0].Title)
	assert.ElementsMatch(t, []int64{work, home}, refIDs(notes[0].Tags))
	assert.Empty(t, notes[1].Tags)
	assert.Equal(t, []int64{home}, refIDs(notes[2].Tags))
}
