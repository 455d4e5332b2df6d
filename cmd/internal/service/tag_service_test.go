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

func TestCreateTag_Validates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, apierr := f.tags.CreateTag(ctx, &contract.TagDTO{Name: ptr("x")})
	requireStatus(t, apierr, http.StatusBadRequest)

	_, apierr = f.tags.CreateTag(ctx, &contract.TagDTO{ID: ptr(int64(3)), Name: ptr("valid")})
	requireStatus(t, apierr, http.StatusBadRequest)

	tag, apierr := f.tags.CreateTag(ctx, &contract.TagDTO{Name: ptr(" ok ")})
	require.Nil(t, apierr)
	assert.Equal(t, "ok", *tag.Name)
	assert.Empty(t, tag.Notes)
}

func TestGetTagByID_CarriesNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tagID := f.createTag(t, "books")

	var noteIDs []int64
	for _, title := range []string{"one", "two"} {
		note, apierr := f.notes.CreateNote(ctx, &contract.NoteDTO{Title: ptr(title), Tags: tagRefs(tagID)})
		require.Nil(t, apierr)
		noteIDs = append(noteIDs, *note.ID)
	}

	tag, apierr := f.tags.GetTagByID(ctx, tagID)
	require.Nil(t, apierr)
	ids := make([]int64, len(tag.Notes))
	for i, ref := range tag.Notes {
		ids[i] = ref.ID
	}
	assert.ElementsMatch(t, noteIDs, ids)

	_, apierr = f.tags.GetTagByID(ctx, tagID+1)
	requireStatus(t, apierr, http.StatusNotFound)
}

func TestUpdateTag_KeepsNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tagID := f.createTag(t, "draft")

	note, apierr := f.notes.CreateNote(ctx, &contract.NoteDTO{Title: ptr("n"), Tags: tagRefs(tagID)})
	require.Nil(t, apierr)

	updated, apierr := f.tags.UpdateTag(ctx, tagID, &contract.TagDTO{ID: &tagID, Name: ptr("final")})
	require.Nil(t, apierr)
	assert.Equal(t, "final", *updated.Name)
	require.Len(t, updated.Notes, 1)
	assert.Equal(t, *note.ID, updated.Notes[0].ID)

	found, apierr := f.notes.GetNoteByID(ctx, *note.ID)
	require.Nil(t, apierr)
	assert.Equal(t, []int64{tagID}, refIDs(found.Tags))

	_, apierr = f.tags.UpdateTag(ctx, tagID, &contract.TagDTO{Name: ptr("final")})
	assert.Equal(t, apierror.IDNullError, apierr)

	missing := tagID + 10
	_, apierr = f.tags.UpdateTag(ctx, missing, &contract.TagDTO{ID: &missing, Name: ptr("final")})
	requireStatus(t, apierr, http.StatusBadRequest)
}

func TestPartialUpdateTag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tagID := f.createTag(t, "draft")

	same, apierr := f.tags.PartialUpdateTag(ctx, tagID, &contract.TagDTO{ID: &tagID})
	require.Nil(t, apierr)
	assert.Equal(t, "draft", *same.Name)

	_, apierr = f.tags.PartialUpdateTag(ctx, tagID, &contract.TagDTO{ID: &tagID, Name: ptr("x")})
	requireStatus(t, apierr, http.StatusBadRequest)

	renamed, apierr := f.tags.PartialUpdateTag(ctx, tagID, &contract.TagDTO{ID: &tagID, Name: ptr("done")})
	require.Nil(t, apierr)
	assert.Equal(t, "done", *renamed.Name)
}

func TestDeleteTag_KeepsNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tagID := f.createTag(t, "temp")

	note, apierr := f.notes.CreateNote(ctx, &contract.NoteDTO{Title: ptr("stays"), Tags: tagRefs(tagID)})
	require.Nil(t, apierr)

	assert.Nil(t, f.tags.DeleteTag(ctx, tagID))
	assert.Nil(t, f.tags.DeleteTag(ctx, tagID))

	found, apierr := f.notes.GetNoteByID(ctx, *note.ID)
	require.Nil(t, apierr)
	assert.Empty(t, found.Tags)

	tags, apierr := f.tags.GetTags(ctx, page.Of(0, 20))
	require.Nil(t, apierr)
	assert.Empty(t, tags.Content)
}
