package mapper

import (
	"testing"
	"time"

	"tagnotes/cmd/internal/contract"
	"tagnotes/cmd/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func sampleNote() *entity.Note {
	created := time.UnixMilli(0).UTC()
	modified := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	note := &entity.Note{
		ID:             42,
		Title:          "AAAAAAAAAA",
		Content:        ptr("AAAAAAAAAA"),
		CreatedAt:      &created,
		LastModifiedAt: &modified,
	}
	note.AddTag(&entity.Tag{ID: 7, Name: "golang"})
	note.AddTag(&entity.Tag{ID: 8, Name: "notes"})
	return note
}

func TestNoteToDTO_CollapsesTags(t *testing.T) {
	dto := NoteToDTO(sampleNote())

	require.NotNil(t, dto.ID)
	assert.Equal(t, int64(42), *dto.ID)
	assert.Equal(t, "AAAAAAAAAA", *dto.Title)
	assert.Equal(t, []*contract.TagRef{{ID: 7}, {ID: 8}}, dto.Tags)
}

func TestNoteToDTO_UnsavedHasNoID(t *testing.T) {
	dto := NoteToDTO(&entity.Note{Title: "draft"})
	assert.Nil(t, dto.ID)
	assert.Empty(t, dto.Tags)
}

func TestNoteMapping_RoundTripScalars(t *testing.T) {
	note := sampleNote()
	back := NoteToEntity(NoteToDTO(note))

	assert.Equal(t, note.ID, back.ID)
	assert.Equal(t, note.Title, back.Title)
	assert.Equal(t, note.Content, back.Content)
	assert.Equal(t, note.CreatedAt, back.CreatedAt)
	assert.Equal(t, note.LastModifiedAt, back.LastModifiedAt)
	assert.Empty(t, back.Tags, "tag references are never turned into tags")
}

func TestNoteToDTO_DoesNotAliasTitle(t *testing.T) {
	note := sampleNote()
	dto := NoteToDTO(note)
	*dto.Title = "changed"
	assert.Equal(t, "AAAAAAAAAA", note.Title)
}

func TestPartialUpdateNote_OnlyTitle(t *testing.T) {
	note := sampleNote()
	content, created, modified := note.Content, note.CreatedAt, note.LastModifiedAt

	PartialUpdateNote(note, &contract.NoteDTO{Title: ptr("BBBBBBBBBB")})

	assert.Equal(t, "BBBBBBBBBB", note.Title)
	assert.Equal(t, content, note.Content)
	assert.Equal(t, created, note.CreatedAt)
	assert.Equal(t, modified, note.LastModifiedAt)
	assert.Len(t, note.Tags, 2)
}

func TestPartialUpdateNote_AllFields(t *testing.T) {
	note := sampleNote()
	now := time.Now().UTC()

	PartialUpdateNote(note, &contract.NoteDTO{
		Title:          ptr("t"),
		Content:        ptr("c"),
		CreatedAt:      &now,
		LastModifiedAt: &now,
	})

	assert.Equal(t, "t", note.Title)
	assert.Equal(t, "c", *note.Content)
	assert.Equal(t, now, *note.CreatedAt)
	assert.Equal(t, now, *note.LastModifiedAt)
}

func TestTagRefIDs(t *testing.T) {
	ids := TagRefIDs([]*contract.TagRef{{ID: 3}, nil, {ID: 1}, {ID: 3}})
	assert.Equal(t, []int64{3, 1}, ids)
	assert.Empty(t, TagRefIDs(nil))
}

func TestTagMapping(t *testing.T) {
	tag := &entity.Tag{ID: 5, Name: "work"}
	tag.AddNote(&entity.Note{ID: 1, Title: "a"})
	tag.AddNote(&entity.Note{ID: 2, Title: "b"})

	dto := TagToDTO(tag)
	assert.Equal(t, int64(5), *dto.ID)
	assert.Equal(t, "work", *dto.Name)
	assert.Equal(t, []*contract.NoteRef{{ID: 1}, {ID: 2}}, dto.Notes)

	back := TagToEntity(dto)
	assert.Equal(t, tag.ID, back.ID)
	assert.Equal(t, tag.Name, back.Name)
	assert.Empty(t, back.Notes)

	PartialUpdateTag(back, &contract.TagDTO{})
	assert.Equal(t, "work", back.Name)
	PartialUpdateTag(back, &contract.TagDTO{Name: ptr("home")})
	assert.Equal(t, "home", back.Name)
}
