package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNote_Equals(t *testing.T) {
	note1 := &Note{ID: 1, Title: "AAAAAAAAAA"}
	note2 := &Note{}
	assert.False(t, note1.Equals(note2))
	assert.False(t, note2.Equals(note1))
	assert.False(t, note2.Equals(note2), "unsaved note must not equal itself")

	note2.ID = note1.ID
	assert.True(t, note1.Equals(note2))

	note2 = &Note{ID: 2, Title: note1.Title}
	assert.False(t, note1.Equals(note2))
	assert.False(t, note1.Equals(nil))
}

func TestNote_AddRemoveTag(t *testing.T) {
	note := &Note{ID: 10, Title: "note"}
	tag := &Tag{ID: 20, Name: "go"}

	note.AddTag(tag)
	require.Len(t, note.Tags, 1)
	assert.Same(t, tag, note.Tags[0])
	require.Len(t, tag.Notes, 1)
	assert.Same(t, note, tag.Notes[0])

	// adding twice keeps set semantics
	note.AddTag(tag)
	assert.Len(t, note.Tags, 1)
	assert.Len(t, tag.Notes, 1)

	note.RemoveTag(tag)
	assert.Empty(t, note.Tags)
	assert.Empty(t, tag.Notes)
}

func TestNote_AddTagUnsaved(t *testing.T) {
	note := &Note{Title: "draft"}
	first := &Tag{Name: "a1"}
	second := &Tag{Name: "b2"}

	note.AddTag(first).AddTag(second)
	assert.Len(t, note.Tags, 2)
	assert.True(t, first.HasNote(note))
	assert.True(t, second.HasNote(note))

	note.RemoveTag(first)
	assert.Equal(t, []*Tag{second}, note.Tags)
	assert.False(t, first.HasNote(note))
}

func TestNote_SetTagsReplaces(t *testing.T) {
	note := &Note{ID: 1}
	old := &Tag{ID: 1, Name: "old"}
	kept := &Tag{ID: 2, Name: "kept"}
	added := &Tag{ID: 3, Name: "new"}

	note.AddTag(old).AddTag(kept)
	note.SetTags([]*Tag{kept, added})

	assert.Equal(t, []*Tag{kept, added}, note.Tags)
	assert.False(t, old.HasNote(note))
	assert.True(t, kept.HasNote(note))
	assert.True(t, added.HasNote(note))

	note.SetTags(nil)
	assert.Empty(t, note.Tags)
	assert.Empty(t, kept.Notes)
	assert.Empty(t, added.Notes)
}

func TestNote_SetTagsDeduplicates(t *testing.T) {
	note := &Note{ID: 1}
	tag := &Tag{ID: 7, Name: "dup"}
	sameID := &Tag{ID: 7, Name: "dup"}

	note.SetTags([]*Tag{tag, sameID, tag})
	assert.Len(t, note.Tags, 1)
}

func TestNote_BeforeSaveNormalizesToUTC(t *testing.T) {
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.FixedZone("+05", 5*60*60))
	note := &Note{Title: "n", CreatedAt: &created}

	require.NoError(t, note.BeforeSave(nil))

	assert.Equal(t, time.UTC, note.CreatedAt.Location())
	assert.True(t, created.Equal(*note.CreatedAt))
	assert.Nil(t, note.LastModifiedAt)
}
