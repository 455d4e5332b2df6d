package entity

import (
	"maps"
	"slices"
)

// Links is an id-indexed view of rel_note__tag. Link writes both
// directions, so a pair is always visible from the note and from the tag.
type Links struct {
	noteTags map[int64]map[int64]struct{}
	tagNotes map[int64]map[int64]struct{}
}

func NewLinks() *Links {
	return &Links{
		noteTags: make(map[int64]map[int64]struct{}),
		tagNotes: make(map[int64]map[int64]struct{}),
	}
}

func (l *Links) Link(noteID, tagID int64) {
	addID(l.noteTags, noteID, tagID)
	addID(l.tagNotes, tagID, noteID)
}

// TagIDs returns the tags linked to the note in ascending order.
func (l *Links) TagIDs(noteID int64) []int64 {
	return slices.Sorted(maps.Keys(l.noteTags[noteID]))
}

// NoteIDs returns the notes linked to the tag in ascending order.
func (l *Links) NoteIDs(tagID int64) []int64 {
	return slices.Sorted(maps.Keys(l.tagNotes[tagID]))
}

func addID(index map[int64]map[int64]struct{}, key, value int64) {
	set, ok := index[key]
	if !ok {
		set = make(map[int64]struct{})
		index[key] = set
	}
	set[value] = struct{}{}
}
