package entity

// Tag is the inverse side of the note/tag association.
type Tag struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:50;not null"`

	// Relations
	Notes []*Note `gorm:"many2many:rel_note__tag;joinForeignKey:TagID;joinReferences:NoteID"`
}

func (t *Tag) Equals(other *Tag) bool {
	if t == nil || other == nil || t.ID == 0 {
		return false
	}
	return t.ID == other.ID
}

func (t *Tag) HasNote(note *Note) bool {
	return indexOfNote(t.Notes, note) >= 0
}

func (t *Tag) AddNote(note *Note) *Tag {
	if note != nil {
		note.AddTag(t)
	}
	return t
}

func (t *Tag) RemoveNote(note *Note) *Tag {
	if note != nil {
		note.RemoveTag(t)
	}
	return t
}

// SetNotes replaces the whole membership, mirroring Note.SetTags.
func (t *Tag) SetNotes(notes []*Note) *Tag {
	for _, old := range t.Notes {
		old.Tags = removeTag(old.Tags, t)
	}
	t.Notes = make([]*Note, 0, len(notes))
	for _, note := range notes {
		t.AddNote(note)
	}
	return t
}

func indexOfTag(tags []*Tag, tag *Tag) int {
	for i, candidate := range tags {
		if candidate == tag || candidate.Equals(tag) {
			return i
		}
	}
	return -1
}

func removeTag(tags []*Tag, tag *Tag) []*Tag {
	out := tags[:0]
	for _, candidate := range tags {
		if candidate == tag || candidate.Equals(tag) {
			continue
		}
		out = append(out, candidate)
	}
	clear(tags[len(out):])
	return out
}
