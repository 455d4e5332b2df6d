package entity

import (
	"time"

	"gorm.io/gorm"
)

// Note is the owning side of the note/tag association. Its tags persist as
// rows of rel_note__tag; a Note never owns the lifecycle of its tags.
type Note struct {
	ID             int64      `gorm:"primaryKey"`
	Title          string     `gorm:"size:255;not null"`
	Content        *string    `gorm:"type:text"`
	CreatedAt      *time.Time `gorm:"autoCreateTime:false"`
	LastModifiedAt *time.Time

	// Relations
	Tags []*Tag `gorm:"many2many:rel_note__tag;joinForeignKey:NoteID;joinReferences:TagID"`
}

// Equals compares notes by identity only. A note that was never saved
// is not equal to anything.
func (n *Note) Equals(other *Note) bool {
	if n == nil || other == nil || n.ID == 0 {
		return false
	}
	return n.ID == other.ID
}

// BeforeSave stores both instants in UTC so that their text form in SQLite
// compares in time order.
func (n *Note) BeforeSave(*gorm.DB) error {
	n.CreatedAt = inUTC(n.CreatedAt)
	n.LastModifiedAt = inUTC(n.LastModifiedAt)
	return nil
}

func inUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

func (n *Note) HasTag(tag *Tag) bool {
	return indexOfTag(n.Tags, tag) >= 0
}

// AddTag links the tag on both sides of the association.
func (n *Note) AddTag(tag *Tag) *Note {
	if tag == nil {
		return n
	}
	if !n.HasTag(tag) {
		n.Tags = append(n.Tags, tag)
	}
	if !tag.HasNote(n) {
		tag.Notes = append(tag.Notes, n)
	}
	return n
}

// RemoveTag unlinks the tag on both sides of the association.
func (n *Note) RemoveTag(tag *Tag) *Note {
	if tag == nil {
		return n
	}
	n.Tags = removeTag(n.Tags, tag)
	tag.Notes = removeNote(tag.Notes, n)
	return n
}

// SetTags replaces the whole membership. Tags that are no longer part of
// the set stop referencing this note.
func (n *Note) SetTags(tags []*Tag) *Note {
	for _, old := range n.Tags {
		old.Notes = removeNote(old.Notes, n)
	}
	n.Tags = make([]*Tag, 0, len(tags))
	for _, tag := range tags {
		n.AddTag(tag)
	}
	return n
}

func indexOfNote(notes []*Note, note *Note) int {
	for i, candidate := range notes {
		if candidate == note || candidate.Equals(note) {
			return i
		}
	}
	return -1
}

func removeNote(notes []*Note, note *Note) []*Note {
	out := notes[:0]
	for _, candidate := range notes {
		if candidate == note || candidate.Equals(note) {
			continue
		}
		out = append(out, candidate)
	}
	clear(notes[len(out):])
	return out
}
