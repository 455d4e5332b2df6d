package contract

import (
	"fmt"
	"strings"
	"time"
)

const (
	NoteTitleMaxLength = 255
	TagNameMinLength   = 2
	TagNameMaxLength   = 50
)

// TagRef is a tag collapsed to its identity.
type TagRef struct {
	ID int64 `json:"id"`
}

// NoteRef is a note collapsed to its identity.
type NoteRef struct {
	ID int64 `json:"id"`
}

// NoteDTO is the wire form of a note. Pointer fields tell "absent" apart
// from a zero value, which partial updates rely on.
type NoteDTO struct {
	ID             *int64     `json:"id"`
	Title          *string    `json:"title" validate:"required,min=1,max=255" sanitize:"trim"`
	Content        *string    `json:"content"`
	CreatedAt      *time.Time `json:"createdAt"`
	LastModifiedAt *time.Time `json:"lastModifiedAt"`
	Tags           []*TagRef  `json:"tags" validate:"omitempty,dive,required"`
}

type TagDTO struct {
	ID    *int64     `json:"id"`
	Name  *string    `json:"name" validate:"required,min=2,max=50" sanitize:"trim"`
	Notes []*NoteRef `json:"notes"`
}

func (n NoteDTO) String() string {
	ids := make([]string, 0, len(n.Tags))
	for _, ref := range n.Tags {
		if ref != nil {
			ids = append(ids, fmt.Sprint(ref.ID))
		}
	}
	return fmt.Sprintf("NoteDTO{id=%s, title=%s, tags=[%s]}", fmtPtr(n.ID), fmtPtr(n.Title), strings.Join(ids, " "))
}

func (t TagDTO) String() string {
	return fmt.Sprintf("TagDTO{id=%s, name=%s}", fmtPtr(t.ID), fmtPtr(t.Name))
}

func fmtPtr[T any](v *T) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%q", fmt.Sprint(*v))
}
