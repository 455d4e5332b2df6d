// Package mapper converts between persisted entities and their wire form.
// Associated records always collapse to id-only references so a single
// note never drags the whole graph into a response.
package mapper

import (
	"tagnotes/cmd/internal/contract"
	"tagnotes/cmd/internal/domain/entity"
)

func NoteToDTO(note *entity.Note) *contract.NoteDTO {
	if note == nil {
		return nil
	}

	title := note.Title
	return &contract.NoteDTO{
		ID:             idPtr(note.ID),
		Title:          &title,
		Content:        note.Content,
		CreatedAt:      note.CreatedAt,
		LastModifiedAt: note.LastModifiedAt,
		Tags:           toTagRefs(note.Tags),
	}
}

func NotesToDTO(notes []*entity.Note) []*contract.NoteDTO {
	resp := make([]*contract.NoteDTO, len(notes))
	for i, note := range notes {
		resp[i] = NoteToDTO(note)
	}
	return resp
}

// NoteToEntity copies scalar fields only. Tag references are left for the
// caller to resolve against storage.
func NoteToEntity(dto *contract.NoteDTO) *entity.Note {
	if dto == nil {
		return nil
	}

	note := &entity.Note{
		Content:        dto.Content,
		CreatedAt:      dto.CreatedAt,
		LastModifiedAt: dto.LastModifiedAt,
	}
	if dto.ID != nil {
		note.ID = *dto.ID
	}
	if dto.Title != nil {
		note.Title = *dto.Title
	}
	return note
}

// PartialUpdateNote overwrites the fields of existing that are set on dto.
// Tags are not touched here.
func PartialUpdateNote(existing *entity.Note, dto *contract.NoteDTO) {
	if dto.Title != nil {
		existing.Title = *dto.Title
	}
	if dto.Content != nil {
		existing.Content = dto.Content
	}
	if dto.CreatedAt != nil {
		existing.CreatedAt = dto.CreatedAt
	}
	if dto.LastModifiedAt != nil {
		existing.LastModifiedAt = dto.LastModifiedAt
	}
}

// TagRefIDs returns the distinct ids referenced by refs, in order of first
// appearance.
func TagRefIDs(refs []*contract.TagRef) []int64 {
	seen := make(map[int64]struct{}, len(refs))
	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		if ref == nil {
			continue
		}
		if _, ok := seen[ref.ID]; ok {
			continue
		}
		seen[ref.ID] = struct{}{}
		ids = append(ids, ref.ID)
	}
	return ids
}

func toTagRefs(tags []*entity.Tag) []*contract.TagRef {
	refs := make([]*contract.TagRef, len(tags))
	for i, tag := range tags {
		refs[i] = &contract.TagRef{ID: tag.ID}
	}
	return refs
}

func idPtr(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
