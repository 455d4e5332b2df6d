package mapper

import (
	"tagnotes/cmd/internal/contract"
	"tagnotes/cmd/internal/domain/entity"
)

func TagToDTO(tag *entity.Tag) *contract.TagDTO {
	if tag == nil {
		return nil
	}

	notes := make([]*contract.NoteRef, len(tag.Notes))
	for i, note := range tag.Notes {
		notes[i] = &contract.NoteRef{ID: note.ID}
	}

	name := tag.Name
	return &contract.TagDTO{
		ID:    idPtr(tag.ID),
		Name:  &name,
		Notes: notes,
	}
}

// TagToEntity ignores the note references: the association is owned by
// notes.
func TagToEntity(dto *contract.TagDTO) *entity.Tag {
	if dto == nil {
		return nil
	}

	tag := &entity.Tag{}
	if dto.ID != nil {
		tag.ID = *dto.ID
	}
	if dto.Name != nil {
		tag.Name = *dto.Name
	}
	return tag
}

func PartialUpdateTag(existing *entity.Tag, dto *contract.TagDTO) {
	if dto.Name != nil {
		existing.Name = *dto.Name
	}
}
