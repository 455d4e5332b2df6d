package service

import (
	"context"
	"slices"

	"tagnotes/cmd/internal/contract"
	"tagnotes/cmd/internal/domain/entity"
	"tagnotes/cmd/internal/domain/page"
	"tagnotes/cmd/internal/service/mapper"
	"tagnotes/cmd/internal/utils"
	"tagnotes/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const noteEntityName = "note"

type NoteRepository interface {
	FindAllWithEagerRelationships(ctx context.Context) ([]*entity.Note, error)
	FindPage(ctx context.Context, pageable page.Pageable) (*page.Page[*entity.Note], error)
	FindPageWithEagerRelationships(ctx context.Context, pageable page.Pageable) (*page.Page[*entity.Note], error)
	FindOneWithEagerRelationships(ctx context.Context, id int64) (*entity.Note, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Save(ctx context.Context, note *entity.Note) error
	DeleteByID(ctx context.Context, id int64) error
}

type DefaultNoteService struct {
	NoteRepo    NoteRepository
	TagRepo     TagRepository
	Tx          Transactor
	Validate    *validator.Validate
	MaxPageSize int
}

func NewNoteService(
	noteRepo NoteRepository,
	tagRepo TagRepository,
	tx Transactor,
	validate *validator.Validate,
	maxPageSize int,
) *DefaultNoteService {
	return &DefaultNoteService{
		NoteRepo:    noteRepo,
		TagRepo:     tagRepo,
		Tx:          tx,
		Validate:    validate,
		MaxPageSize: maxPageSize,
	}
}

// GetNotes returns one page of notes. With eager set every note carries its
// tag references.
func (n *DefaultNoteService) GetNotes(ctx context.Context, pageable page.Pageable, eager bool) (*page.Page[*contract.NoteDTO], apierror.ErrorResponse) {
	log.Debugf("Request to get Notes: page=%d size=%d eager=%t", pageable.Page, pageable.Size, eager)

	pageable = pageable.Normalize(n.MaxPageSize)

	var resp *page.Page[*contract.NoteDTO]
	apierr := inTx(ctx, n.Tx, func(ctx context.Context) apierror.ErrorResponse {
		var notes *page.Page[*entity.Note]
		var err error
		if eager {
			notes, err = n.NoteRepo.FindPageWithEagerRelationships(ctx, pageable)
		} else {
			notes, err = n.NoteRepo.FindPage(ctx, pageable)
		}
		if err != nil {
			return pageError(err)
		}

		resp = page.Map(notes, mapper.NoteToDTO)
		return nil
	})
	return resp, apierr
}

// ExportNotes returns every note with its tag references, in id order.
func (n *DefaultNoteService) ExportNotes(ctx context.Context) ([]*contract.NoteDTO, apierror.ErrorResponse) {
	log.Debugf("Request to export all Notes")

	var resp []*contract.NoteDTO
	apierr := inTx(ctx, n.Tx, func(ctx context.Context) apierror.ErrorResponse {
		notes, err := n.NoteRepo.FindAllWithEagerRelationships(ctx)
		if err != nil {
			log.Errorf("failed to fetch notes: %v", err)
			return apierror.InternalServerError
		}

		resp = mapper.NotesToDTO(notes)
		return nil
	})
	return resp, apierr
}

func (n *DefaultNoteService) GetNoteByID(ctx context.Context, noteID int64) (*contract.NoteDTO, apierror.ErrorResponse) {
	log.Debugf("Request to get Note: %d", noteID)

	var resp *contract.NoteDTO
	apierr := inTx(ctx, n.Tx, func(ctx context.Context) apierror.ErrorResponse {
		note, err := n.NoteRepo.FindOneWithEagerRelationships(ctx, noteID)
		if err != nil {
			log.Errorf("failed to fetch note: %v", err)
			return apierror.InternalServerError
		}

		if note == nil {
			return apierror.NotFoundError
		}
		resp = mapper.NoteToDTO(note)
		return nil
	})
	return resp, apierr
}

func (n *DefaultNoteService) CreateNote(ctx context.Context, req *contract.NoteDTO) (*contract.NoteDTO, apierror.ErrorResponse) {
	log.Debugf("Request to save Note: %v", req)

	if req.ID != nil {
		return nil, apierror.NewIDExistsError(noteEntityName)
	}

	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, validationError(valerr)
	}

	var resp *contract.NoteDTO
	apierr := inTx(ctx, n.Tx, func(ctx context.Context) apierror.ErrorResponse {
		tags, apierr := resolveTags(ctx, n.TagRepo, req.Tags)
		if apierr != nil {
			return apierr
		}

		note := mapper.NoteToEntity(req)
		note.SetTags(tags)
		if err := n.NoteRepo.Save(ctx, note); err != nil {
			log.Errorf("failed to save note: %v", err)
			return apierror.InternalServerError
		}

		resp = mapper.NoteToDTO(note)
		return nil
	})
	return resp, apierr
}

// UpdateNote replaces every field of the note, absent ones included.
func (n *DefaultNoteService) UpdateNote(ctx context.Context, noteID int64, req *contract.NoteDTO) (*contract.NoteDTO, apierror.ErrorResponse) {
	log.Debugf("Request to update Note %d: %v", noteID, req)

	if apierr := checkPathID(noteID, req.ID); apierr != nil {
		return nil, apierr
	}

	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, validationError(valerr)
	}

	var resp *contract.NoteDTO
	apierr := inTx(ctx, n.Tx, func(ctx context.Context) apierror.ErrorResponse {
		exists, err := n.NoteRepo.ExistsByID(ctx, noteID)
		if err != nil {
			log.Errorf("failed to check note: %v", err)
			return apierror.InternalServerError
		}

		if !exists {
			return apierror.NewIDNotFoundError(noteEntityName, noteID)
		}

		tags, apierr := resolveTags(ctx, n.TagRepo, req.Tags)
		if apierr != nil {
			return apierr
		}

		note := mapper.NoteToEntity(req)
		note.SetTags(tags)
		if err := n.NoteRepo.Save(ctx, note); err != nil {
			log.Errorf("failed to update note: %v", err)
			return apierror.InternalServerError
		}

		resp = mapper.NoteToDTO(note)
		return nil
	})
	return resp, apierr
}

// PartialUpdateNote only overwrites the fields present in req. A non-nil
// tag list replaces the tag set, a nil one keeps it.
func (n *DefaultNoteService) PartialUpdateNote(ctx context.Context, noteID int64, req *contract.NoteDTO) (*contract.NoteDTO, apierror.ErrorResponse) {
	log.Debugf("Request to partially update Note %d: %v", noteID, req)

	if apierr := checkPathID(noteID, req.ID); apierr != nil {
		return nil, apierr
	}

	utils.Sanitize(req)
	var valerr error
	if req.Title == nil {
		valerr = n.Validate.StructExcept(req, "Title")
	} else {
		valerr = n.Validate.Struct(req)
	}
	if valerr != nil {
		return nil, validationError(valerr)
	}

	var resp *contract.NoteDTO
	apierr := inTx(ctx, n.Tx, func(ctx context.Context) apierror.ErrorResponse {
		note, err := n.NoteRepo.FindOneWithEagerRelationships(ctx, noteID)
		if err != nil {
			log.Errorf("failed to fetch note: %v", err)
			return apierror.InternalServerError
		}

		if note == nil {
			return apierror.NewIDNotFoundError(noteEntityName, noteID)
		}

		mapper.PartialUpdateNote(note, req)
		if req.Tags != nil {
			tags, apierr := resolveTags(ctx, n.TagRepo, req.Tags)
			if apierr != nil {
				return apierr
			}
			note.SetTags(tags)
		}

		if err := n.NoteRepo.Save(ctx, note); err != nil {
			log.Errorf("failed to update note: %v", err)
			return apierror.InternalServerError
		}

		resp = mapper.NoteToDTO(note)
		return nil
	})
	return resp, apierr
}

// DeleteNote succeeds whether or not the note existed.
func (n *DefaultNoteService) DeleteNote(ctx context.Context, noteID int64) apierror.ErrorResponse {
	log.Debugf("Request to delete Note: %d", noteID)

	return inTx(ctx, n.Tx, func(ctx context.Context) apierror.ErrorResponse {
		if err := n.NoteRepo.DeleteByID(ctx, noteID); err != nil {
			log.Errorf("failed to delete note: %v", err)
			return apierror.InternalServerError
		}
		return nil
	})
}

// resolveTags loads the referenced tags. References are never turned into
// tags on their own: an id that does not exist is a client error.
func resolveTags(ctx context.Context, repo TagRepository, refs []*contract.TagRef) ([]*entity.Tag, apierror.ErrorResponse) {
	ids := mapper.TagRefIDs(refs)
	if len(ids) == 0 {
		return nil, nil
	}

	tags, err := repo.FindAllInIDs(ctx, ids)
	if err != nil {
		log.Errorf("failed to fetch tags: %v", err)
		return nil, apierror.InternalServerError
	}

	if len(tags) == len(ids) {
		return tags, nil
	}

	found := make([]int64, len(tags))
	for i, tag := range tags {
		found[i] = tag.ID
	}

	var missing []int64
	for _, id := range ids {
		if !slices.Contains(found, id) {
			missing = append(missing, id)
		}
	}
	return nil, apierror.NewUnknownTagsError(missing)
}

func checkPathID(pathID int64, bodyID *int64) apierror.ErrorResponse {
	if bodyID == nil {
		return apierror.IDNullError
	}

	if *bodyID != pathID {
		return apierror.IDInvalidError
	}
	return nil
}
