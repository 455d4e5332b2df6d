package service

import (
	"context"

	"tagnotes/cmd/internal/contract"
	"tagnotes/cmd/internal/domain/entity"
	"tagnotes/cmd/internal/domain/page"
	"tagnotes/cmd/internal/service/mapper"
	"tagnotes/cmd/internal/utils"
	"tagnotes/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const tagEntityName = "tag"

type TagRepository interface {
	FindAllInIDs(ctx context.Context, ids []int64) ([]*entity.Tag, error)
	FindPage(ctx context.Context, pageable page.Pageable) (*page.Page[*entity.Tag], error)
	FindOneWithEagerRelationships(ctx context.Context, id int64) (*entity.Tag, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Save(ctx context.Context, tag *entity.Tag) error
	DeleteByID(ctx context.Context, id int64) error
}

// DefaultTagService mirrors DefaultNoteService. Note references sent by
// clients are ignored on writes since notes own the association.
type DefaultTagService struct {
	TagRepo     TagRepository
	Tx          Transactor
	Validate    *validator.Validate
	MaxPageSize int
}

func NewTagService(tagRepo TagRepository, tx Transactor, validate *validator.Validate, maxPageSize int) *DefaultTagService {
	return &DefaultTagService{
		TagRepo:     tagRepo,
		Tx:          tx,
		Validate:    validate,
		MaxPageSize: maxPageSize,
	}
}

// GetTags lists tags without their notes.
func (t *DefaultTagService) GetTags(ctx context.Context, pageable page.Pageable) (*page.Page[*contract.TagDTO], apierror.ErrorResponse) {
	log.Debugf("Request to get Tags: page=%d size=%d", pageable.Page, pageable.Size)

	pageable = pageable.Normalize(t.MaxPageSize)

	var resp *page.Page[*contract.TagDTO]
	apierr := inTx(ctx, t.Tx, func(ctx context.Context) apierror.ErrorResponse {
		tags, err := t.TagRepo.FindPage(ctx, pageable)
		if err != nil {
			return pageError(err)
		}

		resp = page.Map(tags, mapper.TagToDTO)
		return nil
	})
	return resp, apierr
}

func (t *DefaultTagService) GetTagByID(ctx context.Context, tagID int64) (*contract.TagDTO, apierror.ErrorResponse) {
	log.Debugf("Request to get Tag: %d", tagID)

	var resp *contract.TagDTO
	apierr := inTx(ctx, t.Tx, func(ctx context.Context) apierror.ErrorResponse {
		tag, err := t.TagRepo.FindOneWithEagerRelationships(ctx, tagID)
		if err != nil {
			log.Errorf("failed to fetch tag: %v", err)
			return apierror.InternalServerError
		}

		if tag == nil {
			return apierror.NotFoundError
		}
		resp = mapper.TagToDTO(tag)
		return nil
	})
	return resp, apierr
}

func (t *DefaultTagService) CreateTag(ctx context.Context, req *contract.TagDTO) (*contract.TagDTO, apierror.ErrorResponse) {
	log.Debugf("Request to save Tag: %v", req)

	if req.ID != nil {
		return nil, apierror.NewIDExistsError(tagEntityName)
	}

	utils.Sanitize(req)
	if valerr := t.Validate.Struct(req); valerr != nil {
		return nil, validationError(valerr)
	}

	var resp *contract.TagDTO
	apierr := inTx(ctx, t.Tx, func(ctx context.Context) apierror.ErrorResponse {
		tag := mapper.TagToEntity(req)
		if err := t.TagRepo.Save(ctx, tag); err != nil {
			log.Errorf("failed to save tag: %v", err)
			return apierror.InternalServerError
		}

		resp = mapper.TagToDTO(tag)
		return nil
	})
	return resp, apierr
}

func (t *DefaultTagService) UpdateTag(ctx context.Context, tagID int64, req *contract.TagDTO) (*contract.TagDTO, apierror.ErrorResponse) {
	log.Debugf("Request to update Tag %d: %v", tagID, req)

	if apierr := checkPathID(tagID, req.ID); apierr != nil {
		return nil, apierr
	}

	utils.Sanitize(req)
	if valerr := t.Validate.Struct(req); valerr != nil {
		return nil, validationError(valerr)
	}

	return t.saveExisting(ctx, tagID, func(tag *entity.Tag) {
		tag.Name = *req.Name
	})
}

func (t *DefaultTagService) PartialUpdateTag(ctx context.Context, tagID int64, req *contract.TagDTO) (*contract.TagDTO, apierror.ErrorResponse) {
	log.Debugf("Request to partially update Tag %d: %v", tagID, req)

	if apierr := checkPathID(tagID, req.ID); apierr != nil {
		return nil, apierr
	}

	utils.Sanitize(req)
	var valerr error
	if req.Name == nil {
		valerr = t.Validate.StructExcept(req, "Name")
	} else {
		valerr = t.Validate.Struct(req)
	}
	if valerr != nil {
		return nil, validationError(valerr)
	}

	return t.saveExisting(ctx, tagID, func(tag *entity.Tag) {
		mapper.PartialUpdateTag(tag, req)
	})
}

func (t *DefaultTagService) DeleteTag(ctx context.Context, tagID int64) apierror.ErrorResponse {
	log.Debugf("Request to delete Tag: %d", tagID)

	return inTx(ctx, t.Tx, func(ctx context.Context) apierror.ErrorResponse {
		if err := t.TagRepo.DeleteByID(ctx, tagID); err != nil {
			log.Errorf("failed to delete tag: %v", err)
			return apierror.InternalServerError
		}
		return nil
	})
}

// saveExisting loads the tag with its notes, applies update and saves it.
// The response keeps the note references since the association is left
// untouched.
func (t *DefaultTagService) saveExisting(ctx context.Context, tagID int64, update func(*entity.Tag)) (*contract.TagDTO, apierror.ErrorResponse) {
	var resp *contract.TagDTO
	apierr := inTx(ctx, t.Tx, func(ctx context.Context) apierror.ErrorResponse {
		tag, err := t.TagRepo.FindOneWithEagerRelationships(ctx, tagID)
		if err != nil {
			log.Errorf("failed to fetch tag: %v", err)
			return apierror.InternalServerError
		}

		if tag == nil {
			return apierror.NewIDNotFoundError(tagEntityName, tagID)
		}

		update(tag)
		if err := t.TagRepo.Save(ctx, tag); err != nil {
			log.Errorf("failed to update tag: %v", err)
			return apierror.InternalServerError
		}

		resp = mapper.TagToDTO(tag)
		return nil
	})
	return resp, apierr
}
