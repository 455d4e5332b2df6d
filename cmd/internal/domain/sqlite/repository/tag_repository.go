package repository

import (
	"context"
	"errors"
	"fmt"

	"tagnotes/cmd/internal/domain/entity"
	"tagnotes/cmd/internal/domain/page"
	"tagnotes/cmd/internal/domain/sqlite"

	"gorm.io/gorm"
)

var tagSortColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

type DefaultTagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *DefaultTagRepository {
	return &DefaultTagRepository{db: db}
}

func (t *DefaultTagRepository) FindAllInIDs(ctx context.Context, ids []int64) ([]*entity.Tag, error) {
	if len(ids) == 0 {
		return []*entity.Tag{}, nil
	}

	var tags []*entity.Tag
	err := sqlite.Conn(ctx, t.db).
		Where("id IN ?", ids).
		Order("id").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (t *DefaultTagRepository) FindPage(ctx context.Context, pageable page.Pageable) (*page.Page[*entity.Tag], error) {
	conn := sqlite.Conn(ctx, t.db)

	var total int64
	if err := conn.Model(&entity.Tag{}).Count(&total).Error; err != nil {
		return nil, err
	}

	query, err := applyOrder(conn.Model(&entity.Tag{}), pageable.Sort, tagSortColumns)
	if err != nil {
		return nil, err
	}

	var tags []*entity.Tag
	err = query.
		Limit(pageable.Size).
		Offset(pageable.Offset()).
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return page.New(tags, pageable, total), nil
}

func (t *DefaultTagRepository) FindPageWithEagerRelationships(ctx context.Context, pageable page.Pageable) (*page.Page[*entity.Tag], error) {
	tags, err := t.FindPage(ctx, pageable)
	if err != nil {
		return nil, err
	}

	if err := t.fetchBagRelationships(ctx, tags.Content); err != nil {
		return nil, err
	}
	return tags, nil
}

func (t *DefaultTagRepository) FindByID(ctx context.Context, id int64) (*entity.Tag, error) {
	var tag entity.Tag
	err := sqlite.Conn(ctx, t.db).First(&tag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (t *DefaultTagRepository) FindOneWithEagerRelationships(ctx context.Context, id int64) (*entity.Tag, error) {
	tag, err := t.FindByID(ctx, id)
	if err != nil || tag == nil {
		return nil, err
	}

	if err := t.fetchBagRelationships(ctx, []*entity.Tag{tag}); err != nil {
		return nil, err
	}
	return tag, nil
}

func (t *DefaultTagRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := sqlite.Conn(ctx, t.db).
		Model(&entity.Tag{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (t *DefaultTagRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := sqlite.Conn(ctx, t.db).Model(&entity.Tag{}).Count(&count).Error
	return count, err
}

// Save never touches the association: the note side owns it.
func (t *DefaultTagRepository) Save(ctx context.Context, tag *entity.Tag) error {
	err := sqlite.Conn(ctx, t.db).Omit("Notes").Save(tag).Error
	if err != nil {
		return fmt.Errorf("save tag: %w", err)
	}
	return nil
}

func (t *DefaultTagRepository) DeleteByID(ctx context.Context, id int64) error {
	conn := sqlite.Conn(ctx, t.db)

	err := conn.Where("tag_id = ?", id).Delete(&noteTagLink{}).Error
	if err != nil {
		return err
	}
	return conn.Delete(&entity.Tag{}, id).Error
}

type tagNoteRow struct {
	TagID  int64
	NoteID int64
	Title  string
}

// fetchBagRelationships is the tag side of the note repository's follow-up
// fetch. Notes are loaded with their id and title only.
func (t *DefaultTagRepository) fetchBagRelationships(ctx context.Context, tags []*entity.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	ids := make([]int64, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
	}

	var rows []tagNoteRow
	err := sqlite.Conn(ctx, t.db).
		Table("rel_note__tag").
		Select("rel_note__tag.tag_id, notes.id AS note_id, notes.title").
		Joins("JOIN notes ON notes.id = rel_note__tag.note_id").
		Where("rel_note__tag.tag_id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return fmt.Errorf("fetch tag notes: %w", err)
	}

	links := entity.NewLinks()
	notes := make(map[int64]*entity.Note, len(rows))
	for _, row := range rows {
		links.Link(row.NoteID, row.TagID)
		if _, ok := notes[row.NoteID]; !ok {
			notes[row.NoteID] = &entity.Note{ID: row.NoteID, Title: row.Title}
		}
	}

	for _, tag := range tags {
		noteIDs := links.NoteIDs(tag.ID)
		set := make([]*entity.Note, len(noteIDs))
		for i, noteID := range noteIDs {
			set[i] = notes[noteID]
		}
		tag.SetNotes(set)
	}
	return nil
}
