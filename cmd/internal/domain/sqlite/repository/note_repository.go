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

// Instants are ordered through julianday so rows written with different
// offsets still sort by time.
var noteSortColumns = map[string]string{
	"id":             "id",
	"title":          "title",
	"createdAt":      "julianday(created_at)",
	"lastModifiedAt": "julianday(last_modified_at)",
}

// DefaultNoteRepository loads notes without their tags unless one of the
// *WithEagerRelationships methods is used. Those run a second query for
// the tags of the already selected notes, since only one collection can be
// fetched together with its owner without multiplying rows.
type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

func (d *DefaultNoteRepository) FindAll(ctx context.Context) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := sqlite.Conn(ctx, d.db).Order("id").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) FindPage(ctx context.Context, pageable page.Pageable) (*page.Page[*entity.Note], error) {
	conn := sqlite.Conn(ctx, d.db)

	var total int64
	if err := conn.Model(&entity.Note{}).Count(&total).Error; err != nil {
		return nil, err
	}

	query, err := applyOrder(conn.Model(&entity.Note{}), pageable.Sort, noteSortColumns)
	if err != nil {
		return nil, err
	}

	var notes []*entity.Note
	err = query.
		Limit(pageable.Size).
		Offset(pageable.Offset()).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return page.New(notes, pageable, total), nil
}

func (d *DefaultNoteRepository) FindByID(ctx context.Context, id int64) (*entity.Note, error) {
	var note entity.Note
	err := sqlite.Conn(ctx, d.db).First(&note, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (d *DefaultNoteRepository) FindOneWithEagerRelationships(ctx context.Context, id int64) (*entity.Note, error) {
	note, err := d.FindByID(ctx, id)
	if err != nil || note == nil {
		return nil, err
	}

	if err := d.fetchBagRelationships(ctx, []*entity.Note{note}); err != nil {
		return nil, err
	}
	return note, nil
}

func (d *DefaultNoteRepository) FindAllWithEagerRelationships(ctx context.Context) ([]*entity.Note, error) {
	notes, err := d.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := d.fetchBagRelationships(ctx, notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) FindPageWithEagerRelationships(ctx context.Context, pageable page.Pageable) (*page.Page[*entity.Note], error) {
	notes, err := d.FindPage(ctx, pageable)
	if err != nil {
		return nil, err
	}

	if err := d.fetchBagRelationships(ctx, notes.Content); err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := sqlite.Conn(ctx, d.db).
		Model(&entity.Note{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *DefaultNoteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := sqlite.Conn(ctx, d.db).Model(&entity.Note{}).Count(&count).Error
	return count, err
}

// Save inserts a note with a zero id and replaces it otherwise. The tag set
// of the note becomes the exact set of association rows; tags must already
// be persisted.
func (d *DefaultNoteRepository) Save(ctx context.Context, note *entity.Note) error {
	conn := sqlite.Conn(ctx, d.db)

	if err := conn.Omit("Tags").Save(note).Error; err != nil {
		return fmt.Errorf("save note: %w", err)
	}

	links := make([]*noteTagLink, 0, len(note.Tags))
	for _, tag := range note.Tags {
		if tag.ID == 0 {
			return fmt.Errorf("save note %d: %w", note.ID, ErrUnsavedTag)
		}
		links = append(links, &noteTagLink{NoteID: note.ID, TagID: tag.ID})
	}
	return replaceLinks(conn, "note_id", note.ID, links)
}

// DeleteByID removes the note and its association rows. Missing ids are not
// an error.
func (d *DefaultNoteRepository) DeleteByID(ctx context.Context, id int64) error {
	conn := sqlite.Conn(ctx, d.db)

	err := conn.Where("note_id = ?", id).Delete(&noteTagLink{}).Error
	if err != nil {
		return err
	}
	return conn.Delete(&entity.Note{}, id).Error
}

type noteTagRow struct {
	NoteID int64
	TagID  int64
	Name   string
}

// fetchBagRelationships attaches the tags of every note in one query keyed
// by the note ids. It never reorders or filters notes.
func (d *DefaultNoteRepository) fetchBagRelationships(ctx context.Context, notes []*entity.Note) error {
	if len(notes) == 0 {
		return nil
	}

	ids := make([]int64, len(notes))
	for i, note := range notes {
		ids[i] = note.ID
	}

	var rows []noteTagRow
	err := sqlite.Conn(ctx, d.db).
		Table("rel_note__tag").
		Select("rel_note__tag.note_id, tags.id AS tag_id, tags.name").
		Joins("JOIN tags ON tags.id = rel_note__tag.tag_id").
		Where("rel_note__tag.note_id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return fmt.Errorf("fetch note tags: %w", err)
	}

	links := entity.NewLinks()
	tags := make(map[int64]*entity.Tag, len(rows))
	for _, row := range rows {
		links.Link(row.NoteID, row.TagID)
		if _, ok := tags[row.TagID]; !ok {
			tags[row.TagID] = &entity.Tag{ID: row.TagID, Name: row.Name}
		}
	}

	for _, note := range notes {
		tagIDs := links.TagIDs(note.ID)
		set := make([]*entity.Tag, len(tagIDs))
		for i, tagID := range tagIDs {
			set[i] = tags[tagID]
		}
		note.SetTags(set)
	}
	return nil
}
