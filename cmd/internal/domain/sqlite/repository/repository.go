package repository

import (
	"errors"
	"fmt"

	"tagnotes/cmd/internal/domain/page"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUnsavedTag = errors.New("tag has no id")

// noteTagLink is one row of the association table.
type noteTagLink struct {
	NoteID int64 `gorm:"primaryKey;autoIncrement:false"`
	TagID  int64 `gorm:"primaryKey;autoIncrement:false"`
}

func (noteTagLink) TableName() string {
	return "rel_note__tag"
}

// replaceLinks drops every association row owned by ownerID (matched on
// column) and writes links instead.
func replaceLinks(conn *gorm.DB, column string, ownerID int64, links []*noteTagLink) error {
	err := conn.Where(column+" = ?", ownerID).Delete(&noteTagLink{}).Error
	if err != nil {
		return fmt.Errorf("clear links: %w", err)
	}

	if len(links) == 0 {
		return nil
	}

	err = conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	if err != nil {
		return fmt.Errorf("write links: %w", err)
	}
	return nil
}

// applyOrder turns the requested sort into ORDER BY clauses. columns maps a
// property to a trusted SQL expression; properties outside it are rejected. id is always appended as a tiebreaker so
// pages stay stable.
func applyOrder(query *gorm.DB, orders []page.Order, columns map[string]string) (*gorm.DB, error) {
	sortedByID := false
	for _, order := range orders {
		column, ok := columns[order.Property]
		if !ok {
			return nil, fmt.Errorf("%w: %s", page.ErrUnknownProperty, order.Property)
		}

		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: column, Raw: true},
			Desc:   order.Direction == page.Desc,
		})
		if column == "id" {
			sortedByID = true
		}
	}

	if !sortedByID {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	return query, nil
}
