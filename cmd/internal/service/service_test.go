package service

import (
	"context"
	"testing"

	"tagnotes/cmd/internal/contract"
	"tagnotes/cmd/internal/domain/page"
	"tagnotes/cmd/internal/domain/sqlite"
	"tagnotes/cmd/internal/domain/sqlite/repository"
	"tagnotes/cmd/internal/domain/sqlite/sqlitetest"
	"tagnotes/cmd/internal/utils/apierror"
	"tagnotes/cmd/internal/utils/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T {
	return &v
}

type fixture struct {
	db    *gorm.DB
	notes *DefaultNoteService
	tags  *DefaultTagService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := sqlitetest.Open(t)
	tx := sqlite.NewTransactor(db)
	validate := validators.New()
	noteRepo := repository.NewNoteRepository(db)
	tagRepo := repository.NewTagRepository(db)

	return &fixture{
		db:    db,
		notes: NewNoteService(noteRepo, tagRepo, tx, validate, page.MaxSize),
		tags:  NewTagService(tagRepo, tx, validate, page.MaxSize),
	}
}

func (f *fixture) createTag(t *testing.T, name string) int64 {
	t.Helper()

	tag, apierr := f.tags.CreateTag(context.Background(), &contract.TagDTO{Name: ptr(name)})
	require.Nil(t, apierr)
	require.NotNil(t, tag.ID)
	return *tag.ID
}

func tagRefs(ids ...int64) []*contract.TagRef {
	refs := make([]*contract.TagRef, len(ids))
	for i, id := range ids {
		refs[i] = &contract.TagRef{ID: id}
	}
	return refs
}

func refIDs(refs []*contract.TagRef) []int64 {
	ids := make([]int64, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
	}
	return ids
}

func requireStatus(t *testing.T, apierr apierror.ErrorResponse, status int) {
	t.Helper()

	require.NotNil(t, apierr)
	assert.Equal(t, status, apierr.Code())
}
