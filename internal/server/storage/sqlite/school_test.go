package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maktab-uz/maktab/internal/models"
	"github.com/maktab-uz/maktab/internal/server/storage"
)

func TestCreateAndListClasses(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	teacherID := "t1"
	older := &models.Class{
		ID:        "c1",
		Grade:     5,
		Name:      "A",
		TeacherID: &teacherID,
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	newer := &models.Class{
		ID:        "c2",
		Grade:     7,
		Name:      "B",
		CreatedAt: time.Now().UTC(),
	}

	require.NoError(t, s.CreateClass(ctx, older))
	require.NoError(t, s.CreateClass(ctx, newer))

	classes, err := s.ListClasses(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 2)

	// Новые первыми
	assert.Equal(t, "c2", classes[0].ID)
	assert.Nil(t, classes[0].TeacherID)

	assert.Equal(t, "c1", classes[1].ID)
	require.NotNil(t, classes[1].TeacherID)
	assert.Equal(t, "t1", *classes[1].TeacherID)
}

func TestDeleteClass_Storage(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateClass(ctx, &models.Class{
		ID:        "c1",
		Grade:     5,
		Name:      "A",
		CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, s.DeleteClass(ctx, "c1"))

	classes, err := s.ListClasses(ctx)
	require.NoError(t, err)
	assert.Empty(t, classes)

	assert.ErrorIs(t, s.DeleteClass(ctx, "c1"), storage.ErrClassNotFound)
}

func TestCreateAndListSubjects(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	older := &models.Subject{
		ID:        "s1",
		NameRu:    "Математика",
		NameUz:    "Matematika",
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	newer := &models.Subject{
		ID:        "s2",
		NameRu:    "Физика",
		NameUz:    "Fizika",
		CreatedAt: time.Now().UTC(),
	}

	require.NoError(t, s.CreateSubject(ctx, older))
	require.NoError(t, s.CreateSubject(ctx, newer))

	subjects, err := s.ListSubjects(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "s2", subjects[0].ID)
	assert.Equal(t, "Физика", subjects[0].NameRu)
	assert.Equal(t, "Fizika", subjects[0].NameUz)
}

func TestUpdateSubject_Storage(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateSubject(ctx, &models.Subject{
		ID:        "s1",
		NameRu:    "Физика",
		NameUz:    "Fizika",
		CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, s.UpdateSubject(ctx, &models.Subject{
		ID:     "s1",
		NameRu: "Астрономия",
		NameUz: "Astronomiya",
	}))

	subjects, err := s.ListSubjects(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Астрономия", subjects[0].NameRu)
	assert.Equal(t, "Astronomiya", subjects[0].NameUz)
}

func TestUpdateSubject_NotFound(t *testing.T) {
	s := newTestStorage(t)

	err := s.UpdateSubject(context.Background(), &models.Subject{
		ID:     "missing",
		NameRu: "Химия",
		NameUz: "Kimyo",
	})
	assert.ErrorIs(t, err, storage.ErrSubjectNotFound)
}

func TestDeleteSubject_Storage(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateSubject(ctx, &models.Subject{
		ID:        "s1",
		NameRu:    "Физика",
		NameUz:    "Fizika",
		CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, s.DeleteSubject(ctx, "s1"))
	assert.ErrorIs(t, s.DeleteSubject(ctx, "s1"), storage.ErrSubjectNotFound)
}
