package storage

import (
	"context"

	"github.com/maktab-uz/maktab/internal/models"
)

// ClassStorage defines interface for class persistence
type ClassStorage interface {
	// CreateClass creates a new class
	CreateClass(ctx context.Context, class *models.Class) error

	// ListClasses returns all classes, newest first
	ListClasses(ctx context.Context) ([]*models.Class, error)

	// DeleteClass deletes class by ID
	// Returns ErrClassNotFound if class doesn't exist
	DeleteClass(ctx context.Context, classID string) error
}

// SubjectStorage defines interface for subject persistence
type SubjectStorage interface {
	// CreateSubject creates a new subject
	CreateSubject(ctx context.Context, subject *models.Subject) error

	// ListSubjects returns all subjects, newest first
	ListSubjects(ctx context.Context) ([]*models.Subject, error)

	// UpdateSubject updates subject names
	// Returns ErrSubjectNotFound if subject doesn't exist
	UpdateSubject(ctx context.Context, subject *models.Subject) error

	// DeleteSubject deletes subject by ID
	// Returns ErrSubjectNotFound if subject doesn't exist
	DeleteSubject(ctx context.Context, subjectID string) error
}
