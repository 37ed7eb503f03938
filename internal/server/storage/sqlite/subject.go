package sqlite

import (
	"context"
	"fmt"

	"github.com/maktab-uz/maktab/internal/models"
	"github.com/maktab-uz/maktab/internal/server/storage"
)

// CreateSubject creates a new subject
func (s *Storage) CreateSubject(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (id, name_ru, name_uz, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		subject.ID,
		subject.NameRu,
		subject.NameUz,
		subject.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert subject: %w", err)
	}

	return nil
}

// ListSubjects returns all subjects, newest first
func (s *Storage) ListSubjects(ctx context.Context) ([]*models.Subject, error) {
	query := `
		SELECT id, name_ru, name_uz, created_at
		FROM subjects
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject := &models.Subject{}
		if err := rows.Scan(&subject.ID, &subject.NameRu, &subject.NameUz, &subject.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subjects: %w", err)
	}

	return subjects, nil
}

// UpdateSubject updates subject names
func (s *Storage) UpdateSubject(ctx context.Context, subject *models.Subject) error {
	query := `UPDATE subjects SET name_ru = ?, name_uz = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, subject.NameRu, subject.NameUz, subject.ID)
	if err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrSubjectNotFound
	}

	return nil
}

// DeleteSubject deletes subject by ID
func (s *Storage) DeleteSubject(ctx context.Context, subjectID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, subjectID)
	if err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrSubjectNotFound
	}

	return nil
}
