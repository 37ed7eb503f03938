package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/maktab-uz/maktab/internal/models"
	"github.com/maktab-uz/maktab/internal/server/storage"
)

// CreateClass creates a new class
func (s *Storage) CreateClass(ctx context.Context, class *models.Class) error {
	query := `
		INSERT INTO classes (id, grade, name, teacher_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		class.ID,
		class.Grade,
		class.Name,
		class.TeacherID,
		class.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert class: %w", err)
	}

	return nil
}

// ListClasses returns all classes, newest first
func (s *Storage) ListClasses(ctx context.Context) ([]*models.Class, error) {
	query := `
		SELECT id, grade, name, teacher_id, created_at
		FROM classes
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query classes: %w", err)
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		class := &models.Class{}
		var teacherID sql.NullString

		if err := rows.Scan(&class.ID, &class.Grade, &class.Name, &teacherID, &class.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}

		if teacherID.Valid {
			class.TeacherID = &teacherID.String
		}

		classes = append(classes, class)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate classes: %w", err)
	}

	return classes, nil
}

// DeleteClass deletes class by ID
func (s *Storage) DeleteClass(ctx context.Context, classID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM classes WHERE id = ?`, classID)
	if err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrClassNotFound
	}

	return nil
}
