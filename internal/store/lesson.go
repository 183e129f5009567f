// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"lessonpress/internal/models"
)

// LessonStore handles all lesson-related database operations.
type LessonStore struct {
	db *sql.DB
}

// NewLessonStore creates a new LessonStore with the given database connection.
func NewLessonStore(db *sql.DB) *LessonStore {
	return &LessonStore{db: db}
}

const lessonColumns = `id, title, slug, description, created_at, updated_at`

func scanLesson(s scanner) (*models.Lesson, error) {
	var l models.Lesson
	if err := s.Scan(&l.ID, &l.Title, &l.Slug, &l.Description, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns lessons ordered by most recently updated first.
func (s *LessonStore) List(limit, offset int) ([]models.Lesson, error) {
	rows, err := s.db.Query(`
		SELECT `+lessonColumns+`
		FROM lessons
		ORDER BY updated_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	lessons := []models.Lesson{}
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, *l)
	}
	return lessons, rows.Err()
}

// FindByID retrieves a lesson by its UUID.
func (s *LessonStore) FindByID(id uuid.UUID) (*models.Lesson, error) {
	return s.findOne(`SELECT `+lessonColumns+` FROM lessons WHERE id = $1`, id)
}

// FindBySlug retrieves a lesson by its unique slug.
func (s *LessonStore) FindBySlug(slug string) (*models.Lesson, error) {
	return s.findOne(`SELECT `+lessonColumns+` FROM lessons WHERE slug = $1`, slug)
}

func (s *LessonStore) findOne(query string, arg any) (*models.Lesson, error) {
	l, err := scanLesson(s.db.QueryRow(query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lesson: %w", err)
	}
	return l, nil
}

// Create inserts a new lesson and fills in the generated ID and timestamps.
func (s *LessonStore) Create(l *models.Lesson) (*models.Lesson, error) {
	err := s.db.QueryRow(`
		INSERT INTO lessons (title, slug, description)
		VALUES ($1, $2, $3)
		RETURNING `+lessonColumns,
		l.Title, l.Slug, l.Description,
	).Scan(&l.ID, &l.Title, &l.Slug, &l.Description, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	return l, nil
}

// Update saves the title, slug and description of an existing lesson.
func (s *LessonStore) Update(l *models.Lesson) (*models.Lesson, error) {
	updated, err := scanLesson(s.db.QueryRow(`
		UPDATE lessons
		SET title = $1, slug = $2, description = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+lessonColumns,
		l.Title, l.Slug, l.Description, l.ID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}
	return updated, nil
}

// Delete removes a lesson. Its blocks are removed by the foreign key cascade.
func (s *LessonStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SlugExists reports whether a lesson other than excludeID already uses slug.
// Pass uuid.Nil to check against every lesson.
func (s *LessonStore) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM lessons WHERE slug = $1 AND id <> $2)`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check lesson slug: %w", err)
	}
	return exists, nil
}
