// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"lessonpress/internal/models"
)

// BlockStore persists lesson blocks. The position column backs Block.Order.
type BlockStore struct {
	db *sql.DB
}

// NewBlockStore creates a new BlockStore with the given database connection.
func NewBlockStore(db *sql.DB) *BlockStore {
	return &BlockStore{db: db}
}

const blockColumns = `id, lesson_id, type, template_id, content, html, metadata,
	position, created_at, updated_at`

func scanBlock(s scanner) (*models.Block, error) {
	var (
		b        models.Block
		content  []byte
		metadata []byte
	)
	err := s.Scan(
		&b.ID, &b.LessonID, &b.Type, &b.TemplateID, &content, &b.HTML, &metadata,
		&b.Order, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Content = json.RawMessage(content)
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &b.Metadata); err != nil {
			return nil, fmt.Errorf("decode block metadata: %w", err)
		}
	}
	return &b, nil
}

// encodeBlock returns the JSONB parameters for content and metadata.
func encodeBlock(b *models.Block) (content, metadata string, err error) {
	content = "{}"
	if len(b.Content) > 0 {
		content = string(b.Content)
	}
	metadata = "{}"
	if len(b.Metadata) > 0 {
		raw, err := json.Marshal(b.Metadata)
		if err != nil {
			return "", "", fmt.Errorf("encode block metadata: %w", err)
		}
		metadata = string(raw)
	}
	return content, metadata, nil
}

// ListByLesson returns the blocks of a lesson in display order.
func (s *BlockStore) ListByLesson(lessonID uuid.UUID) ([]models.Block, error) {
	rows, err := s.db.Query(`
		SELECT `+blockColumns+`
		FROM blocks
		WHERE lesson_id = $1
		ORDER BY position, created_at
	`, lessonID)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	defer rows.Close()

	blocks := []models.Block{}
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		blocks = append(blocks, *b)
	}
	return blocks, rows.Err()
}

// FindByID retrieves a block of the given lesson.
func (s *BlockStore) FindByID(lessonID uuid.UUID, id string) (*models.Block, error) {
	b, err := scanBlock(s.db.QueryRow(
		`SELECT `+blockColumns+` FROM blocks WHERE id = $1 AND lesson_id = $2`, id, lessonID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find block: %w", err)
	}
	return b, nil
}

// Create inserts a block. The block ID is generated by the caller.
func (s *BlockStore) Create(b *models.Block) (*models.Block, error) {
	content, metadata, err := encodeBlock(b)
	if err != nil {
		return nil, err
	}
	created, err := scanBlock(s.db.QueryRow(`
		INSERT INTO blocks (id, lesson_id, type, template_id, content, html, metadata, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+blockColumns,
		b.ID, b.LessonID, string(b.Type), b.TemplateID, content, b.HTML, metadata, b.Order,
	))
	if err != nil {
		return nil, fmt.Errorf("create block: %w", err)
	}
	return created, nil
}

// Update saves the template, content, derived HTML and metadata of a block.
func (s *BlockStore) Update(b *models.Block) (*models.Block, error) {
	content, metadata, err := encodeBlock(b)
	if err != nil {
		return nil, err
	}
	updated, err := scanBlock(s.db.QueryRow(`
		UPDATE blocks
		SET template_id = $1, content = $2, html = $3, metadata = $4, updated_at = NOW()
		WHERE id = $5 AND lesson_id = $6
		RETURNING `+blockColumns,
		b.TemplateID, content, b.HTML, metadata, b.ID, b.LessonID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update block: %w", err)
	}
	return updated, nil
}

// Delete removes a block from a lesson.
func (s *BlockStore) Delete(lessonID uuid.UUID, id string) error {
	res, err := s.db.Exec(`DELETE FROM blocks WHERE id = $1 AND lesson_id = $2`, id, lessonID)
	if err != nil {
		return fmt.Errorf("delete block: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// NextPosition returns the position after the last block of a lesson.
func (s *BlockStore) NextPosition(lessonID uuid.UUID) (int, error) {
	var next int
	err := s.db.QueryRow(
		`SELECT COALESCE(MAX(position) + 1, 0) FROM blocks WHERE lesson_id = $1`, lessonID,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next block position: %w", err)
	}
	return next, nil
}

// Reorder moves the listed blocks to the front in the given order. Blocks
// left out keep their relative order after them, so positions stay dense
// and unique. An id that is not in the lesson aborts the whole reorder.
func (s *BlockStore) Reorder(lessonID uuid.UUID, ids []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("reorder begin: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		SELECT id FROM blocks WHERE lesson_id = $1
		ORDER BY position, created_at
		FOR UPDATE`, lessonID)
	if err != nil {
		return fmt.Errorf("reorder list: %w", err)
	}
	var current []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("reorder scan: %w", err)
		}
		current = append(current, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reorder list: %w", err)
	}

	order, err := mergeOrder(current, ids)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		UPDATE blocks SET position = $1, updated_at = NOW()
		WHERE id = $2 AND lesson_id = $3`)
	if err != nil {
		return fmt.Errorf("reorder prepare: %w", err)
	}
	defer stmt.Close()

	for i, id := range order {
		if _, err := stmt.Exec(i, id, lessonID); err != nil {
			return fmt.Errorf("reorder block %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// mergeOrder puts the requested ids first, then the rest of current in
// their existing order. Duplicates in requested are ignored.
func mergeOrder(current, requested []string) ([]string, error) {
	known := make(map[string]bool, len(current))
	for _, id := range current {
		known[id] = true
	}

	order := make([]string, 0, len(current))
	placed := make(map[string]bool, len(current))
	for _, id := range requested {
		if !known[id] {
			return nil, fmt.Errorf("reorder block %s: %w", id, ErrNotFound)
		}
		if !placed[id] {
			placed[id] = true
			order = append(order, id)
		}
	}
	for _, id := range current {
		if !placed[id] {
			order = append(order, id)
		}
	}
	return order, nil
}
