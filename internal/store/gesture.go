package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/pose"
)

// ErrNotFound is returned when a requested gesture does not exist.
var ErrNotFound = errors.New("not found")

// Gesture is a trained gesture row.
type Gesture struct {
	ID        string
	Name      string
	Signature pose.Signature
	Position  int
	CreatedAt time.Time
}

// GestureRepository provides CRUD operations for gestures.
type GestureRepository struct {
	db *sql.DB
}

// Gestures returns the gesture repository for this store.
func (s *Store) Gestures() *GestureRepository {
	return &GestureRepository{db: s.db}
}

// Create inserts a gesture after every existing one. ID is generated when empty.
func (r *GestureRepository) Create(g *Gesture) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	g.CreatedAt = time.Now()

	err := r.db.QueryRow(`SELECT COALESCE(MAX(position) + 1, 0) FROM gestures`).Scan(&g.Position)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		`INSERT INTO gestures (id, name, signature, position, created_at) VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.Signature.String(), g.Position, g.CreatedAt,
	)
	return err
}

// GetByName retrieves a gesture by its name.
func (r *GestureRepository) GetByName(name string) (*Gesture, error) {
	row := r.db.QueryRow(
		`SELECT id, name, signature, position, created_at FROM gestures WHERE name = ?`,
		name,
	)
	g, err := scanGesture(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return g, err
}

// List retrieves all gestures in training order.
func (r *GestureRepository) List() ([]*Gesture, error) {
	rows, err := r.db.Query(
		`SELECT id, name, signature, position, created_at FROM gestures ORDER BY position`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gestures []*Gesture
	for rows.Next() {
		g, err := scanGesture(rows)
		if err != nil {
			return nil, err
		}
		gestures = append(gestures, g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return gestures, nil
}

// Delete removes a gesture by name.
func (r *GestureRepository) Delete(name string) error {
	result, err := r.db.Exec(`DELETE FROM gestures WHERE name = ?`, name)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Replace swaps the stored set for gestures in one transaction, keeping
// their order.
func (r *GestureRepository) Replace(gestures []Gesture) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM gestures`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO gestures (id, name, signature, position, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for i, g := range gestures {
		id := g.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := stmt.Exec(id, g.Name, g.Signature.String(), i, now); err != nil {
			return fmt.Errorf("insert %q: %w", g.Name, err)
		}
	}

	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGesture(s scanner) (*Gesture, error) {
	g := &Gesture{}
	var signature string

	if err := s.Scan(&g.ID, &g.Name, &signature, &g.Position, &g.CreatedAt); err != nil {
		return nil, err
	}

	sig, err := pose.ParseSignature(signature)
	if err != nil {
		return nil, fmt.Errorf("gesture %q: %w", g.Name, err)
	}
	g.Signature = sig
	return g, nil
}
