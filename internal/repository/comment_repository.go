package repository

import (
	"context"
	"fmt"
	"net/http"

	"noteshare-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type CommentRepository interface {
	Create(comment *domain.Comment) error
	FindByID(id string) (*domain.Comment, error)
	ListByNote(noteID string) ([]*domain.Comment, error)
	Delete(id string) error
	DeleteByNote(noteID string) error
}

type commentRepository struct {
	client *kivik.Client
	dbName string
}

func NewCommentRepository(client *kivik.Client, dbName string) CommentRepository {
	return &commentRepository{
		client: client,
		dbName: dbName,
	}
}

func (r *commentRepository) Create(comment *domain.Comment) error {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("comment:%s", comment.ID)
	_, err := db.Put(context.Background(), docID, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *commentRepository) FindByID(id string) (*domain.Comment, error) {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("comment:%s", id)
	row := db.Get(context.Background(), docID)

	var comment domain.Comment
	if err := row.ScanDoc(&comment); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	return &comment, nil
}

func (r *commentRepository) ListByNote(noteID string) ([]*domain.Comment, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"note_id": noteID,
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.ScanDoc(&comment); err != nil {
			continue
		}
		comments = append(comments, &comment)
	}

	return comments, nil
}

func (r *commentRepository) Delete(id string) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("comment:%s", id)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch comment for delete: %w", err)
	}

	rev, _ := existingDoc["_rev"].(string)
	if _, err := db.Delete(context.Background(), docID, rev); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

// DeleteByNote removes every comment of a note. Used by the note delete
// cascade before the note doc itself goes away.
func (r *commentRepository) DeleteByNote(noteID string) error {
	comments, err := r.ListByNote(noteID)
	if err != nil {
		return err
	}

	for _, comment := range comments {
		if err := r.Delete(comment.ID); err != nil {
			return err
		}
	}

	return nil
}
