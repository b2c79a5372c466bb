package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"noteshare-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type NoteRepository interface {
	Create(note *domain.Note) error
	FindByID(id string) (*domain.Note, error)
	ListByOwner(userID string) ([]*domain.Note, error)
	ListSharedWith(userID string) ([]*domain.Note, error)
	ListPublic() ([]*domain.Note, error)
	Update(note *domain.Note) error
	Delete(id string) error
}

type noteRepository struct {
	client *kivik.Client
	dbName string
}

func NewNoteRepository(client *kivik.Client, dbName string) NoteRepository {
	return &noteRepository{
		client: client,
		dbName: dbName,
	}
}

func (r *noteRepository) Create(note *domain.Note) error {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("note:%s", note.ID)
	_, err := db.Put(context.Background(), docID, note)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

func (r *noteRepository) FindByID(id string) (*domain.Note, error) {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("note:%s", id)
	row := db.Get(context.Background(), docID)

	var note domain.Note
	if err := row.ScanDoc(&note); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return &note, nil
}

func (r *noteRepository) ListByOwner(userID string) ([]*domain.Note, error) {
	return r.find(map[string]interface{}{
		"user_id": userID,
		"title":   map[string]interface{}{"$exists": true},
	})
}

func (r *noteRepository) ListSharedWith(userID string) ([]*domain.Note, error) {
	return r.find(map[string]interface{}{
		"shared_user_ids": map[string]interface{}{
			"$elemMatch": map[string]interface{}{"$eq": userID},
		},
	})
}

func (r *noteRepository) ListPublic() ([]*domain.Note, error) {
	return r.find(map[string]interface{}{
		"is_public": true,
		"title":     map[string]interface{}{"$exists": true},
	})
}

func (r *noteRepository) find(selector map[string]interface{}) ([]*domain.Note, error) {
	db := r.client.DB(r.dbName)

	rows := db.Find(context.Background(), map[string]interface{}{
		"selector": selector,
	})
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.ScanDoc(&note); err != nil {
			continue
		}
		notes = append(notes, &note)
	}

	return notes, nil
}

func (r *noteRepository) Update(note *domain.Note) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("note:%s", note.ID)

	// Re-fetch so the Put carries the current _rev; a concurrent write or
	// delete makes the Put fail instead of silently resurrecting the doc.
	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch existing note for update: %w", err)
	}

	existingDoc["title"] = note.Title
	existingDoc["content"] = note.Content
	existingDoc["is_public"] = note.IsPublic
	existingDoc["shared_user_ids"] = note.SharedUserIDs
	existingDoc["updated_at"] = time.Now()

	if note.EditedAt != nil {
		existingDoc["edited_at"] = *note.EditedAt
	} else {
		existingDoc["edited_at"] = nil
	}

	_, err := db.Put(context.Background(), docID, existingDoc)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	return nil
}

func (r *noteRepository) Delete(id string) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("note:%s", id)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch note for delete: %w", err)
	}

	rev, _ := existingDoc["_rev"].(string)
	if _, err := db.Delete(context.Background(), docID, rev); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}
