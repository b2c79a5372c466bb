package domain

import "time"

type Note struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPublic bool   `json:"is_public"`

	// Users granted view access while the note is private. The owner is
	// never a member; ownership already implies visibility.
	SharedUserIDs []string `json:"shared_user_ids"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	EditedAt  *time.Time `json:"edited_at"`
}

func (n *Note) IsSharedWith(userID string) bool {
	for _, id := range n.SharedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (n *Note) WasEdited() bool {
	return n.EditedAt != nil
}

type CreateNoteRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	IsPublic bool   `json:"is_public"`
}

type UpdateNoteRequest struct {
	Title    *string `json:"title" validate:"omitnil,min=1"`
	Content  *string `json:"content" validate:"omitnil,min=1"`
	IsPublic *bool   `json:"is_public"`
}

type ShareRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// NoteListResponse groups the three collections of the notes index. A public
// note owned by the caller appears in both personal and public, matching the
// product's overlapping views.
type NoteListResponse struct {
	PersonalNotes []*Note `json:"personal_notes"`
	SharedNotes   []*Note `json:"shared_notes"`
	PublicNotes   []*Note `json:"public_notes"`
}

type NoteDetailResponse struct {
	Note
	User        *User            `json:"user"`
	Comments    []*CommentDetail `json:"comments"`
	SharedUsers []*User          `json:"shared_users"`
}
