// Package policy holds the authorization predicates for notes and comments.
// Predicates are pure functions over freshly loaded state; callers must not
// cache the note between the check and the mutation.
package policy

import "noteshare-server/internal/domain"

// CanViewNote reports whether the user may read the note: owners, any user
// when the note is public, and users the note was shared with.
func CanViewNote(userID string, note *domain.Note) bool {
	return note.UserID == userID || note.IsPublic || note.IsSharedWith(userID)
}

func CanUpdateNote(userID string, note *domain.Note) bool {
	return note.UserID == userID
}

func CanDeleteNote(userID string, note *domain.Note) bool {
	return note.UserID == userID
}

// CanShareNote governs both sharing and unsharing.
func CanShareNote(userID string, note *domain.Note) bool {
	return note.UserID == userID
}

// CanDeleteComment is author-only. Owning the parent note grants no
// moderation right over other users' comments.
func CanDeleteComment(userID string, comment *domain.Comment) bool {
	return comment.UserID == userID
}
