package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"noteshare-server/internal/domain"
	"noteshare-server/internal/policy"
	"noteshare-server/internal/repository"
	"noteshare-server/internal/websocket"

	"github.com/google/uuid"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	noteRepo    repository.NoteRepository
	userRepo    repository.UserRepository
	events      EventBroadcaster
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	noteRepo repository.NoteRepository,
	userRepo repository.UserRepository,
	events EventBroadcaster,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		noteRepo:    noteRepo,
		userRepo:    userRepo,
		events:      events,
	}
}

// Add creates a comment on a note the caller can currently view. Access is
// checked once, here; a later unshare does not remove existing comments.
func (s *CommentService) Add(userID, noteID string, req *domain.CreateCommentRequest) (*domain.CommentDetail, error) {
	note, err := s.noteRepo.FindByID(noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !policy.CanViewNote(userID, note) {
		return nil, ErrUnauthorized
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	comment := &domain.Comment{
		ID:        uuid.New().String(),
		NoteID:    note.ID,
		UserID:    userID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	author, err := s.userRepo.FindByID(userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if author != nil {
		author.Password = ""
	}

	s.broadcastCommentEvent(userID, note, comment)

	return &domain.CommentDetail{Comment: *comment, User: author}, nil
}

func (s *CommentService) Delete(userID, commentID string) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !policy.CanDeleteComment(userID, comment) {
		return ErrUnauthorized
	}

	if err := s.commentRepo.Delete(comment.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

func (s *CommentService) broadcastCommentEvent(actorID string, note *domain.Note, comment *domain.Comment) {
	if s.events == nil {
		return
	}

	msg, err := websocket.NewMessage(websocket.TypeCommentAdded, &websocket.CommentEventPayload{
		NoteID:    note.ID,
		CommentID: comment.ID,
		ActorID:   actorID,
		Content:   comment.Content,
	})
	if err != nil {
		return
	}

	// Owner plus shared users hear about new comments; the author does not.
	recipients := append([]string{note.UserID}, note.SharedUserIDs...)
	s.events.BroadcastToUsers(recipients, actorID, msg)
}
