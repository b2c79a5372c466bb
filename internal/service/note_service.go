package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"noteshare-server/internal/domain"
	"noteshare-server/internal/policy"
	"noteshare-server/internal/repository"
	"noteshare-server/internal/websocket"

	"github.com/google/uuid"
)

// EventBroadcaster pushes a message to every listed user's open websocket
// connections, skipping the acting user. Delivery is best-effort.
type EventBroadcaster interface {
	BroadcastToUsers(userIDs []string, excludeUserID string, message *websocket.Message)
}

type NoteService struct {
	noteRepo    repository.NoteRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	events      EventBroadcaster
}

func NewNoteService(
	noteRepo repository.NoteRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	events EventBroadcaster,
) *NoteService {
	return &NoteService{
		noteRepo:    noteRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		events:      events,
	}
}

// List returns the caller's three note collections. The collections are not
// deduplicated across each other: a public note of the caller shows up under
// both personal and public.
func (s *NoteService) List(userID string) (*domain.NoteListResponse, error) {
	personal, err := s.noteRepo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}

	shared, err := s.noteRepo.ListSharedWith(userID)
	if err != nil {
		return nil, err
	}

	public, err := s.noteRepo.ListPublic()
	if err != nil {
		return nil, err
	}

	resp := &domain.NoteListResponse{
		PersonalNotes: personal,
		SharedNotes:   shared,
		PublicNotes:   public,
	}
	if resp.PersonalNotes == nil {
		resp.PersonalNotes = []*domain.Note{}
	}
	if resp.SharedNotes == nil {
		resp.SharedNotes = []*domain.Note{}
	}
	if resp.PublicNotes == nil {
		resp.PublicNotes = []*domain.Note{}
	}

	return resp, nil
}

func (s *NoteService) Create(userID string, req *domain.CreateNoteRequest) (*domain.Note, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	now := time.Now()

	note := &domain.Note{
		ID:            uuid.New().String(),
		UserID:        userID,
		Title:         req.Title,
		Content:       req.Content,
		IsPublic:      req.IsPublic,
		SharedUserIDs: []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
		EditedAt:      nil,
	}

	if err := s.noteRepo.Create(note); err != nil {
		return nil, err
	}

	return note, nil
}

// Get returns the note with its owner, comments (each with author) and the
// users it is shared with.
func (s *NoteService) Get(userID, noteID string) (*domain.NoteDetailResponse, error) {
	note, err := s.findNote(noteID)
	if err != nil {
		return nil, err
	}

	if !policy.CanViewNote(userID, note) {
		return nil, ErrUnauthorized
	}

	owner, err := s.userRepo.FindByID(note.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if owner != nil {
		owner.Password = ""
	}

	comments, err := s.commentRepo.ListByNote(note.ID)
	if err != nil {
		return nil, err
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})

	details := make([]*domain.CommentDetail, 0, len(comments))
	for _, c := range comments {
		author, err := s.userRepo.FindByID(c.UserID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if author != nil {
			author.Password = ""
		}
		details = append(details, &domain.CommentDetail{Comment: *c, User: author})
	}

	sharedUsers, err := s.userRepo.FindByIDs(note.SharedUserIDs)
	if err != nil {
		return nil, err
	}
	for _, u := range sharedUsers {
		u.Password = ""
	}

	return &domain.NoteDetailResponse{
		Note:        *note,
		User:        owner,
		Comments:    details,
		SharedUsers: sharedUsers,
	}, nil
}

// Update applies the supplied fields and stamps edited_at on every
// successful call, even when only is_public changed.
func (s *NoteService) Update(userID, noteID string, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	note, err := s.findNote(noteID)
	if err != nil {
		return nil, err
	}

	if !policy.CanUpdateNote(userID, note) {
		return nil, ErrUnauthorized
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrValidation)
		}
		note.Title = *req.Title
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, fmt.Errorf("%w: content is required", ErrValidation)
		}
		note.Content = *req.Content
	}
	if req.IsPublic != nil {
		note.IsPublic = *req.IsPublic
	}

	now := time.Now()
	note.UpdatedAt = now
	note.EditedAt = &now

	if err := s.noteRepo.Update(note); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.broadcastNoteEvent(websocket.TypeNoteUpdated, userID, note, note.SharedUserIDs)

	return note, nil
}

// Delete removes the note and cascades to its comments. Share grants live in
// the note doc and disappear with it.
func (s *NoteService) Delete(userID, noteID string) error {
	note, err := s.findNote(noteID)
	if err != nil {
		return err
	}

	if !policy.CanDeleteNote(userID, note) {
		return ErrUnauthorized
	}

	// Comments go first so a failed cascade never leaves orphans behind a
	// missing note.
	if err := s.commentRepo.DeleteByNote(note.ID); err != nil {
		return err
	}

	if err := s.noteRepo.Delete(note.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.broadcastNoteEvent(websocket.TypeNoteDeleted, userID, note, note.SharedUserIDs)

	return nil
}

// Share grants the target user view access. Sharing an already-shared pair
// or sharing a note with its own owner is a no-op.
func (s *NoteService) Share(userID, noteID, targetUserID string) error {
	note, err := s.findNote(noteID)
	if err != nil {
		return err
	}

	if !policy.CanShareNote(userID, note) {
		return ErrUnauthorized
	}

	if _, err := s.userRepo.FindByID(targetUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: target user", ErrNotFound)
		}
		return err
	}

	if targetUserID == note.UserID || note.IsSharedWith(targetUserID) {
		return nil
	}

	note.SharedUserIDs = append(note.SharedUserIDs, targetUserID)

	if err := s.noteRepo.Update(note); err != nil {
		return err
	}

	s.broadcastNoteEvent(websocket.TypeNoteShared, userID, note, []string{targetUserID})

	return nil
}

// Unshare revokes the target user's grant. Unsharing a non-member is a no-op.
func (s *NoteService) Unshare(userID, noteID, targetUserID string) error {
	note, err := s.findNote(noteID)
	if err != nil {
		return err
	}

	if !policy.CanShareNote(userID, note) {
		return ErrUnauthorized
	}

	if _, err := s.userRepo.FindByID(targetUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: target user", ErrNotFound)
		}
		return err
	}

	if !note.IsSharedWith(targetUserID) {
		return nil
	}

	remaining := make([]string, 0, len(note.SharedUserIDs)-1)
	for _, id := range note.SharedUserIDs {
		if id != targetUserID {
			remaining = append(remaining, id)
		}
	}
	note.SharedUserIDs = remaining

	if err := s.noteRepo.Update(note); err != nil {
		return err
	}

	s.broadcastNoteEvent(websocket.TypeNoteUnshared, userID, note, []string{targetUserID})

	return nil
}

func (s *NoteService) findNote(noteID string) (*domain.Note, error) {
	note, err := s.noteRepo.FindByID(noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return note, nil
}

func (s *NoteService) broadcastNoteEvent(msgType websocket.MessageType, actorID string, note *domain.Note, recipients []string) {
	if s.events == nil {
		return
	}

	msg, err := websocket.NewMessage(msgType, &websocket.NoteEventPayload{
		NoteID:  note.ID,
		Title:   note.Title,
		ActorID: actorID,
	})
	if err != nil {
		return
	}

	s.events.BroadcastToUsers(recipients, actorID, msg)
}
