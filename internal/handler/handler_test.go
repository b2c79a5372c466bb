package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"noteshare-server/internal/domain"
	"noteshare-server/internal/middleware"
	"noteshare-server/internal/repository"
	"noteshare-server/internal/service"
	"noteshare-server/pkg/jwt"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type memUserRepo struct {
	users map[string]*domain.User
}

func (m *memUserRepo) Create(user *domain.User) error {
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUserRepo) FindByID(id string) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) FindByIDs(ids []string) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, err := m.FindByID(id); err == nil {
			users = append(users, u)
		}
	}
	return users, nil
}

func (m *memUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) EmailExists(email string) (bool, error) {
	_, err := m.FindByEmail(email)
	return err == nil, nil
}

type memNoteRepo struct {
	notes map[string]*domain.Note
}

func (m *memNoteRepo) Create(note *domain.Note) error {
	copied := *note
	m.notes[note.ID] = &copied
	return nil
}

func (m *memNoteRepo) FindByID(id string) (*domain.Note, error) {
	if n, ok := m.notes[id]; ok {
		copied := *n
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memNoteRepo) ListByOwner(userID string) ([]*domain.Note, error) {
	var notes []*domain.Note
	for _, n := range m.notes {
		if n.UserID == userID {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

func (m *memNoteRepo) ListSharedWith(userID string) ([]*domain.Note, error) {
	var notes []*domain.Note
	for _, n := range m.notes {
		if n.IsSharedWith(userID) {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

func (m *memNoteRepo) ListPublic() ([]*domain.Note, error) {
	var notes []*domain.Note
	for _, n := range m.notes {
		if n.IsPublic {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

func (m *memNoteRepo) Update(note *domain.Note) error {
	if _, ok := m.notes[note.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *note
	m.notes[note.ID] = &copied
	return nil
}

func (m *memNoteRepo) Delete(id string) error {
	if _, ok := m.notes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.notes, id)
	return nil
}

type memCommentRepo struct {
	comments map[string]*domain.Comment
}

func (m *memCommentRepo) Create(comment *domain.Comment) error {
	copied := *comment
	m.comments[comment.ID] = &copied
	return nil
}

func (m *memCommentRepo) FindByID(id string) (*domain.Comment, error) {
	if c, ok := m.comments[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memCommentRepo) ListByNote(noteID string) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	for _, c := range m.comments {
		if c.NoteID == noteID {
			copied := *c
			comments = append(comments, &copied)
		}
	}
	return comments, nil
}

func (m *memCommentRepo) Delete(id string) error {
	if _, ok := m.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *memCommentRepo) DeleteByNote(noteID string) error {
	for id, c := range m.comments {
		if c.NoteID == noteID {
			delete(m.comments, id)
		}
	}
	return nil
}

type testAPI struct {
	router   *mux.Router
	users    *memUserRepo
	notes    *memNoteRepo
	comments *memCommentRepo
}

// newTestAPI wires the real handlers and services over in-memory
// repositories, with the same routes and middleware as the server.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	users := &memUserRepo{users: make(map[string]*domain.User)}
	notes := &memNoteRepo{notes: make(map[string]*domain.Note)}
	comments := &memCommentRepo{comments: make(map[string]*domain.Comment)}

	authService := service.NewAuthService(users, testSecret, time.Hour)
	userService := service.NewUserService(users)
	noteService := service.NewNoteService(notes, comments, users, nil)
	commentService := service.NewCommentService(comments, notes, users, nil)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	noteHandler := NewNoteHandler(noteService)
	commentHandler := NewCommentHandler(commentService)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/login", authHandler.Login).Methods("POST")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(testSecret))

	protected.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	protected.HandleFunc("/me", userHandler.GetMe).Methods("GET")
	protected.HandleFunc("/notes", noteHandler.List).Methods("GET")
	protected.HandleFunc("/notes", noteHandler.Create).Methods("POST")
	protected.HandleFunc("/notes/{id}", noteHandler.Get).Methods("GET")
	protected.HandleFunc("/notes/{id}", noteHandler.Update).Methods("PUT")
	protected.HandleFunc("/notes/{id}", noteHandler.Delete).Methods("DELETE")
	protected.HandleFunc("/notes/{id}/share", noteHandler.Share).Methods("POST")
	protected.HandleFunc("/notes/{id}/unshare", noteHandler.Unshare).Methods("POST")
	protected.HandleFunc("/notes/{id}/comments", commentHandler.Create).Methods("POST")
	protected.HandleFunc("/comments/{id}", commentHandler.Delete).Methods("DELETE")

	return &testAPI{router: r, users: users, notes: notes, comments: comments}
}

// seedUser creates a user directly and returns a valid token for them.
func (a *testAPI) seedUser(t *testing.T, name string) (string, string) {
	t.Helper()

	id := uuid.New().String()
	err := a.users.Create(&domain.User{
		ID:       id,
		Name:     name,
		Email:    name + "@example.com",
		Password: "not-a-real-hash",
	})
	require.NoError(t, err)

	token, err := jwt.GenerateToken(id, time.Hour, testSecret)
	require.NoError(t, err)

	return id, token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the "data" field of the response envelope into v.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, v))
}
