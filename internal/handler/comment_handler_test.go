package handler

import (
	"net/http"
	"testing"

	"noteshare-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	api := newTestAPI(t)
	_, ownerToken := api.seedUser(t, "alice")
	bobID, bobToken := api.seedUser(t, "bob")

	public := createNote(t, api, ownerToken, "P", true)
	private := createNote(t, api, ownerToken, "Q", false)

	rec := api.do(t, "POST", "/api/notes/"+public.ID+"/comments", bobToken, map[string]string{"content": "nice"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var comment domain.CommentDetail
	decodeData(t, rec, &comment)
	assert.Equal(t, bobID, comment.UserID)
	require.NotNil(t, comment.User)
	assert.Equal(t, "bob", comment.User.Name)
	assert.Empty(t, comment.User.Password)

	// Commenting requires view access.
	rec = api.do(t, "POST", "/api/notes/"+private.ID+"/comments", bobToken, map[string]string{"content": "sneaky"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, "POST", "/api/notes/missing/comments", bobToken, map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, "POST", "/api/notes/"+public.ID+"/comments", bobToken, map[string]string{"content": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteComment(t *testing.T) {
	api := newTestAPI(t)
	_, ownerToken := api.seedUser(t, "alice")
	_, bobToken := api.seedUser(t, "bob")

	note := createNote(t, api, ownerToken, "P", true)

	rec := api.do(t, "POST", "/api/notes/"+note.ID+"/comments", bobToken, map[string]string{"content": "hi"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var comment domain.CommentDetail
	decodeData(t, rec, &comment)

	// Owning the note does not allow deleting someone else's comment.
	rec = api.do(t, "DELETE", "/api/comments/"+comment.ID, ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, "DELETE", "/api/comments/"+comment.ID, bobToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// The note survives its comment.
	rec = api.do(t, "GET", "/api/notes/"+note.ID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, "DELETE", "/api/comments/"+comment.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
