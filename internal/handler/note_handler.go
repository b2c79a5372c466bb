package handler

import (
	"encoding/json"
	"net/http"

	"noteshare-server/internal/domain"
	"noteshare-server/internal/middleware"
	"noteshare-server/internal/service"
	"noteshare-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type NoteHandler struct {
	service  *service.NoteService
	validate *validator.Validate
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	notes, err := h.service.List(userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, notes)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.Create(userID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, note)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	if noteID == "" {
		response.BadRequest(w, "Note ID is required")
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.Get(userID, noteID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	if noteID == "" {
		response.BadRequest(w, "Note ID is required")
		return
	}

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.Update(userID, noteID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	if noteID == "" {
		response.BadRequest(w, "Note ID is required")
		return
	}

	userID := middleware.GetUserID(r)

	if err := h.service.Delete(userID, noteID); err != nil {
		writeServiceError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *NoteHandler) Share(w http.ResponseWriter, r *http.Request) {
	h.shareOrUnshare(w, r, h.service.Share, "Note shared successfully")
}

func (h *NoteHandler) Unshare(w http.ResponseWriter, r *http.Request) {
	h.shareOrUnshare(w, r, h.service.Unshare, "Note unshared successfully")
}

func (h *NoteHandler) shareOrUnshare(
	w http.ResponseWriter,
	r *http.Request,
	op func(userID, noteID, targetUserID string) error,
	successMsg string,
) {
	noteID := mux.Vars(r)["id"]
	if noteID == "" {
		response.BadRequest(w, "Note ID is required")
		return
	}

	var req domain.ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	userID := middleware.GetUserID(r)

	if err := op(userID, noteID, req.UserID); err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": successMsg})
}
