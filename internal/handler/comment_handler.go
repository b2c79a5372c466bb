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

type CommentHandler struct {
	service  *service.CommentService
	validate *validator.Validate
}

func NewCommentHandler(service *service.CommentService) *CommentHandler {
	return &CommentHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	if noteID == "" {
		response.BadRequest(w, "Note ID is required")
		return
	}

	var req domain.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	userID := middleware.GetUserID(r)

	comment, err := h.service.Add(userID, noteID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, comment)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["id"]
	if commentID == "" {
		response.BadRequest(w, "Comment ID is required")
		return
	}

	userID := middleware.GetUserID(r)

	if err := h.service.Delete(userID, commentID); err != nil {
		writeServiceError(w, err)
		return
	}

	response.NoContent(w)
}
