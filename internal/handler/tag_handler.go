package handler

import (
	"net/http"

	"noteful-server/internal/domain"
	"noteful-server/internal/service"
	"noteful-server/pkg/response"
)

type TagHandler struct {
	tagService *service.TagService
}

func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid user identity")
		return
	}

	tags, err := h.tagService.List(r.Context(), userID, r.URL.Query().Get("searchTerm"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, tags)
}

func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid user identity")
		return
	}

	tagID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	tag, err := h.tagService.Get(r.Context(), userID, tagID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, tag)
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid user identity")
		return
	}

	var req domain.TagRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tag, err := h.tagService.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", r.URL.Path+"/"+tag.ID.Hex())
	response.Created(w, tag)
}

func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid user identity")
		return
	}

	tagID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req domain.TagRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tag, err := h.tagService.Update(r.Context(), userID, tagID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, tag)
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid user identity")
		return
	}

	tagID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.tagService.Delete(r.Context(), userID, tagID); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}
