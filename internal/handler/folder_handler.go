package handler

import (
	"net/http"

	"noteful-server/internal/domain"
	"noteful-server/internal/service"
	"noteful-server/pkg/response"
)

type FolderHandler struct {
	folderService *service.FolderService
}

func NewFolderHandler(folderService *service.FolderService) *FolderHandler {
	return &FolderHandler{folderService: folderService}
}

func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid user identity")
		return
	}

	folders, err := h.folderService.List(r.Context(), userID, r.URL.Query().Get("searchTerm"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, folders)
}

func (h *FolderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid user identity")
		return
	}

	folderID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	folder, err := h.folderService.Get(r.Context(), userID, folderID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, folder)
}

func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid user identity")
		return
	}

	var req domain.FolderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	folder, err := h.folderService.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", r.URL.Path+"/"+folder.ID.Hex())
	response.Created(w, folder)
}

func (h *FolderHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid user identity")
		return
	}

	folderID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req domain.FolderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	folder, err := h.folderService.Update(r.Context(), userID, folderID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, folder)
}

func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid user identity")
		return
	}

	folderID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.folderService.Delete(r.Context(), userID, folderID); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}
