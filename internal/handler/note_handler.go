package handler

import (
	"net/http"

	"noteful-server/internal/domain"
	"noteful-server/internal/service"
	"noteful-server/pkg/response"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type NoteHandler struct {
	noteService *service.NoteService
}

func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid user identity")
		return
	}

	query := &domain.NoteQuery{SearchTerm: r.URL.Query().Get("searchTerm")}

	if raw := r.URL.Query().Get("folderId"); raw != "" {
		id, err := bson.ObjectIDFromHex(raw)
		if err != nil {
			response.BadRequest(w, "The `folderId` is not valid")
			return
		}
		query.FolderID = &id
	}

	if raw := r.URL.Query().Get("tagId"); raw != "" {
		id, err := bson.ObjectIDFromHex(raw)
		if err != nil {
			response.BadRequest(w, "The `tagId` is not valid")
			return
		}
		query.TagID = &id
	}

	notes, err := h.noteService.List(r.Context(), userID, query)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid user identity")
		return
	}

	noteID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	note, err := h.noteService.Get(r.Context(), userID, noteID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid user identity")
		return
	}

	var req domain.NoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	note, err := h.noteService.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", r.URL.Path+"/"+note.ID.Hex())
	response.Created(w, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid user identity")
		return
	}

	noteID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req domain.NoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	note, err := h.noteService.Update(r.Context(), userID, noteID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		response.Unauthorized(w, "Invalid user identity")
		return
	}

	noteID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.noteService.Delete(r.Context(), userID, noteID); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}
