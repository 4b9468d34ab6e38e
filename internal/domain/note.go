package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Note struct {
	ID        bson.ObjectID   `bson:"_id" json:"id"`
	UserID    bson.ObjectID   `bson:"userId" json:"userId"`
	Title     string          `bson:"title" json:"title"`
	Content   string          `bson:"content,omitempty" json:"content,omitempty"`
	FolderID  *bson.ObjectID  `bson:"folderId,omitempty" json:"folderId,omitempty"`
	Tags      []bson.ObjectID `bson:"tags" json:"tags"`
	CreatedAt time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// NoteRequest is the payload for both create and update; an update replaces
// the mutable fields of the note wholesale rather than patching them.
type NoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	FolderID string   `json:"folderId"`
	Tags     []string `json:"tags"`
}

// NoteDraft is a normalized, well-formed mutation payload. Producing one
// never touches the store; reference existence is checked separately.
type NoteDraft struct {
	Title    string
	Content  string
	FolderID *bson.ObjectID
	Tags     []bson.ObjectID
}

// Validate checks required fields and identifier well-formedness and returns
// the normalized draft. An empty folderId means "no folder". Duplicate tag
// ids collapse so the stored tags field is a true set.
func (r *NoteRequest) Validate() (*NoteDraft, error) {
	if strings.TrimSpace(r.Title) == "" {
		return nil, &ValidationError{Field: "title", Message: "Missing `title` in request body"}
	}

	draft := &NoteDraft{
		Title:   r.Title,
		Content: r.Content,
		Tags:    []bson.ObjectID{},
	}

	if r.FolderID != "" {
		id, err := bson.ObjectIDFromHex(r.FolderID)
		if err != nil {
			return nil, &ValidationError{Field: "folderId", Message: "The `folderId` is not valid"}
		}
		draft.FolderID = &id
	}

	seen := make(map[bson.ObjectID]struct{}, len(r.Tags))
	for _, raw := range r.Tags {
		id, err := bson.ObjectIDFromHex(raw)
		if err != nil {
			return nil, &ValidationError{Field: "tags", Message: "The `tags` array contains an invalid id"}
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		draft.Tags = append(draft.Tags, id)
	}

	return draft, nil
}

// NoteQuery narrows a note list read. The owning user is never part of it;
// owner scoping is stamped by the repository.
type NoteQuery struct {
	SearchTerm string
	FolderID   *bson.ObjectID
	TagID      *bson.ObjectID
}

// NoteResponse is a note with its tag references expanded into full tags.
type NoteResponse struct {
	ID        bson.ObjectID  `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content,omitempty"`
	FolderID  *bson.ObjectID `json:"folderId,omitempty"`
	Tags      []*Tag         `json:"tags"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
