package service

import (
	"context"
	"errors"
	"testing"

	"noteful-server/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func newNoteService() (*NoteService, *mockNoteRepo, *mockFolderRepo, *mockTagRepo) {
	noteRepo := newMockNoteRepo()
	folderRepo := newMockFolderRepo()
	tagRepo := newMockTagRepo()
	return NewNoteService(noteRepo, folderRepo, tagRepo, nil), noteRepo, folderRepo, tagRepo
}

func seedFolder(repo *mockFolderRepo, userID bson.ObjectID, name string) *domain.Folder {
	folder := &domain.Folder{ID: bson.NewObjectID(), UserID: userID, Name: name}
	repo.folders[folder.ID] = folder
	return folder
}

func seedTag(repo *mockTagRepo, userID bson.ObjectID, name string) *domain.Tag {
	tag := &domain.Tag{ID: bson.NewObjectID(), UserID: userID, Name: name}
	repo.tags[tag.ID] = tag
	return tag
}

func TestNoteService_CreateRoundTrip(t *testing.T) {
	service, _, _, _ := newNoteService()
	userID := bson.NewObjectID()

	created, err := service.Create(context.Background(), userID, &domain.NoteRequest{Title: "X", Content: "Y"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := service.Get(context.Background(), userID, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got.Title != "X" || got.Content != "Y" {
		t.Errorf("Get() = %q/%q, want X/Y", got.Title, got.Content)
	}
	if !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Errorf("Get() createdAt %v != updatedAt %v on first write", got.CreatedAt, got.UpdatedAt)
	}
	if got.FolderID != nil {
		t.Errorf("Get() folderID = %v, want absent", got.FolderID)
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("Get() tags = %v, want empty sequence", got.Tags)
	}
}

func TestNoteService_CreateValidation(t *testing.T) {
	service, _, _, _ := newNoteService()
	userID := bson.NewObjectID()

	_, err := service.Create(context.Background(), userID, &domain.NoteRequest{Content: "no title"})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Create() error = %v, want *ValidationError", err)
	}
	if vErr.Field != "title" {
		t.Errorf("Create() error field = %q, want title", vErr.Field)
	}
}

func TestNoteService_CreateReferenceChecks(t *testing.T) {
	service, _, folderRepo, tagRepo := newNoteService()
	owner := bson.NewObjectID()
	stranger := bson.NewObjectID()

	ownFolder := seedFolder(folderRepo, owner, "mine")
	foreignFolder := seedFolder(folderRepo, stranger, "theirs")
	foreignTag := seedTag(tagRepo, stranger, "their-tag")

	tests := []struct {
		name      string
		req       *domain.NoteRequest
		wantField string
	}{
		{
			name:      "nonexistent folder",
			req:       &domain.NoteRequest{Title: "X", FolderID: bson.NewObjectID().Hex()},
			wantField: "folderId",
		},
		{
			name:      "folder owned by someone else",
			req:       &domain.NoteRequest{Title: "X", FolderID: foreignFolder.ID.Hex()},
			wantField: "folderId",
		},
		{
			name:      "nonexistent tag",
			req:       &domain.NoteRequest{Title: "X", Tags: []string{bson.NewObjectID().Hex()}},
			wantField: "tags",
		},
		{
			name:      "tag owned by someone else",
			req:       &domain.NoteRequest{Title: "X", Tags: []string{foreignTag.ID.Hex()}},
			wantField: "tags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), owner, tt.req)
			var refErr *domain.ReferenceError
			if !errors.As(err, &refErr) {
				t.Fatalf("Create() error = %v, want *ReferenceError", err)
			}
			if refErr.Field != tt.wantField {
				t.Errorf("Create() reference field = %q, want %q", refErr.Field, tt.wantField)
			}
		})
	}

	// A valid owned reference goes through.
	note, err := service.Create(context.Background(), owner, &domain.NoteRequest{
		Title:    "X",
		FolderID: ownFolder.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("Create() with owned folder error = %v", err)
	}
	if note.FolderID == nil || *note.FolderID != ownFolder.ID {
		t.Errorf("Create() folderID = %v, want %v", note.FolderID, ownFolder.ID)
	}
}

func TestNoteService_CreateDuplicateTagIDs(t *testing.T) {
	service, _, _, tagRepo := newNoteService()
	userID := bson.NewObjectID()
	tag := seedTag(tagRepo, userID, "dup")

	note, err := service.Create(context.Background(), userID, &domain.NoteRequest{
		Title: "X",
		Tags:  []string{tag.ID.Hex(), tag.ID.Hex()},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(note.Tags) != 1 {
		t.Errorf("Create() len(tags) = %d, want 1", len(note.Tags))
	}
}

func TestNoteService_OwnershipIsolation(t *testing.T) {
	service, _, _, _ := newNoteService()
	owner := bson.NewObjectID()
	stranger := bson.NewObjectID()

	note, err := service.Create(context.Background(), owner, &domain.NoteRequest{Title: "private"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := service.Get(context.Background(), stranger, note.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() by stranger error = %v, want ErrNotFound", err)
	}
	if _, err := service.Update(context.Background(), stranger, note.ID, &domain.NoteRequest{Title: "taken"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update() by stranger error = %v, want ErrNotFound", err)
	}
	if err := service.Delete(context.Background(), stranger, note.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete() by stranger error = %v, want ErrNotFound", err)
	}

	// The owner still sees the untouched note.
	got, err := service.Get(context.Background(), owner, note.ID)
	if err != nil {
		t.Fatalf("Get() by owner error = %v", err)
	}
	if got.Title != "private" {
		t.Errorf("Get() title = %q, want private", got.Title)
	}
}

func TestNoteService_UpdateReplacesFields(t *testing.T) {
	service, _, folderRepo, _ := newNoteService()
	userID := bson.NewObjectID()
	folder := seedFolder(folderRepo, userID, "inbox")

	note, err := service.Create(context.Background(), userID, &domain.NoteRequest{
		Title:    "before",
		Content:  "old",
		FolderID: folder.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Omitting folderId on a full replace clears the reference.
	updated, err := service.Update(context.Background(), userID, note.ID, &domain.NoteRequest{Title: "after"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Title != "after" || updated.Content != "" {
		t.Errorf("Update() = %q/%q, want after/empty", updated.Title, updated.Content)
	}
	if updated.FolderID != nil {
		t.Errorf("Update() folderID = %v, want cleared", updated.FolderID)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Errorf("Update() updatedAt %v before createdAt %v", updated.UpdatedAt, updated.CreatedAt)
	}
}

func TestNoteService_UpdateEmptyTagsIdempotent(t *testing.T) {
	service, _, _, tagRepo := newNoteService()
	userID := bson.NewObjectID()
	tag := seedTag(tagRepo, userID, "t1")

	note, err := service.Create(context.Background(), userID, &domain.NoteRequest{
		Title: "X",
		Tags:  []string{tag.ID.Hex()},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		updated, err := service.Update(context.Background(), userID, note.ID, &domain.NoteRequest{
			Title: "X",
			Tags:  []string{},
		})
		if err != nil {
			t.Fatalf("Update() pass %d error = %v", i+1, err)
		}
		if len(updated.Tags) != 0 {
			t.Errorf("Update() pass %d tags = %v, want empty", i+1, updated.Tags)
		}
	}
}

func TestNoteService_ListSearchAndPopulate(t *testing.T) {
	service, _, _, tagRepo := newNoteService()
	userID := bson.NewObjectID()
	tag := seedTag(tagRepo, userID, "pets")

	if _, err := service.Create(context.Background(), userID, &domain.NoteRequest{
		Title: "The best article about cats ever!",
		Tags:  []string{tag.ID.Hex()},
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := service.Create(context.Background(), userID, &domain.NoteRequest{Title: "dogs"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	matches, err := service.List(context.Background(), userID, &domain.NoteQuery{SearchTerm: "CATS"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("List() matches = %d, want 1", len(matches))
	}
	if len(matches[0].Tags) != 1 || matches[0].Tags[0].Name != "pets" {
		t.Errorf("List() tags = %v, want populated pets tag", matches[0].Tags)
	}

	none, err := service.List(context.Background(), userID, &domain.NoteQuery{SearchTerm: "gerbils"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("List() matches = %d, want 0", len(none))
	}
}
