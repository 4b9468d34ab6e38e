package service

import (
	"context"
	"errors"
	"testing"

	"noteful-server/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestTagService_CreateDuplicateName(t *testing.T) {
	service := NewTagService(newMockTagRepo(), newMockNoteRepo(), nil, nil, nil)
	owner := bson.NewObjectID()

	if _, err := service.Create(context.Background(), owner, &domain.TagRequest{Name: "urgent"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := service.Create(context.Background(), owner, &domain.TagRequest{Name: "urgent"})
	var dupErr *domain.DuplicateNameError
	if !errors.As(err, &dupErr) {
		t.Fatalf("Create() duplicate error = %v, want *DuplicateNameError", err)
	}

	if _, err := service.Create(context.Background(), bson.NewObjectID(), &domain.TagRequest{Name: "urgent"}); err != nil {
		t.Errorf("Create() under different owner error = %v", err)
	}
}

func TestTagService_DeleteCascadesToNotes(t *testing.T) {
	tagRepo := newMockTagRepo()
	noteRepo := newMockNoteRepo()
	service := NewTagService(tagRepo, noteRepo, nil, nil, nil)

	userID := bson.NewObjectID()
	t1, err := service.Create(context.Background(), userID, &domain.TagRequest{Name: "t1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	t2, err := service.Create(context.Background(), userID, &domain.TagRequest{Name: "t2"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	note := &domain.Note{
		ID:     bson.NewObjectID(),
		UserID: userID,
		Title:  "tagged",
		Tags:   []bson.ObjectID{t1.ID, t2.ID},
	}
	noteRepo.notes[note.ID] = note

	if err := service.Delete(context.Background(), userID, t1.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	remaining := noteRepo.notes[note.ID].Tags
	if len(remaining) != 1 || remaining[0] != t2.ID {
		t.Errorf("note tags after cascade = %v, want [%v]", remaining, t2.ID)
	}
}

func TestTagService_GetUnownedIsNotFound(t *testing.T) {
	tagRepo := newMockTagRepo()
	service := NewTagService(tagRepo, newMockNoteRepo(), nil, nil, nil)

	owner := bson.NewObjectID()
	tag, err := service.Create(context.Background(), owner, &domain.TagRequest{Name: "secret"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := service.Get(context.Background(), bson.NewObjectID(), tag.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() by stranger error = %v, want ErrNotFound", err)
	}
}
