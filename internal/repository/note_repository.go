package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"noteful-server/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	FindByID(ctx context.Context, userID, id bson.ObjectID) (*domain.Note, error)
	List(ctx context.Context, userID bson.ObjectID, q *domain.NoteQuery) ([]*domain.Note, error)
	Update(ctx context.Context, userID, id bson.ObjectID, draft *domain.NoteDraft, updatedAt time.Time) (*domain.Note, error)
	Delete(ctx context.Context, userID, id bson.ObjectID) error
	ClearFolderRefs(ctx context.Context, userID, folderID bson.ObjectID) error
	PullTagRefs(ctx context.Context, userID, tagID bson.ObjectID) error
}

type noteRepository struct {
	coll *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) NoteRepository {
	return &noteRepository{coll: db.Collection("notes")}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	if _, err := r.coll.InsertOne(ctx, note); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (r *noteRepository) FindByID(ctx context.Context, userID, id bson.ObjectID) (*domain.Note, error) {
	var note domain.Note
	err := r.coll.FindOne(ctx, scopedID(userID, id)).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return &note, nil
}

func (r *noteRepository) List(ctx context.Context, userID bson.ObjectID, q *domain.NoteQuery) ([]*domain.Note, error) {
	cursor, err := r.coll.Find(ctx, noteListFilter(userID, q), options.Find().SetSort(noteListSort()))
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	notes := []*domain.Note{}
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}
	return notes, nil
}

// Update replaces the mutable fields of an owned note in one round trip and
// returns the post-update document. A missing folder reference is unset, not
// left dangling from the previous value.
func (r *noteRepository) Update(ctx context.Context, userID, id bson.ObjectID, draft *domain.NoteDraft, updatedAt time.Time) (*domain.Note, error) {
	set := bson.M{
		"title":     draft.Title,
		"content":   draft.Content,
		"tags":      draft.Tags,
		"updatedAt": updatedAt,
	}
	update := bson.M{"$set": set}
	if draft.FolderID != nil {
		set["folderId"] = *draft.FolderID
	} else {
		update["$unset"] = bson.M{"folderId": ""}
	}

	var note domain.Note
	err := r.coll.FindOneAndUpdate(ctx, scopedID(userID, id), update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return &note, nil
}

func (r *noteRepository) Delete(ctx context.Context, userID, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, scopedID(userID, id))
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *noteRepository) ClearFolderRefs(ctx context.Context, userID, folderID bson.ObjectID) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"userId": userID, "folderId": folderID},
		bson.M{"$unset": bson.M{"folderId": ""}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear folder references: %w", err)
	}
	return nil
}

func (r *noteRepository) PullTagRefs(ctx context.Context, userID, tagID bson.ObjectID) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"userId": userID, "tags": tagID},
		bson.M{"$pull": bson.M{"tags": tagID}},
	)
	if err != nil {
		return fmt.Errorf("failed to pull tag references: %w", err)
	}
	return nil
}
