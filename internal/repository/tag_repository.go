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

type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	FindByID(ctx context.Context, userID, id bson.ObjectID) (*domain.Tag, error)
	FindByIDs(ctx context.Context, userID bson.ObjectID, ids []bson.ObjectID) ([]*domain.Tag, error)
	List(ctx context.Context, userID bson.ObjectID, searchTerm string) ([]*domain.Tag, error)
	Rename(ctx context.Context, userID, id bson.ObjectID, name string, updatedAt time.Time) (*domain.Tag, error)
	Delete(ctx context.Context, userID, id bson.ObjectID) error
}

type tagRepository struct {
	coll *mongo.Collection
}

func NewTagRepository(db *mongo.Database) TagRepository {
	return &tagRepository{coll: db.Collection("tags")}
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	if _, err := r.coll.InsertOne(ctx, tag); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.DuplicateNameError{Entity: "tag name"}
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

func (r *tagRepository) FindByID(ctx context.Context, userID, id bson.ObjectID) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.coll.FindOne(ctx, scopedID(userID, id)).Decode(&tag)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return &tag, nil
}

// FindByIDs returns the caller's tags among ids; missing or foreign-owned ids
// are simply absent from the result.
func (r *tagRepository) FindByIDs(ctx context.Context, userID bson.ObjectID, ids []bson.ObjectID) ([]*domain.Tag, error) {
	if len(ids) == 0 {
		return []*domain.Tag{}, nil
	}

	cursor, err := r.coll.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}, "userId": userID},
		options.Find().SetSort(nameListSort()))
	if err != nil {
		return nil, fmt.Errorf("failed to find tags: %w", err)
	}

	tags := []*domain.Tag{}
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, nil
}

func (r *tagRepository) List(ctx context.Context, userID bson.ObjectID, searchTerm string) ([]*domain.Tag, error) {
	cursor, err := r.coll.Find(ctx, nameListFilter(userID, searchTerm), options.Find().SetSort(nameListSort()))
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	tags := []*domain.Tag{}
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, nil
}

func (r *tagRepository) Rename(ctx context.Context, userID, id bson.ObjectID, name string, updatedAt time.Time) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.coll.FindOneAndUpdate(ctx, scopedID(userID, id),
		bson.M{"$set": bson.M{"name": name, "updatedAt": updatedAt}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&tag)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, &domain.DuplicateNameError{Entity: "tag name"}
		}
		return nil, fmt.Errorf("failed to rename tag: %w", err)
	}
	return &tag, nil
}

func (r *tagRepository) Delete(ctx context.Context, userID, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, scopedID(userID, id))
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
