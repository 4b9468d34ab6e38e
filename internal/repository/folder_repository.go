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

type FolderRepository interface {
	Create(ctx context.Context, folder *domain.Folder) error
	FindByID(ctx context.Context, userID, id bson.ObjectID) (*domain.Folder, error)
	List(ctx context.Context, userID bson.ObjectID, searchTerm string) ([]*domain.Folder, error)
	Rename(ctx context.Context, userID, id bson.ObjectID, name string, updatedAt time.Time) (*domain.Folder, error)
	Delete(ctx context.Context, userID, id bson.ObjectID) error
	Exists(ctx context.Context, userID, id bson.ObjectID) (bool, error)
}

type folderRepository struct {
	coll *mongo.Collection
}

func NewFolderRepository(db *mongo.Database) FolderRepository {
	return &folderRepository{coll: db.Collection("folders")}
}

func (r *folderRepository) Create(ctx context.Context, folder *domain.Folder) error {
	if _, err := r.coll.InsertOne(ctx, folder); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.DuplicateNameError{Entity: "folder name"}
		}
		return fmt.Errorf("failed to create folder: %w", err)
	}
	return nil
}

func (r *folderRepository) FindByID(ctx context.Context, userID, id bson.ObjectID) (*domain.Folder, error) {
	var folder domain.Folder
	err := r.coll.FindOne(ctx, scopedID(userID, id)).Decode(&folder)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find folder: %w", err)
	}
	return &folder, nil
}

func (r *folderRepository) List(ctx context.Context, userID bson.ObjectID, searchTerm string) ([]*domain.Folder, error) {
	cursor, err := r.coll.Find(ctx, nameListFilter(userID, searchTerm), options.Find().SetSort(nameListSort()))
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	folders := []*domain.Folder{}
	if err := cursor.All(ctx, &folders); err != nil {
		return nil, fmt.Errorf("failed to decode folders: %w", err)
	}
	return folders, nil
}

func (r *folderRepository) Rename(ctx context.Context, userID, id bson.ObjectID, name string, updatedAt time.Time) (*domain.Folder, error) {
	var folder domain.Folder
	err := r.coll.FindOneAndUpdate(ctx, scopedID(userID, id),
		bson.M{"$set": bson.M{"name": name, "updatedAt": updatedAt}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&folder)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, &domain.DuplicateNameError{Entity: "folder name"}
		}
		return nil, fmt.Errorf("failed to rename folder: %w", err)
	}
	return &folder, nil
}

func (r *folderRepository) Delete(ctx context.Context, userID, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, scopedID(userID, id))
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *folderRepository) Exists(ctx context.Context, userID, id bson.ObjectID) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, scopedID(userID, id))
	if err != nil {
		return false, fmt.Errorf("failed to count folders: %w", err)
	}
	return count > 0, nil
}
