package repository

import (
	"noteful-server/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Filters are built here and nowhere else, so caller input can only ever
// appear in value position and every read carries the owner clause.

func scopedID(userID, id bson.ObjectID) bson.M {
	return bson.M{"_id": id, "userId": userID}
}

func containsRegex(term string) bson.M {
	return bson.M{"$regex": term, "$options": "i"}
}

// noteListFilter matches the caller's notes, optionally narrowed by a
// case-insensitive search over title or content and by exact folder/tag.
func noteListFilter(userID bson.ObjectID, q *domain.NoteQuery) bson.M {
	filter := bson.M{"userId": userID}
	if q == nil {
		return filter
	}
	if q.SearchTerm != "" {
		filter["$or"] = []bson.M{
			{"title": containsRegex(q.SearchTerm)},
			{"content": containsRegex(q.SearchTerm)},
		}
	}
	if q.FolderID != nil {
		filter["folderId"] = *q.FolderID
	}
	if q.TagID != nil {
		filter["tags"] = *q.TagID
	}
	return filter
}

// nameListFilter matches the caller's folders or tags by name.
func nameListFilter(userID bson.ObjectID, searchTerm string) bson.M {
	filter := bson.M{"userId": userID}
	if searchTerm != "" {
		filter["name"] = containsRegex(searchTerm)
	}
	return filter
}

// Notes list most-recently-touched first; folders and tags alphabetically.

func noteListSort() bson.D {
	return bson.D{{Key: "updatedAt", Value: -1}}
}

func nameListSort() bson.D {
	return bson.D{{Key: "name", Value: 1}}
}
