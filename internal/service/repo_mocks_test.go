package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"noteful-server/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type mockNoteRepo struct {
	notes map[bson.ObjectID]*domain.Note
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: make(map[bson.ObjectID]*domain.Note)}
}

func (m *mockNoteRepo) Create(ctx context.Context, note *domain.Note) error {
	m.notes[note.ID] = note
	return nil
}

func (m *mockNoteRepo) FindByID(ctx context.Context, userID, id bson.ObjectID) (*domain.Note, error) {
	if n, ok := m.notes[id]; ok && n.UserID == userID {
		return n, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockNoteRepo) List(ctx context.Context, userID bson.ObjectID, q *domain.NoteQuery) ([]*domain.Note, error) {
	notes := []*domain.Note{}
	for _, n := range m.notes {
		if n.UserID != userID {
			continue
		}
		if q != nil {
			if q.SearchTerm != "" {
				term := strings.ToLower(q.SearchTerm)
				if !strings.Contains(strings.ToLower(n.Title), term) &&
					!strings.Contains(strings.ToLower(n.Content), term) {
					continue
				}
			}
			if q.FolderID != nil && (n.FolderID == nil || *n.FolderID != *q.FolderID) {
				continue
			}
			if q.TagID != nil && !containsID(n.Tags, *q.TagID) {
				continue
			}
		}
		notes = append(notes, n)
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
	return notes, nil
}

func (m *mockNoteRepo) Update(ctx context.Context, userID, id bson.ObjectID, draft *domain.NoteDraft, updatedAt time.Time) (*domain.Note, error) {
	n, ok := m.notes[id]
	if !ok || n.UserID != userID {
		return nil, domain.ErrNotFound
	}
	n.Title = draft.Title
	n.Content = draft.Content
	n.FolderID = draft.FolderID
	n.Tags = draft.Tags
	n.UpdatedAt = updatedAt
	return n, nil
}

func (m *mockNoteRepo) Delete(ctx context.Context, userID, id bson.ObjectID) error {
	if n, ok := m.notes[id]; ok && n.UserID == userID {
		delete(m.notes, id)
		return nil
	}
	return domain.ErrNotFound
}

func (m *mockNoteRepo) ClearFolderRefs(ctx context.Context, userID, folderID bson.ObjectID) error {
	for _, n := range m.notes {
		if n.UserID == userID && n.FolderID != nil && *n.FolderID == folderID {
			n.FolderID = nil
		}
	}
	return nil
}

func (m *mockNoteRepo) PullTagRefs(ctx context.Context, userID, tagID bson.ObjectID) error {
	for _, n := range m.notes {
		if n.UserID != userID {
			continue
		}
		kept := n.Tags[:0]
		for _, id := range n.Tags {
			if id != tagID {
				kept = append(kept, id)
			}
		}
		n.Tags = kept
	}
	return nil
}

type mockFolderRepo struct {
	folders map[bson.ObjectID]*domain.Folder
}

func newMockFolderRepo() *mockFolderRepo {
	return &mockFolderRepo{folders: make(map[bson.ObjectID]*domain.Folder)}
}

func (m *mockFolderRepo) Create(ctx context.Context, folder *domain.Folder) error {
	for _, f := range m.folders {
		if f.UserID == folder.UserID && f.Name == folder.Name {
			return &domain.DuplicateNameError{Entity: "folder name"}
		}
	}
	m.folders[folder.ID] = folder
	return nil
}

func (m *mockFolderRepo) FindByID(ctx context.Context, userID, id bson.ObjectID) (*domain.Folder, error) {
	if f, ok := m.folders[id]; ok && f.UserID == userID {
		return f, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockFolderRepo) List(ctx context.Context, userID bson.ObjectID, searchTerm string) ([]*domain.Folder, error) {
	folders := []*domain.Folder{}
	for _, f := range m.folders {
		if f.UserID != userID {
			continue
		}
		if searchTerm != "" && !strings.Contains(strings.ToLower(f.Name), strings.ToLower(searchTerm)) {
			continue
		}
		folders = append(folders, f)
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].Name < folders[j].Name })
	return folders, nil
}

func (m *mockFolderRepo) Rename(ctx context.Context, userID, id bson.ObjectID, name string, updatedAt time.Time) (*domain.Folder, error) {
	f, ok := m.folders[id]
	if !ok || f.UserID != userID {
		return nil, domain.ErrNotFound
	}
	for _, other := range m.folders {
		if other.ID != id && other.UserID == userID && other.Name == name {
			return nil, &domain.DuplicateNameError{Entity: "folder name"}
		}
	}
	f.Name = name
	f.UpdatedAt = updatedAt
	return f, nil
}

func (m *mockFolderRepo) Delete(ctx context.Context, userID, id bson.ObjectID) error {
	if f, ok := m.folders[id]; ok && f.UserID == userID {
		delete(m.folders, id)
		return nil
	}
	return domain.ErrNotFound
}

func (m *mockFolderRepo) Exists(ctx context.Context, userID, id bson.ObjectID) (bool, error) {
	f, ok := m.folders[id]
	return ok && f.UserID == userID, nil
}

type mockTagRepo struct {
	tags map[bson.ObjectID]*domain.Tag
}

func newMockTagRepo() *mockTagRepo {
	return &mockTagRepo{tags: make(map[bson.ObjectID]*domain.Tag)}
}

func (m *mockTagRepo) Create(ctx context.Context, tag *domain.Tag) error {
	for _, t := range m.tags {
		if t.UserID == tag.UserID && t.Name == tag.Name {
			return &domain.DuplicateNameError{Entity: "tag name"}
		}
	}
	m.tags[tag.ID] = tag
	return nil
}

func (m *mockTagRepo) FindByID(ctx context.Context, userID, id bson.ObjectID) (*domain.Tag, error) {
	if t, ok := m.tags[id]; ok && t.UserID == userID {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockTagRepo) FindByIDs(ctx context.Context, userID bson.ObjectID, ids []bson.ObjectID) ([]*domain.Tag, error) {
	tags := []*domain.Tag{}
	for _, id := range ids {
		if t, ok := m.tags[id]; ok && t.UserID == userID {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

func (m *mockTagRepo) List(ctx context.Context, userID bson.ObjectID, searchTerm string) ([]*domain.Tag, error) {
	tags := []*domain.Tag{}
	for _, t := range m.tags {
		if t.UserID != userID {
			continue
		}
		if searchTerm != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(searchTerm)) {
			continue
		}
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (m *mockTagRepo) Rename(ctx context.Context, userID, id bson.ObjectID, name string, updatedAt time.Time) (*domain.Tag, error) {
	t, ok := m.tags[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	for _, other := range m.tags {
		if other.ID != id && other.UserID == userID && other.Name == name {
			return nil, &domain.DuplicateNameError{Entity: "tag name"}
		}
	}
	t.Name = name
	t.UpdatedAt = updatedAt
	return t, nil
}

func (m *mockTagRepo) Delete(ctx context.Context, userID, id bson.ObjectID) error {
	if t, ok := m.tags[id]; ok && t.UserID == userID {
		delete(m.tags, id)
		return nil
	}
	return domain.ErrNotFound
}

type mockUserRepo struct {
	users map[bson.ObjectID]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[bson.ObjectID]*domain.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return &domain.DuplicateNameError{Entity: "username"}
		}
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id bson.ObjectID) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func containsID(ids []bson.ObjectID, id bson.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
