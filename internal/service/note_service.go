package service

import (
	"context"
	"time"

	"noteful-server/internal/domain"
	"noteful-server/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/sync/errgroup"
)

type NoteService struct {
	noteRepo   repository.NoteRepository
	folderRepo repository.FolderRepository
	tagRepo    repository.TagRepository
	events     *EventService
}

func NewNoteService(
	noteRepo repository.NoteRepository,
	folderRepo repository.FolderRepository,
	tagRepo repository.TagRepository,
	events *EventService,
) *NoteService {
	return &NoteService{
		noteRepo:   noteRepo,
		folderRepo: folderRepo,
		tagRepo:    tagRepo,
		events:     events,
	}
}

func (s *NoteService) Create(ctx context.Context, userID bson.ObjectID, req *domain.NoteRequest) (*domain.NoteResponse, error) {
	draft, err := req.Validate()
	if err != nil {
		return nil, err
	}

	tags, err := s.resolveReferences(ctx, userID, draft)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := &domain.Note{
		ID:        bson.NewObjectID(),
		UserID:    userID,
		Title:     draft.Title,
		Content:   draft.Content,
		FolderID:  draft.FolderID,
		Tags:      draft.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	resp := noteToResponse(note, tags)
	s.events.NoteCreated(userID.Hex(), resp)
	return resp, nil
}

func (s *NoteService) List(ctx context.Context, userID bson.ObjectID, q *domain.NoteQuery) ([]*domain.NoteResponse, error) {
	notes, err := s.noteRepo.List(ctx, userID, q)
	if err != nil {
		return nil, err
	}

	// One tag fetch covers every note in the page.
	var ids []bson.ObjectID
	seen := make(map[bson.ObjectID]struct{})
	for _, n := range notes {
		for _, id := range n.Tags {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	tags, err := s.tagRepo.FindByIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[bson.ObjectID]*domain.Tag, len(tags))
	for _, t := range tags {
		byID[t.ID] = t
	}

	responses := make([]*domain.NoteResponse, len(notes))
	for i, n := range notes {
		noteTags := []*domain.Tag{}
		for _, id := range n.Tags {
			if t, ok := byID[id]; ok {
				noteTags = append(noteTags, t)
			}
		}
		responses[i] = noteToResponse(n, noteTags)
	}
	return responses, nil
}

func (s *NoteService) Get(ctx context.Context, userID, noteID bson.ObjectID) (*domain.NoteResponse, error) {
	note, err := s.noteRepo.FindByID(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.FindByIDs(ctx, userID, note.Tags)
	if err != nil {
		return nil, err
	}
	return noteToResponse(note, tags), nil
}

func (s *NoteService) Update(ctx context.Context, userID, noteID bson.ObjectID, req *domain.NoteRequest) (*domain.NoteResponse, error) {
	draft, err := req.Validate()
	if err != nil {
		return nil, err
	}

	tags, err := s.resolveReferences(ctx, userID, draft)
	if err != nil {
		return nil, err
	}

	note, err := s.noteRepo.Update(ctx, userID, noteID, draft, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	resp := noteToResponse(note, tags)
	s.events.NoteUpdated(userID.Hex(), resp)
	return resp, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, noteID bson.ObjectID) error {
	if err := s.noteRepo.Delete(ctx, userID, noteID); err != nil {
		return err
	}
	s.events.NoteDeleted(userID.Hex(), noteID.Hex())
	return nil
}

// resolveReferences confirms the draft's folder and tags exist and belong to
// the caller. The two checks are independent store round trips, so they run
// concurrently; the first failure cancels the other, and nothing has been
// persisted yet at this point. The resolved tags come back for the response,
// saving a refetch after the write.
func (s *NoteService) resolveReferences(ctx context.Context, userID bson.ObjectID, draft *domain.NoteDraft) ([]*domain.Tag, error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if draft.FolderID == nil {
			return nil
		}
		ok, err := s.folderRepo.Exists(gctx, userID, *draft.FolderID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.ReferenceError{Field: "folderId"}
		}
		return nil
	})

	tags := []*domain.Tag{}
	g.Go(func() error {
		if len(draft.Tags) == 0 {
			return nil
		}
		found, err := s.tagRepo.FindByIDs(gctx, userID, draft.Tags)
		if err != nil {
			return err
		}
		// draft.Tags is deduplicated, so a shorter result means at least one
		// id is nonexistent or owned by someone else.
		if len(found) != len(draft.Tags) {
			return &domain.ReferenceError{Field: "tags"}
		}
		tags = found
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tags, nil
}

func noteToResponse(note *domain.Note, tags []*domain.Tag) *domain.NoteResponse {
	if tags == nil {
		tags = []*domain.Tag{}
	}
	return &domain.NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		FolderID:  note.FolderID,
		Tags:      tags,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
