package service

import (
	"context"
	"time"

	"noteful-server/internal/domain"
	"noteful-server/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type TagService struct {
	tagRepo  repository.TagRepository
	noteRepo repository.NoteRepository
	txn      repository.TxnRunner
	events   *EventService
	logger   *zap.Logger
}

func NewTagService(
	tagRepo repository.TagRepository,
	noteRepo repository.NoteRepository,
	txn repository.TxnRunner,
	events *EventService,
	logger *zap.Logger,
) *TagService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TagService{
		tagRepo:  tagRepo,
		noteRepo: noteRepo,
		txn:      txn,
		events:   events,
		logger:   logger,
	}
}

func (s *TagService) Create(ctx context.Context, userID bson.ObjectID, req *domain.TagRequest) (*domain.Tag, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tag := &domain.Tag{
		ID:        bson.NewObjectID(),
		UserID:    userID,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.events.TagCreated(userID.Hex(), tag)
	return tag, nil
}

func (s *TagService) List(ctx context.Context, userID bson.ObjectID, searchTerm string) ([]*domain.Tag, error) {
	return s.tagRepo.List(ctx, userID, searchTerm)
}

func (s *TagService) Get(ctx context.Context, userID, tagID bson.ObjectID) (*domain.Tag, error) {
	return s.tagRepo.FindByID(ctx, userID, tagID)
}

func (s *TagService) Update(ctx context.Context, userID, tagID bson.ObjectID, req *domain.TagRequest) (*domain.Tag, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tag, err := s.tagRepo.Rename(ctx, userID, tagID, req.Name, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.events.TagUpdated(userID.Hex(), tag)
	return tag, nil
}

// Delete removes an owned tag and pulls its id out of every note's tags set;
// the notes themselves survive.
func (s *TagService) Delete(ctx context.Context, userID, tagID bson.ObjectID) error {
	if s.txn != nil {
		err := s.txn.Run(ctx, func(ctx context.Context) error {
			if err := s.tagRepo.Delete(ctx, userID, tagID); err != nil {
				return err
			}
			return s.noteRepo.PullTagRefs(ctx, userID, tagID)
		})
		if err != nil {
			return err
		}
	} else {
		if err := s.tagRepo.Delete(ctx, userID, tagID); err != nil {
			return err
		}
		if err := s.noteRepo.PullTagRefs(ctx, userID, tagID); err != nil {
			s.logger.Error("tag cascade cleanup failed",
				zap.String("tagId", tagID.Hex()),
				zap.Error(err))
		}
	}

	s.events.TagDeleted(userID.Hex(), tagID.Hex())
	return nil
}
