package service

import (
	"context"
	"time"

	"noteful-server/internal/domain"
	"noteful-server/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type FolderService struct {
	folderRepo repository.FolderRepository
	noteRepo   repository.NoteRepository
	txn        repository.TxnRunner
	events     *EventService
	logger     *zap.Logger
}

// NewFolderService wires the folder coordinator. txn may be nil; deletes then
// run the cascade as a separate follow-up call.
func NewFolderService(
	folderRepo repository.FolderRepository,
	noteRepo repository.NoteRepository,
	txn repository.TxnRunner,
	events *EventService,
	logger *zap.Logger,
) *FolderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FolderService{
		folderRepo: folderRepo,
		noteRepo:   noteRepo,
		txn:        txn,
		events:     events,
		logger:     logger,
	}
}

func (s *FolderService) Create(ctx context.Context, userID bson.ObjectID, req *domain.FolderRequest) (*domain.Folder, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	folder := &domain.Folder{
		ID:        bson.NewObjectID(),
		UserID:    userID,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.events.FolderCreated(userID.Hex(), folder)
	return folder, nil
}

func (s *FolderService) List(ctx context.Context, userID bson.ObjectID, searchTerm string) ([]*domain.Folder, error) {
	return s.folderRepo.List(ctx, userID, searchTerm)
}

func (s *FolderService) Get(ctx context.Context, userID, folderID bson.ObjectID) (*domain.Folder, error) {
	return s.folderRepo.FindByID(ctx, userID, folderID)
}

func (s *FolderService) Update(ctx context.Context, userID, folderID bson.ObjectID, req *domain.FolderRequest) (*domain.Folder, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.Rename(ctx, userID, folderID, req.Name, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.events.FolderUpdated(userID.Hex(), folder)
	return folder, nil
}

// Delete removes an owned folder and clears the folderId of every note that
// pointed at it; the notes themselves survive.
func (s *FolderService) Delete(ctx context.Context, userID, folderID bson.ObjectID) error {
	if s.txn != nil {
		err := s.txn.Run(ctx, func(ctx context.Context) error {
			if err := s.folderRepo.Delete(ctx, userID, folderID); err != nil {
				return err
			}
			return s.noteRepo.ClearFolderRefs(ctx, userID, folderID)
		})
		if err != nil {
			return err
		}
	} else {
		if err := s.folderRepo.Delete(ctx, userID, folderID); err != nil {
			return err
		}
		// The delete is already committed; a failed cascade leaves stale
		// references behind, which is not a reason to fail the request.
		if err := s.noteRepo.ClearFolderRefs(ctx, userID, folderID); err != nil {
			s.logger.Error("folder cascade cleanup failed",
				zap.String("folderId", folderID.Hex()),
				zap.Error(err))
		}
	}

	s.events.FolderDeleted(userID.Hex(), folderID.Hex())
	return nil
}
