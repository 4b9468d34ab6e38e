package service

import (
	"encoding/json"
	"time"

	"noteful-server/internal/domain"
	"noteful-server/internal/websocket"

	"go.uber.org/zap"
)

// EventService fans entity change events out to the owner's connected
// websocket clients. A nil receiver or nil manager is a no-op so tests and
// headless wiring can skip it.
type EventService struct {
	manager *websocket.Manager
	logger  *zap.Logger
}

func NewEventService(manager *websocket.Manager, logger *zap.Logger) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{manager: manager, logger: logger}
}

type deletedPayload struct {
	ID string `json:"id"`
}

func (s *EventService) NoteCreated(userID string, note *domain.NoteResponse) {
	s.publish(userID, websocket.TypeNoteCreated, note)
}

func (s *EventService) NoteUpdated(userID string, note *domain.NoteResponse) {
	s.publish(userID, websocket.TypeNoteUpdated, note)
}

func (s *EventService) NoteDeleted(userID, noteID string) {
	s.publish(userID, websocket.TypeNoteDeleted, deletedPayload{ID: noteID})
}

func (s *EventService) FolderCreated(userID string, folder *domain.Folder) {
	s.publish(userID, websocket.TypeFolderCreated, folder)
}

func (s *EventService) FolderUpdated(userID string, folder *domain.Folder) {
	s.publish(userID, websocket.TypeFolderUpdated, folder)
}

func (s *EventService) FolderDeleted(userID, folderID string) {
	s.publish(userID, websocket.TypeFolderDeleted, deletedPayload{ID: folderID})
}

func (s *EventService) TagCreated(userID string, tag *domain.Tag) {
	s.publish(userID, websocket.TypeTagCreated, tag)
}

func (s *EventService) TagUpdated(userID string, tag *domain.Tag) {
	s.publish(userID, websocket.TypeTagUpdated, tag)
}

func (s *EventService) TagDeleted(userID, tagID string) {
	s.publish(userID, websocket.TypeTagDeleted, deletedPayload{ID: tagID})
}

func (s *EventService) publish(userID string, msgType websocket.MessageType, payload interface{}) {
	if s == nil || s.manager == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("failed to marshal event payload",
			zap.String("type", string(msgType)),
			zap.Error(err))
		return
	}

	s.manager.BroadcastToUser(userID, &websocket.Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   data,
	})
}
