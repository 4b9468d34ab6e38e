package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	TypeNoteCreated   MessageType = "note_created"
	TypeNoteUpdated   MessageType = "note_updated"
	TypeNoteDeleted   MessageType = "note_deleted"
	TypeFolderCreated MessageType = "folder_created"
	TypeFolderUpdated MessageType = "folder_updated"
	TypeFolderDeleted MessageType = "folder_deleted"
	TypeTagCreated    MessageType = "tag_created"
	TypeTagUpdated    MessageType = "tag_updated"
	TypeTagDeleted    MessageType = "tag_deleted"
)

// Message is a change event pushed to a user's connected clients. The stream
// is outbound only; clients never send application messages.
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}
