package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	TypeNoteUpdated  MessageType = "note_updated"
	TypeNoteDeleted  MessageType = "note_deleted"
	TypeNoteShared   MessageType = "note_shared"
	TypeNoteUnshared MessageType = "note_unshared"
	TypeCommentAdded MessageType = "comment_added"
	TypePing         MessageType = "ping"
	TypePong         MessageType = "pong"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// NoteEventPayload accompanies note_updated, note_deleted, note_shared and
// note_unshared events. ActorID is the user whose request caused the event.
type NoteEventPayload struct {
	NoteID  string `json:"note_id"`
	Title   string `json:"title"`
	ActorID string `json:"actor_id"`
}

type CommentEventPayload struct {
	NoteID    string `json:"note_id"`
	CommentID string `json:"comment_id"`
	ActorID   string `json:"actor_id"`
	Content   string `json:"content"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	var payloadBytes json.RawMessage
	if payload != nil {
		bytes, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		payloadBytes = bytes
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Payload:   payloadBytes,
	}, nil
}

func (m *Message) UnmarshalPayload(v interface{}) error {
	if m.Payload == nil {
		return nil
	}
	return json.Unmarshal(m.Payload, v)
}
