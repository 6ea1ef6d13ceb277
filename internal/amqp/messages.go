package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/bolsas_app/internal/dto"
)

// ImportBatchMessage carries drafts produced by an importer for one user.
// The whole batch is posted in a single call.
type ImportBatchMessage struct {
	BatchID   string                        `json:"batchID"`
	UserID    string                        `json:"userID"`
	Drafts    []dto.TransactionDraftRequest `json:"drafts"`
	Timestamp time.Time                     `json:"timestamp"`
}

// NewImportBatchMessage creates a message stamped with the current time.
func NewImportBatchMessage(batchID, userID string, drafts []dto.TransactionDraftRequest) *ImportBatchMessage {
	return &ImportBatchMessage{
		BatchID:   batchID,
		UserID:    userID,
		Drafts:    drafts,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ImportBatchMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ImportBatchMessageFromJSON decodes a message and rejects batches that can
// never be posted.
func ImportBatchMessageFromJSON(data []byte) (*ImportBatchMessage, error) {
	var msg ImportBatchMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.UserID == "" {
		return nil, errors.New("userID is required")
	}
	if len(msg.Drafts) == 0 {
		return nil, fmt.Errorf("batch %q has no drafts", msg.BatchID)
	}
	return &msg, nil
}
