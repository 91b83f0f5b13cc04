package amqp

import (
	"encoding/json"
	"time"
)

// TransactionCreatedMessage announces a newly recorded transaction. It
// carries only identifiers; consumers fetch the full record from storage.
type TransactionCreatedMessage struct {
	TransactionID string    `json:"transaction_id"`
	UserID        string    `json:"user_id"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewTransactionCreatedMessage(transactionID, userID string) *TransactionCreatedMessage {
	return &TransactionCreatedMessage{
		TransactionID: transactionID,
		UserID:        userID,
		Timestamp:     time.Now(),
	}
}

func (m *TransactionCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionCreatedMessageFromJSON(data []byte) (*TransactionCreatedMessage, error) {
	var msg TransactionCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
