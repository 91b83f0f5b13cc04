package amqp

import (
	"testing"
	"time"
)

func TestTransactionCreatedMessageRoundTrip(t *testing.T) {
	msg := NewTransactionCreatedMessage("txn-1", "user-1")
	if msg.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := TransactionCreatedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.TransactionID != "txn-1" || got.UserID != "user-1" {
		t.Fatalf("unexpected message: %+v", got)
	}
	if !got.Timestamp.Equal(msg.Timestamp.Truncate(time.Nanosecond)) {
		t.Fatalf("timestamp drifted: %v vs %v", got.Timestamp, msg.Timestamp)
	}
}

func TestTransactionCreatedMessageFromJSONInvalid(t *testing.T) {
	if _, err := TransactionCreatedMessageFromJSON([]byte("not-json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
