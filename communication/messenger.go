package communication

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Messenger encapsulates a NATS connection shared by the collaborator
// clients and the backend proxy.
type Messenger struct {
	NC *nats.Conn
}

// NewMessenger creates a new instance of Messenger.
func NewMessenger(url string) (*Messenger, error) {
	nc, err := nats.Connect(url,
		nats.Timeout(10*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Messenger{NC: nc}, nil
}

// Request publishes a JSON payload on the subject and waits for the reply.
func (m *Messenger) Request(ctx context.Context, subject string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	msg, err := m.NC.RequestWithContext(ctx, subject, data)
	if err != nil {
		return nil, err
	}
	return msg.Data, nil
}

// Close gracefully closes the connection.
func (m *Messenger) Close() {
	m.NC.Close()
}
