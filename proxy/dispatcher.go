package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Envelope is one inbound backend request: a method name from the closed
// dispatch table plus keyword arguments.
type Envelope struct {
	ID     string                 `json:"id"`
	Method string                 `json:"method"`
	Kwargs map[string]interface{} `json:"kwargs,omitempty"`
}

// Reply carries either the backend response or an error back to the
// requester, correlated by the envelope id.
type Reply struct {
	ID       string      `json:"id"`
	Response interface{} `json:"response,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// ErrUnknownMethod rejects envelopes whose method is outside the dispatch
// table.
var ErrUnknownMethod = errors.New("unknown backend method")

type handlerFunc func(ctx context.Context, kwargs map[string]interface{}) (interface{}, error)

// Dispatcher bridges inbound NATS envelopes to outbound HTTP calls against
// the mirror backend. Each request runs in its own goroutine; closing the
// dispatcher cancels all in-flight requests. Handler failures and panics
// become error-carrying replies, never a crash.
type Dispatcher struct {
	conn    *nats.Conn
	baseURL string
	apiKey  string
	client  *http.Client

	methods map[string]handlerFunc

	sub    *nats.Subscription
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher for the given backend base URL.
func NewDispatcher(conn *nats.Conn, baseURL, apiKey string) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		conn:    conn,
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
		ctx:     ctx,
		cancel:  cancel,
	}

	// Closed method table: every callable backend method is enumerated
	// here; anything else is ErrUnknownMethod.
	d.methods = map[string]handlerFunc{
		"create_agent":           d.createAgent,
		"read_agent":             d.readAgent,
		"create_twitter_account": d.createTwitterAccount,
		"get_twitter_account":    d.getTwitterAccount,
		"create_tweet":           d.createTweet,
		"read_tweet":             d.readTweet,
		"create_interaction":     d.createInteraction,
	}
	return d
}

// Start subscribes to the request subject and begins dispatching.
func (d *Dispatcher) Start(subject string) error {
	sub, err := d.conn.Subscribe(subject, d.handleMessage)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %v", subject, err)
	}
	d.sub = sub
	log.Printf("Backend proxy dispatching on %s", subject)
	return nil
}

// Close cancels all in-flight requests and stops the subscription.
func (d *Dispatcher) Close() {
	d.cancel()
	if d.sub != nil {
		if err := d.sub.Unsubscribe(); err != nil {
			log.Printf("Failed to unsubscribe: %v", err)
		}
	}
	d.wg.Wait()
}

func (d *Dispatcher) handleMessage(msg *nats.Msg) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		reply := d.Dispatch(d.ctx, msg.Data)
		data, err := json.Marshal(reply)
		if err != nil {
			log.Printf("Failed to encode reply: %v", err)
			return
		}
		if err := msg.Respond(data); err != nil {
			log.Printf("Failed to publish reply %s: %v", reply.ID, err)
		}
	}()
}

// Dispatch decodes one envelope, runs its handler and returns the reply.
func (d *Dispatcher) Dispatch(ctx context.Context, data []byte) (reply Reply) {
	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Reply{ID: uuid.NewString(), Error: fmt.Sprintf("malformed envelope: %v", err)}
	}
	if envelope.ID == "" {
		envelope.ID = uuid.NewString()
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered panic in %s handler: %v", envelope.Method, r)
			reply = Reply{ID: envelope.ID, Error: fmt.Sprintf("exception while calling backend service: %v", r)}
		}
	}()

	handler, ok := d.methods[envelope.Method]
	if !ok {
		return Reply{ID: envelope.ID, Error: fmt.Sprintf("%v: %s", ErrUnknownMethod, envelope.Method)}
	}

	response, err := handler(ctx, envelope.Kwargs)
	if err != nil {
		return Reply{ID: envelope.ID, Error: err.Error()}
	}
	return Reply{ID: envelope.ID, Response: response}
}
