package behaviours

import (
	"context"
	"encoding/json"
	"log"

	"github.com/luvnft/memeo/core"
)

// CollectFeedback gathers replies to the agent's latest tweet, ranked by
// engagement, as the payload for the next decision round.
type CollectFeedback struct{}

func (b *CollectFeedback) Name() string { return "collect_feedback" }

func (b *CollectFeedback) Act(ctx context.Context, rc *Context) (core.Event, string) {
	feedback, err := rc.Social.Feedback(ctx)
	if err != nil {
		log.Printf("Could not retrieve any replies due to an API error: %v", err)
		return core.EventError, ""
	}

	// Map keys marshal in sorted order, which keeps the payload canonical
	// across agents.
	payload, err := json.Marshal(feedback)
	if err != nil {
		log.Printf("Failed to encode feedback: %v", err)
		return core.EventError, ""
	}

	return core.EventDone, string(payload)
}
