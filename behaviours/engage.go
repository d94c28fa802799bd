package behaviours

import (
	"context"
	"log"

	"github.com/luvnft/memeo/core"
)

// EngageTweets runs the engagement pass over the other agents' latest
// tweets.
type EngageTweets struct{}

func (b *EngageTweets) Name() string { return "engage_tweets" }

func (b *EngageTweets) Act(ctx context.Context, rc *Context) (core.Event, string) {
	if rc.Params.SkipEngagement {
		log.Println("Skipping engagement")
		return core.EventDone, ""
	}

	// Suspended accounts are pre-removed by the social collaborator.
	handles, err := rc.Social.Client.FilterSuspended(ctx, rc.Sync.AgentHandles)
	if err != nil {
		log.Printf("Could not filter suspended users: %v", err)
		return core.EventError, ""
	}
	log.Printf("Not suspended users: %v", handles)

	persona := rc.Sync.Persona
	if persona == "" {
		persona = rc.Params.Persona
	}

	event, _ := rc.Social.Engage(ctx, persona, handles)
	return event, ""
}

// ActionTweet posts the pre-composed announcement tweet of a finished
// token action. The text is published as-is and is not written to the
// tweet log.
type ActionTweet struct{}

func (b *ActionTweet) Name() string { return "action_tweet" }

func (b *ActionTweet) Act(ctx context.Context, rc *Context) (core.Event, string) {
	if rc.Sync.TokenAction == nil || rc.Sync.TokenAction.Tweet == "" {
		log.Println("No pending action tweet")
		return core.EventError, ""
	}
	return rc.Social.Announce(ctx, rc.Sync.TokenAction.Tweet), ""
}
