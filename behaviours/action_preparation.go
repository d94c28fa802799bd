package behaviours

import (
	"context"
	"log"

	"github.com/luvnft/memeo/core"
)

// ActionPreparation prepares the safe transaction hash for the decided
// token action, or runs the post-action bookkeeping once the round driver
// reports a finalized transaction.
type ActionPreparation struct{}

func (b *ActionPreparation) Name() string { return "action_preparation" }

func (b *ActionPreparation) Act(ctx context.Context, rc *Context) (core.Event, string) {
	if rc.Sync.TokenAction == nil {
		log.Println("No token action to prepare")
		return core.EventError, ""
	}

	// The action already settled on-chain: only bookkeeping remains.
	if rc.Sync.FinalTxHash != "" {
		if err := rc.Chain.PostAction(ctx, *rc.Sync.TokenAction, rc.Sync.FinalTxHash); err != nil {
			return core.EventError, ""
		}
		return core.EventDone, ""
	}

	txHash, err := rc.Chain.BuildActionTx(ctx, *rc.Sync.TokenAction)
	if err != nil {
		log.Printf("Could not prepare the %s transaction: %v", rc.Sync.TokenAction.Action, err)
		return core.EventError, ""
	}
	return core.EventDone, txHash
}
