package behaviours

import (
	"context"
	"log"

	"github.com/luvnft/memeo/core"
)

// CheckFunds verifies the agent can pay for gas before a chain action is
// attempted.
type CheckFunds struct{}

func (b *CheckFunds) Name() string { return "check_funds" }

func (b *CheckFunds) Act(ctx context.Context, rc *Context) (core.Event, string) {
	balance, err := rc.ChainNode.NativeBalance(ctx, rc.Params.AgentAddress, rc.Params.ChainID)
	if err != nil {
		log.Printf("Could not retrieve the native balance: %v", err)
		return core.EventError, ""
	}

	if balance == nil || balance.Sign() == 0 {
		return core.EventNoFunds, ""
	}

	if balance.Cmp(rc.Params.MinimumGasBalance) < 0 {
		log.Printf("Agent has insufficient funds for gas: %s < %s", balance, rc.Params.MinimumGasBalance)
		return core.EventNoFunds, ""
	}

	return core.EventDone, ""
}
