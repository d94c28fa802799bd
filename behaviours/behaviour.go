package behaviours

import (
	"context"

	"github.com/luvnft/memeo/chain"
	"github.com/luvnft/memeo/config"
	"github.com/luvnft/memeo/core"
	"github.com/luvnft/memeo/ledger"
	"github.com/luvnft/memeo/social"
)

// Context carries everything a behaviour may touch during one round:
// configuration, the read-only synchronized state from the round driver,
// the dedup ledger and the collaborator-backed engines. It is passed
// explicitly into every Act call; there are no ambient globals.
type Context struct {
	Params config.Params
	Sync   core.SynchronizedData

	Ledger    *ledger.Ledger
	Social    *social.Engine
	Chain     *chain.Builder
	ChainNode chain.LedgerAPI
}

// Behaviour is one round's worth of agent logic. Act reads the round
// context, performs its side effects through the collaborators and returns
// the outcome event plus an optional payload for the consensus layer.
// Behaviours run strictly sequentially; no two Act calls overlap.
type Behaviour interface {
	Name() string
	Act(ctx context.Context, rc *Context) (core.Event, string)
}
