package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luvnft/memeo/ai"
	"github.com/luvnft/memeo/api"
	"github.com/luvnft/memeo/behaviours"
	"github.com/luvnft/memeo/chain"
	"github.com/luvnft/memeo/communication"
	"github.com/luvnft/memeo/config"
	"github.com/luvnft/memeo/core"
	"github.com/luvnft/memeo/ledger"
	"github.com/luvnft/memeo/proxy"
	"github.com/luvnft/memeo/social"
	"github.com/luvnft/memeo/storage"
	"github.com/luvnft/memeo/utils"
	"github.com/spf13/cobra"
)

var (
	runDataDir string
	runAPIPort int
)

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the agent",
	Long:  `Run the agent round loop together with its API server and backend proxy.`,
	Run: func(cmd *cobra.Command, args []string) {
		runAgent()
	},
}

func init() {
	RunCmd.Flags().StringVar(&runDataDir, "data-dir", "", "Data directory (default: DATA_DIR env)")
	RunCmd.Flags().IntVar(&runAPIPort, "api-port", 0, "API server port (default: API_PORT env)")
}

func runAgent() {
	params := config.Load()
	if runDataDir != "" {
		params.DataDir = runDataDir
	}
	if runAPIPort != 0 {
		params.APIPort = runAPIPort
	}

	store, err := storage.GetDBStore(params.DataDir)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer storage.CloseAll()

	led := ledger.New(store)

	messenger, err := communication.NewMessenger(params.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer messenger.Close()
	log.Printf("Connected to NATS at %s", params.NatsURL)

	dispatcher := proxy.NewDispatcher(messenger.NC, params.BackendBaseURL, params.BackendAPIKey)
	if err := dispatcher.Start(params.ProxySubject); err != nil {
		log.Fatalf("Failed to start backend proxy: %v", err)
	}
	defer dispatcher.Close()

	node := chain.NewNATSNode(messenger, params.ChainSubject)
	engine := social.NewEngine(
		social.NewNATSClient(messenger, params.TwitterSubject),
		ai.NewOpenAI(ai.DefaultLLMConfig()),
		led,
	)
	builder := &chain.Builder{
		Caller:         node,
		Hasher:         node,
		Ledger:         led,
		ChainID:        params.ChainID,
		SafeAddress:    params.SafeContractAddress,
		FactoryAddress: params.MemeFactoryAddress,
	}

	port := utils.FindAvailableAPIPort(params.APIPort)
	if port != params.APIPort {
		log.Printf("Port %d is taken, using %d", params.APIPort, port)
	}
	api.StartServer(port, led)
	log.Printf("API server listening on :%d", port)

	rc := &behaviours.Context{
		Params: params,
		Sync: core.SynchronizedData{
			Persona:             params.Persona,
			SafeContractAddress: params.SafeContractAddress,
			AgentHandles:        params.AgentHandles,
		},
		Ledger:    led,
		Social:    engine,
		Chain:     builder,
		ChainNode: node,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := behaviours.DefaultRegistry()
	for {
		runRound(ctx, registry, rc)
		select {
		case <-ctx.Done():
			log.Println("Shutting down")
			return
		case <-time.After(params.RoundInterval):
		}
	}
}

// roundOrder is the fixed behaviour sequence of one agent round. The
// action rounds only run when the round driver has synchronized a pending
// token action.
var roundOrder = []string{
	"engage_tweets",
	"collect_feedback",
}

var actionRounds = []string{
	"check_funds",
	"action_preparation",
	"action_tweet",
}

func runRound(ctx context.Context, registry *behaviours.Registry, rc *behaviours.Context) {
	names := roundOrder
	if rc.Sync.TokenAction != nil {
		names = append(append([]string{}, roundOrder...), actionRounds...)
	}

	for _, name := range names {
		if ctx.Err() != nil {
			return
		}
		event, payload := runBehaviour(ctx, registry, name, rc)
		if event == core.EventNoFunds {
			communication.BroadcastEvent(communication.EventNoFunds, map[string]interface{}{"round": name})
			log.Println("Agent is out of gas funds, skipping the rest of the round")
			return
		}
		if name == "action_preparation" && event == core.EventDone && payload != "" {
			communication.BroadcastEvent(communication.EventActionPrepared, map[string]interface{}{
				"action":  rc.Sync.TokenAction.Action,
				"tx_hash": payload,
			})
		}
	}
}

func runBehaviour(ctx context.Context, registry *behaviours.Registry, name string, rc *behaviours.Context) (core.Event, string) {
	b, err := registry.Get(name)
	if err != nil {
		log.Printf("Round error: %v", err)
		return core.EventError, ""
	}

	communication.BroadcastEvent(communication.EventRoundStarted, map[string]interface{}{"round": name})
	event, payload := b.Act(ctx, rc)
	log.Printf("Round %s finished with event %s", name, event)
	communication.BroadcastEvent(communication.EventRoundFinished, map[string]interface{}{
		"round": name,
		"event": event,
	})
	return event, payload
}
