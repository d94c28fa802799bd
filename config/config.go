package config

import (
	"log"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Params holds the agent configuration consumed by the behaviours and
// collaborator clients. All values come from the environment (optionally
// via a .env file); missing values produce warnings and defaults, never a
// startup failure.
type Params struct {
	Persona             string
	AgentAddress        string
	ChainID             string
	SafeContractAddress string
	MemeFactoryAddress  string
	MinimumGasBalance   *big.Int
	SkipEngagement      bool
	BackendBaseURL      string
	BackendAPIKey       string
	NatsURL             string
	ProxySubject        string
	TwitterSubject      string
	ChainSubject        string
	AgentHandles        []string
	RoundInterval       time.Duration
	DataDir             string
	APIPort             int
}

func init() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	required := []string{
		"OPENAI_API_KEY",
		"SAFE_CONTRACT_ADDRESS",
		"MEME_FACTORY_ADDRESS",
	}

	for _, env := range required {
		if os.Getenv(env) == "" {
			log.Printf("Warning: %s environment variable not set\n", env)
		}
	}
}

// Load reads the agent parameters from the environment.
func Load() Params {
	return Params{
		Persona:             getEnv("AGENT_PERSONA", "a chaotic meme token degen"),
		AgentAddress:        os.Getenv("AGENT_ADDRESS"),
		ChainID:             getEnv("CHAIN_ID", "base"),
		SafeContractAddress: os.Getenv("SAFE_CONTRACT_ADDRESS"),
		MemeFactoryAddress:  os.Getenv("MEME_FACTORY_ADDRESS"),
		MinimumGasBalance:   getEnvBig("MINIMUM_GAS_BALANCE_WEI", big.NewInt(1_000_000_000_000_000)),
		SkipEngagement:      getEnvBool("SKIP_ENGAGEMENT", false),
		BackendBaseURL:      getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
		BackendAPIKey:       os.Getenv("BACKEND_API_KEY"),
		NatsURL:             getEnv("NATS_URL", "nats://localhost:4222"),
		ProxySubject:        getEnv("PROXY_SUBJECT", "memeo.backend.request"),
		TwitterSubject:      getEnv("TWITTER_SUBJECT", "memeo.twitter.request"),
		ChainSubject:        getEnv("CHAIN_SUBJECT", "memeo.chain.request"),
		AgentHandles:        getEnvList("AGENT_HANDLES"),
		RoundInterval:       getEnvDuration("ROUND_INTERVAL", 15*time.Minute),
		DataDir:             getEnv("DATA_DIR", "./data"),
		APIPort:             getEnvInt("API_PORT", 8080),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	handles := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			handles = append(handles, p)
		}
	}
	return handles
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getEnvBig(key string, fallback *big.Int) *big.Int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, ok := new(big.Int).SetString(v, 10)
	if !ok {
		log.Printf("Warning: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return n
}
