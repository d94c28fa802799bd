package chain

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math/big"

	"github.com/luvnft/memeo/core"
	"github.com/luvnft/memeo/ledger"
)

const (
	// TxHashLength is the exact length of a raw safe transaction hash as
	// returned by the safe collaborator, "0x" prefix included.
	TxHashLength = 66

	// SafeGas is the safe_tx_gas used for every factory transaction.
	SafeGas = 0

	// Contract identifiers routed through the contract collaborator.
	MemeFactoryContractID = "meme_factory"
	GnosisSafeContractID  = "gnosis_safe"
)

// EmptyCallData is the sentinel marker for a call with no data; the safe
// hash format requires a byte string, never an absent field.
var EmptyCallData = []byte("0x")

// ErrUnknownAction rejects token actions outside the closed routing table.
var ErrUnknownAction = errors.New("unknown token action")

// Builder turns a TokenAction into a safe multisig transaction hash and
// performs the associated ledger bookkeeping.
type Builder struct {
	Caller ContractCaller
	Hasher SafeTxHasher
	Ledger *ledger.Ledger

	ChainID        string
	SafeAddress    string
	FactoryAddress string
}

// routeAction maps a token action onto its factory callable and keyword
// arguments. The table is a closed enumeration: unknown actions are a typed
// error, never a dynamic-dispatch fault.
func routeAction(action core.TokenAction) (string, map[string]interface{}, error) {
	callable := fmt.Sprintf("build_%s_tx", action.Action)

	switch action.Action {
	case core.ActionSummon:
		return callable, map[string]interface{}{
			"token_name":   action.TokenName,
			"token_ticker": action.TokenTicker,
			"token_supply": action.TokenSupply,
		}, nil
	case core.ActionHeart, core.ActionUnleash:
		return callable, map[string]interface{}{
			"meme_nonce": action.TokenNonce,
		}, nil
	case core.ActionCollect, core.ActionPurge:
		return callable, map[string]interface{}{
			"meme_address": action.TokenAddress,
		}, nil
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownAction, action.Action)
	}
}

// BuildActionTx prepares the safe transaction hash for a token action: it
// fetches the raw factory transaction, wraps it into a safe transaction and
// returns the encoded hash. Any missing piece fails the round with an empty
// hash; the caller maps that to a retry/error event.
func (b *Builder) BuildActionTx(ctx context.Context, action core.TokenAction) (string, error) {
	callable, kwargs, err := routeAction(action)
	if err != nil {
		return "", err
	}

	log.Printf("Preparing the %s transaction: kwargs=%v", action.Action, kwargs)

	response, err := b.Caller.Call(ctx, CallRequest{
		ContractID: MemeFactoryContractID,
		Callable:   callable,
		Address:    b.FactoryAddress,
		ChainID:    b.ChainID,
		Kwargs:     kwargs,
	})
	if err != nil {
		log.Printf("Error while building the %s tx: %v", action.Action, err)
		return "", err
	}
	if response.Kind != KindRawTransaction {
		log.Printf("Error while building the %s tx: unexpected response kind %q", action.Action, response.Kind)
		return "", fmt.Errorf("expected %s response, got %s", KindRawTransaction, response.Kind)
	}

	data, ok := dataBytes(response.Body)
	if !ok {
		log.Printf("Error while preparing the transaction: missing data bytes")
		return "", fmt.Errorf("raw transaction has no data")
	}
	log.Printf("Tx data is %s", hex.EncodeToString(data))

	value, err := actionValue(action)
	if err != nil {
		return "", err
	}

	safeTxHash, err := b.BuildSafeTxHash(ctx, b.FactoryAddress, value, data)
	if err != nil {
		return "", err
	}

	// Optimistic design: the hearted nonce is recorded before the
	// transaction is confirmed on-chain. A failed transaction leaves a
	// false-positive dedup entry; the confirmed write happens in PostAction.
	if action.Action == core.ActionHeart {
		if err := b.Ledger.AddHeart(action.TokenNonce); err != nil {
			log.Printf("Failed to store hearted token: %v", err)
		}
	}

	return safeTxHash, nil
}

// actionValue computes the native value attached to the transaction:
// the requested amount (smallest unit) for summon and heart, zero for
// everything else.
func actionValue(action core.TokenAction) (*big.Int, error) {
	if action.Action != core.ActionSummon && action.Action != core.ActionHeart {
		return big.NewInt(0), nil
	}
	if action.Amount == "" {
		return big.NewInt(0), nil
	}
	value, ok := new(big.Int).SetString(action.Amount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid action amount %q", action.Amount)
	}
	return value, nil
}

// BuildSafeTxHash obtains the raw safe transaction hash for (to, value,
// data) and encodes the full safe transaction payload. The raw hash must
// have exactly TxHashLength characters; anything else fails the round.
func (b *Builder) BuildSafeTxHash(ctx context.Context, to string, value *big.Int, data []byte) (string, error) {
	log.Printf("Preparing Safe transaction [%s] value=%s", b.SafeAddress, value)

	response, err := b.Hasher.GetRawHash(ctx, b.SafeAddress, to, value, data, SafeGas, b.ChainID)
	if err != nil {
		log.Printf("Couldn't get safe tx hash: %v", err)
		return "", err
	}
	if response.Kind != KindState {
		log.Printf("Couldn't get safe tx hash: unexpected response kind %q", response.Kind)
		return "", fmt.Errorf("expected %s response, got %s", KindState, response.Kind)
	}

	txHash, _ := response.Body["tx_hash"].(string)
	if len(txHash) != TxHashLength {
		log.Printf("Invalid safe tx hash %q was returned", txHash)
		return "", fmt.Errorf("invalid safe tx hash %q", txHash)
	}

	// Strip the 0x before packing.
	txHash = txHash[2:]

	safeTxHash := packSafeTxHash(txHash, value, SafeGas, to, data)
	log.Printf("Safe transaction hash is %s", safeTxHash)
	return safeTxHash, nil
}

// packSafeTxHash encodes the safe transaction fields into the hex payload
// verified on-chain. Field order and packing are fixed: raw hash, 32-byte
// value, 32-byte gas, to address, call data.
func packSafeTxHash(txHash string, value *big.Int, safeTxGas uint64, to string, data []byte) string {
	return txHash +
		fmt.Sprintf("%064x", value) +
		fmt.Sprintf("%064x", safeTxGas) +
		to +
		hex.EncodeToString(data)
}

// PostAction runs once a prior round reports the final on-chain transaction
// hash: it reads the token nonce from the deployment event and performs the
// confirmed bookkeeping writes.
func (b *Builder) PostAction(ctx context.Context, action core.TokenAction, finalTxHash string) error {
	log.Printf("The %s action has finished", action.Action)

	nonce, err := b.tokenNonce(ctx, finalTxHash)
	if err != nil {
		log.Printf("Token nonce is none: %v", err)
		return err
	}

	if action.Action == core.ActionSummon {
		token := core.SummonedToken{
			TokenName:   action.TokenName,
			TokenTicker: action.TokenTicker,
			TotalSupply: action.TokenSupply,
			TokenNonce:  nonce,
		}
		if err := b.Ledger.AddSummonedToken(token); err != nil {
			log.Printf("Failed to store summoned token: %v", err)
		} else {
			log.Println("Wrote latest token to db")
		}
	}

	if action.Action == core.ActionSummon || action.Action == core.ActionHeart {
		// Confirmed write; a duplicate of the optimistic entry is tolerated.
		if err := b.Ledger.AddHeart(nonce); err != nil {
			log.Printf("Failed to store hearted token: %v", err)
		} else {
			log.Println("Stored hearted token")
		}
	}

	return nil
}

// tokenNonce reads the deployed token nonce from the factory deployment
// event of the finalized transaction.
func (b *Builder) tokenNonce(ctx context.Context, finalTxHash string) (int64, error) {
	response, err := b.Caller.Call(ctx, CallRequest{
		ContractID: MemeFactoryContractID,
		Callable:   "get_token_data",
		Address:    b.FactoryAddress,
		ChainID:    b.ChainID,
		Kwargs:     map[string]interface{}{"tx_hash": finalTxHash},
	})
	if err != nil {
		return 0, err
	}
	if response.Kind != KindState {
		return 0, fmt.Errorf("could not get the token data: unexpected response kind %q", response.Kind)
	}

	nonce, ok := nonceValue(response.Body["token_nonce"])
	if !ok {
		return 0, fmt.Errorf("deployment event carries no token nonce")
	}
	log.Printf("Token nonce is %d", nonce)
	return nonce, nil
}

func nonceValue(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}
