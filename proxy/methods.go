package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Backend method handlers. Each maps envelope kwargs onto one HTTP call
// against the mirror backend.

func (d *Dispatcher) createAgent(ctx context.Context, kwargs map[string]interface{}) (interface{}, error) {
	return d.postJSON(ctx, "/api/agents/", kwargs["agent_data"])
}

func (d *Dispatcher) readAgent(ctx context.Context, kwargs map[string]interface{}) (interface{}, error) {
	agentID, err := stringArg(kwargs, "agent_id")
	if err != nil {
		return nil, err
	}
	return d.getJSON(ctx, "/api/agents/"+agentID)
}

func (d *Dispatcher) createTwitterAccount(ctx context.Context, kwargs map[string]interface{}) (interface{}, error) {
	agentID, err := stringArg(kwargs, "agent_id")
	if err != nil {
		return nil, err
	}
	return d.postJSON(ctx, fmt.Sprintf("/api/agents/%s/twitter_accounts/", agentID), kwargs["account_data"])
}

func (d *Dispatcher) getTwitterAccount(ctx context.Context, kwargs map[string]interface{}) (interface{}, error) {
	userID, err := stringArg(kwargs, "twitter_user_id")
	if err != nil {
		return nil, err
	}
	return d.getJSON(ctx, "/api/twitter_accounts/"+userID)
}

func (d *Dispatcher) createTweet(ctx context.Context, kwargs map[string]interface{}) (interface{}, error) {
	agentID, err := stringArg(kwargs, "agent_id")
	if err != nil {
		return nil, err
	}
	userID, err := stringArg(kwargs, "twitter_user_id")
	if err != nil {
		return nil, err
	}
	return d.postJSON(ctx, fmt.Sprintf("/api/agents/%s/accounts/%s/tweets/", agentID, userID), kwargs["tweet_data"])
}

func (d *Dispatcher) readTweet(ctx context.Context, kwargs map[string]interface{}) (interface{}, error) {
	tweetID, err := stringArg(kwargs, "tweet_id")
	if err != nil {
		return nil, err
	}
	return d.getJSON(ctx, "/api/tweets/"+tweetID)
}

func (d *Dispatcher) createInteraction(ctx context.Context, kwargs map[string]interface{}) (interface{}, error) {
	agentID, err := stringArg(kwargs, "agent_id")
	if err != nil {
		return nil, err
	}
	userID, err := stringArg(kwargs, "twitter_user_id")
	if err != nil {
		return nil, err
	}
	return d.postJSON(ctx, fmt.Sprintf("/api/agents/%s/accounts/%s/interactions/", agentID, userID), kwargs["interaction_data"])
}

func (d *Dispatcher) getJSON(ctx context.Context, path string) (interface{}, error) {
	return d.doJSON(ctx, http.MethodGet, path, nil)
}

func (d *Dispatcher) postJSON(ctx context.Context, path string, body interface{}) (interface{}, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %v", err)
	}
	return d.doJSON(ctx, http.MethodPost, path, payload)
}

func (d *Dispatcher) doJSON(ctx context.Context, method, path string, payload []byte) (interface{}, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("access-token", d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("backend error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var decoded interface{}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode backend response: %v", err)
	}
	return decoded, nil
}

func stringArg(kwargs map[string]interface{}, key string) (string, error) {
	v, ok := kwargs[key]
	if !ok {
		return "", fmt.Errorf("missing argument %q", key)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	case float64:
		return fmt.Sprintf("%.0f", s), nil
	}
	return "", fmt.Errorf("argument %q is not a string", key)
}
