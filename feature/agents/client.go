package agents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"valortracker/feature/matches/models"
)

// ErrCatalogUnavailable wraps every failure to fetch the remote catalog.
var ErrCatalogUnavailable = errors.New("agent catalog unavailable")

// Source fetches the remote agent catalog.
type Source interface {
	Agents(ctx context.Context) ([]models.Agent, error)
}

// Client reads agents from valorant-api.com.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a catalog client.
func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout()}}
}

type remoteAgent struct {
	UUID        string `json:"uuid"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	DisplayIcon string `json:"displayIcon"`
	Playable    bool   `json:"isPlayableCharacter"`
	Role        *struct {
		DisplayName string `json:"displayName"`
	} `json:"role"`
}

// Agents returns every playable agent.
func (c *Client) Agents(ctx context.Context) ([]models.Agent, error) {
	q := url.Values{}
	q.Set("isPlayableCharacter", "true")
	if c.cfg.Language != "" {
		q.Set("language", c.cfg.Language)
	}
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/agents?" + q.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", ErrCatalogUnavailable, resp.StatusCode)
	}

	var body struct {
		Data []remoteAgent `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCatalogUnavailable, err)
	}

	out := make([]models.Agent, 0, len(body.Data))
	for _, a := range body.Data {
		if !a.Playable || a.UUID == "" {
			continue
		}
		agent := models.Agent{
			UUID:        a.UUID,
			Name:        a.DisplayName,
			Description: a.Description,
			Icon:        a.DisplayIcon,
		}
		if a.Role != nil {
			agent.Role = a.Role.DisplayName
		}
		out = append(out, agent)
	}
	return out, nil
}
