package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public PokeAPI endpoint
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// Client fetches pokemon data from the PokeAPI
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new PokeAPI client
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type listResponse struct {
	Results []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"results"`
}

type pokemonResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
}

// SeedEntry is one fetched catalog row before insertion
type SeedEntry struct {
	ID       int
	Name     string
	ImageURL string
	Types    []string
}

// FetchGeneration fetches the first limit pokemon. Any failure aborts
// the whole fetch so the caller never inserts a partial catalog.
func (c *Client) FetchGeneration(ctx context.Context, limit int) ([]SeedEntry, error) {
	var list listResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/pokemon?limit=%d", c.baseURL, limit), &list); err != nil {
		return nil, fmt.Errorf("failed to fetch pokemon index: %w", err)
	}

	entries := make([]SeedEntry, 0, len(list.Results))
	for _, r := range list.Results {
		var p pokemonResponse
		if err := c.getJSON(ctx, r.URL, &p); err != nil {
			return nil, fmt.Errorf("failed to fetch pokemon %q: %w", r.Name, err)
		}

		imageURL := p.Sprites.Other.OfficialArtwork.FrontDefault
		if imageURL == "" {
			imageURL = p.Sprites.FrontDefault
		}

		types := make([]string, 0, len(p.Types))
		for _, t := range p.Types {
			types = append(types, t.Type.Name)
		}

		entries = append(entries, SeedEntry{
			ID:       p.ID,
			Name:     capitalize(p.Name),
			ImageURL: imageURL,
			Types:    types,
		})
	}
	return entries, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
