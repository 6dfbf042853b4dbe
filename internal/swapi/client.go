// Package swapi fetches the people, vehicles and planets collections from
// the Star Wars API.
package swapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"holocron/internal/pkg/httpretry"
)

type Person struct {
	Name      string `json:"name"`
	Height    string `json:"height"`
	Gender    string `json:"gender"`
	HairColor string `json:"hair_color"`
	EyeColor  string `json:"eye_color"`
}

type Vehicle struct {
	Name         string `json:"name"`
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
	VehicleClass string `json:"vehicle_class"`
}

type Planet struct {
	Name       string `json:"name"`
	Diameter   string `json:"diameter"`
	Population string `json:"population"`
	Terrain    string `json:"terrain"`
}

type page[T any] struct {
	Count   int    `json:"count"`
	Next    string `json:"next"`
	Results []T    `json:"results"`
}

// StatusError is returned when SWAPI answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("swapi: GET %s returned %d: %s", e.URL, e.StatusCode, e.Body)
}

type Client struct {
	baseURL  string
	http     httpretry.HTTPDoer
	maxPages int
}

// NewClient returns a client rooted at baseURL (e.g. https://swapi.dev/api).
// At most maxPages pages are read per collection; zero or less means one.
func NewClient(baseURL string, doer httpretry.HTTPDoer, maxPages int) *Client {
	if doer == nil {
		doer = httpretry.NewRetryClient(nil, 0)
	}
	if maxPages <= 0 {
		maxPages = 1
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     doer,
		maxPages: maxPages,
	}
}

func (c *Client) People(ctx context.Context) ([]Person, error) {
	return fetchAll[Person](ctx, c, "people")
}

func (c *Client) Vehicles(ctx context.Context) ([]Vehicle, error) {
	return fetchAll[Vehicle](ctx, c, "vehicles")
}

func (c *Client) Planets(ctx context.Context) ([]Planet, error) {
	return fetchAll[Planet](ctx, c, "planets")
}

func fetchAll[T any](ctx context.Context, c *Client, collection string) ([]T, error) {
	var all []T
	url := c.baseURL + "/" + collection
	for i := 0; i < c.maxPages && url != ""; i++ {
		var p page[T]
		if err := c.getJSON(ctx, url, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Results...)
		url = p.Next
	}
	return all, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("swapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("swapi: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{URL: url, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("swapi: decode %s: %w", url, err)
	}
	return nil
}
