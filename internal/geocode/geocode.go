// Package geocode resolves postal addresses to coordinates through the
// public Nominatim API. Projects carry optional latitude/longitude used by
// the map view; when a write provides an address without coordinates the
// handlers try a lookup and silently move on if it fails. Nominatim asks for
// an identifying User-Agent, hence the custom header.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Result is a resolved coordinate pair.
type Result struct {
	Latitude  float64
	Longitude float64
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Lookup geocodes a free-form address. It returns (nil, nil) when the
// service finds no match; callers treat that the same as a lookup error and
// leave the coordinates empty.
func (c *Client) Lookup(ctx context.Context, address string) (*Result, error) {
	u := fmt.Sprintf("%s/search?format=json&q=%s", c.BaseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "solar-crm/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var hits []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return nil, err
	}
	lon, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return nil, err
	}
	return &Result{Latitude: lat, Longitude: lon}, nil
}
