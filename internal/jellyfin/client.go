package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/franz/playlist-curator/internal/util"
)

const (
	// tokenHeader carries the API key on every request
	tokenHeader = "X-MediaBrowser-Token"

	// pageLimit caps one catalog listing request; personal libraries
	// stay well below it
	pageLimit = 2000
)

// Client talks to a Jellyfin server's REST API. It is the black-box
// source of catalog items mirrored into the local store.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Jellyfin API client for the given server
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// User is a Jellyfin account
type User struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// Item is one entry of the server's item tree
type Item struct {
	ID          string `json:"Id"`
	Name        string `json:"Name"`
	Path        string `json:"Path"`
	Type        string `json:"Type"`
	ParentID    string `json:"ParentId"`
	AlbumArtist string `json:"AlbumArtist"`
}

// itemsPage is the envelope of every /Items-style listing
type itemsPage struct {
	Items            []Item `json:"Items"`
	TotalRecordCount int    `json:"TotalRecordCount"`
}

// Users lists the server's accounts
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/Users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Views lists a user's top-level libraries (music, movies, ...)
func (c *Client) Views(ctx context.Context, userID string) ([]Item, error) {
	var page itemsPage
	if err := c.get(ctx, "/Users/"+url.PathEscape(userID)+"/Views", nil, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// Albums lists every music album under a library, recursively
func (c *Client) Albums(ctx context.Context, userID, libraryID string) ([]Item, error) {
	params := url.Values{
		"ParentId":         {libraryID},
		"UserId":           {userID},
		"Recursive":        {"true"},
		"Fields":           {"Path,Name,Type,ParentId"},
		"SortBy":           {"SortName"},
		"SortOrder":        {"Ascending"},
		"IncludeItemTypes": {"MusicAlbum"},
		"Limit":            {fmt.Sprint(pageLimit)},
	}

	var page itemsPage
	if err := c.get(ctx, "/Items", params, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// Tracks lists the audio items directly under one album
func (c *Client) Tracks(ctx context.Context, albumID string) ([]Item, error) {
	params := url.Values{
		"ParentId":         {albumID},
		"Recursive":        {"false"},
		"Fields":           {"Path,Name,Type,ParentId"},
		"SortBy":           {"SortName"},
		"SortOrder":        {"Ascending"},
		"IncludeItemTypes": {"Audio"},
		"Limit":            {fmt.Sprint(pageLimit)},
	}

	var page itemsPage
	if err := c.get(ctx, "/Items", params, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// get executes one API request and decodes the JSON response into out
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("no API key configured: %w", util.ErrInvalidConfig)
	}

	urlStr := c.baseURL + path
	if len(params) > 0 {
		urlStr += "?" + params.Encode()
	}

	util.DebugLog("Jellyfin API: GET %s", urlStr)

	req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(tokenHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("Jellyfin rejected the API key (401)")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
