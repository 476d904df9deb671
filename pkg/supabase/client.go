// Package supabase is a minimal PostgREST/GoTrue client covering the
// operations the willow backend needs.
package supabase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnavailable wraps transport-level failures (connection refused,
// timeout) so callers can distinguish an unreachable project from a
// query rejection.
var ErrUnavailable = errors.New("supabase unreachable")

// Client talks to a Supabase project's REST and auth endpoints.
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// NewClient creates a client authenticated with the service role key.
func NewClient(url, serviceKey string) *Client {
	return &Client{
		URL:        url,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do builds and executes a REST request. An empty userToken falls back
// to the service key; a user JWT enables row-level security.
func (c *Client) do(method, url string, params map[string]any, payload any, prefer, userToken string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}

	if len(params) > 0 {
		q := req.URL.Query()
		for key, value := range params {
			q.Add(key, fmt.Sprintf("%v", value))
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("apikey", c.ServiceKey)
	if userToken != "" {
		req.Header.Set("Authorization", "Bearer "+userToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.ServiceKey)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("supabase error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/rest/v1/%s", c.URL, table)
}

// Query fetches rows from a table using PostgREST filter parameters.
func (c *Client) Query(table string, params map[string]any) ([]byte, error) {
	return c.QueryWithToken(table, params, "")
}

// QueryWithToken fetches rows with an optional user JWT for RLS.
func (c *Client) QueryWithToken(table string, params map[string]any, userToken string) ([]byte, error) {
	return c.do(http.MethodGet, c.tableURL(table), params, nil, "", userToken)
}

// Insert inserts one record (or a slice of records) and returns the
// created representation.
func (c *Client) Insert(table string, data any) ([]byte, error) {
	return c.do(http.MethodPost, c.tableURL(table), nil, data, "return=representation", "")
}

// Upsert inserts or updates records. onConflict names the columns used
// for conflict detection, e.g. "user_id,date".
func (c *Client) Upsert(table string, data any, onConflict string) ([]byte, error) {
	params := map[string]any{"on_conflict": onConflict}
	return c.do(http.MethodPost, c.tableURL(table), params, data,
		"return=representation,resolution=merge-duplicates", "")
}

// Update patches the record with the given id.
func (c *Client) Update(table, id string, data any) ([]byte, error) {
	params := map[string]any{"id": "eq." + id}
	return c.do(http.MethodPatch, c.tableURL(table), params, data, "return=representation", "")
}

// UpdateWhere patches all records matching the filter parameters.
func (c *Client) UpdateWhere(table string, params map[string]any, data any) ([]byte, error) {
	return c.do(http.MethodPatch, c.tableURL(table), params, data, "return=representation", "")
}

// Delete removes the record with the given id.
func (c *Client) Delete(table, id string) error {
	params := map[string]any{"id": "eq." + id}
	_, err := c.do(http.MethodDelete, c.tableURL(table), params, nil, "", "")
	return err
}

// DeleteWhere removes all records matching the filter parameters.
func (c *Client) DeleteWhere(table string, params map[string]any) error {
	_, err := c.do(http.MethodDelete, c.tableURL(table), params, nil, "", "")
	return err
}

// User is the subset of the Supabase auth user the backend cares about.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// VerifyToken checks a user JWT against the auth endpoint and returns
// the authenticated user.
func (c *Client) VerifyToken(token string) (*User, error) {
	url := fmt.Sprintf("%s/auth/v1/user", c.URL)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("token verification failed (status %d): %s", resp.StatusCode, string(body))
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}
