// ABOUTME: HTTP client for the content platform admin API
// ABOUTME: Attaches the bearer credential and normalizes error shapes

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"folio-admin/internal/entity"
	"folio-admin/internal/session"
	"folio-admin/internal/validate"
)

// ErrUnauthorized is returned when the backend rejects the credential.
// By the time a caller sees it the stored token pair is already cleared.
var ErrUnauthorized = errors.New("session expired")

// APIError is a normalized backend failure
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error: %s", e.Message)
}

// IsUnauthorized reports whether the error is a 401 rejection
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// Client is the API client for the content platform backend
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        *session.Store
	onUnauthorized func()
}

// New creates a client for the given base URL. The session store is
// read for the bearer token on every request and cleared on any 401.
func New(baseURL string, sess *session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		session: sess,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// OnUnauthorized registers the credential-invalidated callback,
// invoked after the stored tokens are cleared by a 401 response.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// Session returns the session store backing this client
func (c *Client) Session() *session.Store {
	return c.session
}

// do issues one request and decodes a JSON response into out (if non-nil)
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.session.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Credential wipe happens here, for every endpoint alike
		_ = c.session.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, method, path, bytes.NewReader(data), "application/json", out)
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse extracts a best-effort message from the body
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	message := ""
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
		if errResp.Message != "" {
			message = errResp.Message
		} else if errResp.Error != "" {
			message = errResp.Error
		}
	}
	if message == "" {
		message = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: message}
}

// envelope is the common {data: ...} wrapper most endpoints use
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// unwrap peels a {data: ...} envelope when present
func unwrap(raw json.RawMessage) json.RawMessage {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return raw
}

func decodeRecord(raw json.RawMessage) (entity.Record, error) {
	var rec entity.Record
	if err := json.Unmarshal(unwrap(raw), &rec); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	return rec, nil
}

func decodeRecords(raw json.RawMessage) ([]entity.Record, error) {
	var recs []entity.Record
	if err := json.Unmarshal(unwrap(raw), &recs); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	return recs, nil
}

// LoginResult is the successful /auth/login response
type LoginResult struct {
	User         entity.Record `json:"user"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
}

// Login authenticates and persists the returned token pair
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var raw json.RawMessage
	payload := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", payload, &raw); err != nil {
		return nil, err
	}

	var result LoginResult
	if err := json.Unmarshal(unwrap(raw), &result); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	if result.AccessToken == "" {
		return nil, fmt.Errorf("login response carried no access token")
	}

	if err := c.session.Save(result.AccessToken, result.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to store credentials: %w", err)
	}
	return &result, nil
}

// Logout clears the stored credential pair
func (c *Client) Logout() error {
	return c.session.Clear()
}

// Me fetches the authenticated admin's profile
func (c *Client) Me(ctx context.Context) (entity.Record, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/admin/me", nil, "", &raw); err != nil {
		return nil, err
	}
	return decodeRecord(raw)
}

// ListResult is one page of entities plus the server's totals
type ListResult struct {
	Rows       []entity.Record
	Total      int
	TotalPages int
}

// List fetches one page of an entity. The filter value is appended
// under the descriptor's filter parameter when both are set.
func (c *Client) List(ctx context.Context, d entity.Descriptor, page, limit int, filter string) (*ListResult, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("limit", fmt.Sprint(limit))
	if d.Filter != nil && filter != "" {
		q.Set(d.Filter.Param, filter)
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, d.BasePath()+"?"+q.Encode(), nil, "", &raw); err != nil {
		return nil, err
	}

	result, err := decodeList(raw)
	if err != nil {
		return nil, err
	}
	if result.TotalPages == 0 {
		result.TotalPages = entity.TotalPages(result.Total, limit)
	}
	return result, nil
}

// decodeList tolerates the list envelopes the backend uses:
// {data: [...], pagination: {total, totalPages}},
// {data: {results: [...], total, totalPages}}, and the
// unwrapped {results: [...], total, totalPages}.
func decodeList(raw json.RawMessage) (*ListResult, error) {
	var outer struct {
		Data       json.RawMessage `json:"data"`
		Results    []entity.Record `json:"results"`
		Total      int             `json:"total"`
		TotalPages int             `json:"totalPages"`
		Pagination *struct {
			Total      int `json:"total"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(raw, &outer); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	result := &ListResult{
		Rows:       outer.Results,
		Total:      outer.Total,
		TotalPages: outer.TotalPages,
	}
	if outer.Pagination != nil {
		result.Total = outer.Pagination.Total
		result.TotalPages = outer.Pagination.TotalPages
	}

	if len(outer.Data) > 0 {
		var rows []entity.Record
		if err := json.Unmarshal(outer.Data, &rows); err == nil {
			result.Rows = rows
			return result, nil
		}
		var inner struct {
			Results    []entity.Record `json:"results"`
			Total      int             `json:"total"`
			TotalPages int             `json:"totalPages"`
		}
		if err := json.Unmarshal(outer.Data, &inner); err != nil {
			return nil, fmt.Errorf("invalid response from backend: %w", err)
		}
		result.Rows = inner.Results
		result.Total = inner.Total
		result.TotalPages = inner.TotalPages
	}
	return result, nil
}

// Get fetches one record by identifier. Singleton entities ignore the
// identifier and read their single document.
func (c *Client) Get(ctx context.Context, d entity.Descriptor, id string) (entity.Record, error) {
	path := d.BasePath() + "/" + id + "/get"
	if d.Singleton {
		path = d.BasePath()
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, "", &raw); err != nil {
		return nil, err
	}
	return decodeRecord(raw)
}

// Save creates or updates a record: POST to the create path when id is
// empty, PUT to the update path otherwise. Multipart descriptors are
// encoded as structured form payloads; the rest go as JSON. Singleton
// entities always POST their full document.
func (c *Client) Save(ctx context.Context, d entity.Descriptor, id string, rec entity.Record) (entity.Record, error) {
	method := http.MethodPost
	path := d.CreatePath
	switch {
	case d.Singleton:
		path = d.BasePath()
	case id != "":
		method = http.MethodPut
		path = d.BasePath() + "/" + id + "/update"
	}

	var raw json.RawMessage
	if d.Multipart {
		body, contentType, err := validate.BuildForm(rec, d.Rules)
		if err != nil {
			return nil, fmt.Errorf("failed to encode form: %w", err)
		}
		if err := c.do(ctx, method, path, body, contentType, &raw); err != nil {
			return nil, err
		}
	} else {
		if err := c.doJSON(ctx, method, path, rec, &raw); err != nil {
			return nil, err
		}
	}
	return decodeRecord(raw)
}

// Delete removes one record: a bulk-shaped soft delete posts
// {ids: [id]}, a hard delete issues DELETE on the delete path.
func (c *Client) Delete(ctx context.Context, d entity.Descriptor, id string) error {
	if d.DeleteMode == entity.DeleteHard {
		prefix := d.DeletePath
		if prefix == "" {
			prefix = d.BasePath()
		}
		return c.do(ctx, http.MethodDelete, prefix+"/"+id, nil, "", nil)
	}
	return c.doJSON(ctx, http.MethodPost, d.BasePath()+"/delete", map[string][]string{"ids": {id}}, nil)
}

// DeleteMany soft-deletes a batch of records in one request
func (c *Client) DeleteMany(ctx context.Context, d entity.Descriptor, ids []string) error {
	if d.DeleteMode != entity.DeleteSoft {
		return fmt.Errorf("%s does not support bulk delete", d.Name)
	}
	return c.doJSON(ctx, http.MethodPost, d.BasePath()+"/delete", map[string][]string{"ids": ids}, nil)
}

// CreateTags bulk-creates tags and returns the created records
func (c *Client) CreateTags(ctx context.Context, tags []string) ([]entity.Record, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/tag/create", map[string][]string{"tags": tags}, &raw); err != nil {
		return nil, err
	}
	return decodeRecords(raw)
}

// SearchTags looks up tags matching the query for pickers
func (c *Client) SearchTags(ctx context.Context, query string) ([]entity.Record, error) {
	if query == "" {
		return nil, nil
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/tag?search="+url.QueryEscape(query), nil, "", &raw); err != nil {
		return nil, err
	}
	return decodeRecords(raw)
}

// SendMailInput is the newsletter dispatch request
type SendMailInput struct {
	Subject     string   `json:"subject"`
	Message     string   `json:"message"`
	UseTemplate bool     `json:"useTemplate"`
	SendToAll   bool     `json:"sendToAll"`
	Emails      []string `json:"emails"`
}

// SendNewsletter dispatches a newsletter to the selected subscribers
func (c *Client) SendNewsletter(ctx context.Context, input SendMailInput) error {
	return c.doJSON(ctx, http.MethodPost, "/newsletter/sendmail", input, nil)
}
