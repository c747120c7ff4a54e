package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the hosted platform over its REST surface. One Client is
// built in main and injected everywhere; it is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ RowStore = (*Client)(nil)
var _ SessionAuth = (*Client)(nil)
var _ BlobStore = (*Client)(nil)

// New builds a Client for the platform at baseURL using the project API key.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	return req, nil
}

// apiError reads a failed response into *Error.
func apiError(resp *http.Response) error {
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
		Desc    string `json:"error_description"`
	}
	_ = json.Unmarshal(raw, &payload)
	msg := payload.Message
	if msg == "" {
		msg = payload.Msg
	}
	if msg == "" {
		msg = payload.Desc
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	return &Error{Status: resp.StatusCode, Message: msg}
}

// ---- RowStore ----

func (c *Client) tablePath(table string, q SelectQuery) string {
	v := url.Values{}
	if len(q.Columns) > 0 {
		v.Set("select", strings.Join(q.Columns, ","))
	}
	for _, f := range q.Filters {
		v.Set(f.Column, "eq."+f.Value)
	}
	if q.OrderBy != "" {
		dir := "desc"
		if q.Ascending {
			dir = "asc"
		}
		v.Set("order", q.OrderBy+"."+dir)
	}
	path := "/rest/v1/" + table
	if enc := v.Encode(); enc != "" {
		path += "?" + enc
	}
	return path
}

func (c *Client) Select(ctx context.Context, table string, q SelectQuery, dest any) error {
	req, err := c.newRequest(ctx, http.MethodGet, c.tablePath(table, q), nil)
	if err != nil {
		return err
	}
	if q.HasRange {
		req.Header.Set("Range-Unit", "items")
		req.Header.Set("Range", fmt.Sprintf("%d-%d", q.From, q.To))
	}
	if q.Single {
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(dest)
}

func (c *Client) Count(ctx context.Context, table string) (int, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/rest/v1/"+table+"?select=id", nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Prefer", "count=exact")
	req.Header.Set("Range-Unit", "items")
	req.Header.Set("Range", "0-0")
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, apiError(resp)
	}
	defer resp.Body.Close()
	// Content-Range looks like "0-0/42" ("*/0" when empty).
	cr := resp.Header.Get("Content-Range")
	idx := strings.LastIndex(cr, "/")
	if idx < 0 {
		return 0, fmt.Errorf("backend: malformed Content-Range %q", cr)
	}
	total, err := strconv.Atoi(cr[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("backend: malformed Content-Range %q", cr)
	}
	return total, nil
}

func (c *Client) write(ctx context.Context, method, path string, prefer string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, method, path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", prefer)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}
	resp.Body.Close()
	return nil
}

func (c *Client) Insert(ctx context.Context, table string, rows any) error {
	return c.write(ctx, http.MethodPost, "/rest/v1/"+table, "return=minimal", rows)
}

func (c *Client) Update(ctx context.Context, table string, patch map[string]any, filters ...Filter) error {
	if len(filters) == 0 {
		return errors.New("backend: update without filters")
	}
	v := url.Values{}
	for _, f := range filters {
		v.Set(f.Column, "eq."+f.Value)
	}
	path := "/rest/v1/" + table + "?" + v.Encode()
	return c.write(ctx, http.MethodPatch, path, "return=minimal", patch)
}

func (c *Client) Upsert(ctx context.Context, table string, row any) error {
	return c.write(ctx, http.MethodPost, "/rest/v1/"+table, "resolution=merge-duplicates,return=minimal", row)
}

// ---- SessionAuth ----

func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", bytes.NewReader(body))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return Session{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Session{}, apiError(resp)
	}
	defer resp.Body.Close()
	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
		User        struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Session{}, err
	}
	return Session{
		AccessToken: payload.AccessToken,
		Email:       payload.User.Email,
		ExpiresAt:   time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second),
	}, nil
}

func (c *Client) SignOut(ctx context.Context, token string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}
	resp.Body.Close()
	return nil
}

func (c *Client) GetSession(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrNoSession
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/v1/user", nil)
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.http.Do(req)
	if err != nil {
		return Session{}, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		resp.Body.Close()
		return Session{}, ErrNoSession
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Session{}, apiError(resp)
	}
	defer resp.Body.Close()
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Session{}, err
	}
	return Session{AccessToken: token, Email: payload.Email}, nil
}

// ---- BlobStore ----

func (c *Client) Upload(ctx context.Context, bucket, filename, contentType string, r io.Reader) error {
	path := "/storage/v1/object/" + bucket + "/" + filename
	req, err := c.newRequest(ctx, http.MethodPost, path, r)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}
	resp.Body.Close()
	return nil
}

func (c *Client) PublicURL(bucket, filename string) string {
	return c.baseURL + "/storage/v1/object/public/" + bucket + "/" + filename
}
