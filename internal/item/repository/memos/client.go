package memos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const maxErrorBody = 4 << 10

// Client is the HTTP wrapper for the Memos REST API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates a new Memos HTTP client.
func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		httpClient:  &http.Client{},
	}
}

// APIError is a non-2xx answer from Memos.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("memos API error %d: %s", e.StatusCode, e.Body)
}

// CreateMemo creates a new memo via POST /api/v1/memos.
func (c *Client) CreateMemo(ctx context.Context, req CreateMemoRequest) (*Memo, error) {
	var memo Memo
	if err := c.do(ctx, http.MethodPost, "/api/v1/memos", req, &memo); err != nil {
		return nil, fmt.Errorf("create memo: %w", err)
	}
	return &memo, nil
}

// GetMemo fetches a single memo by resource name ("memos/{uid}").
func (c *Client) GetMemo(ctx context.Context, name string) (*Memo, error) {
	var memo Memo
	if err := c.do(ctx, http.MethodGet, "/api/v1/"+name, nil, &memo); err != nil {
		return nil, fmt.Errorf("get memo: %w", err)
	}
	return &memo, nil
}

// UpdateMemoContent replaces the content of a memo.
func (c *Client) UpdateMemoContent(ctx context.Context, name, content string) (*Memo, error) {
	var memo Memo
	path := "/api/v1/" + name + "?updateMask=content"
	if err := c.do(ctx, http.MethodPatch, path, UpdateMemoRequest{Content: content}, &memo); err != nil {
		return nil, fmt.Errorf("update memo: %w", err)
	}
	return &memo, nil
}

// ListMemos returns one page of memos carrying tag.
func (c *Client) ListMemos(ctx context.Context, tag string, pageSize int, pageToken string) (*ListMemosResponse, error) {
	q := url.Values{}
	q.Set("pageSize", fmt.Sprint(pageSize))
	if tag != "" {
		q.Set("filter", fmt.Sprintf("tag in [%q]", tag))
	}
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}

	var out ListMemosResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/memos?"+q.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("list memos: %w", err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call memos API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// CreateMemoRequest is the body for POST /api/v1/memos.
type CreateMemoRequest struct {
	Content    string `json:"content"`
	Visibility string `json:"visibility"`
}

// UpdateMemoRequest is the body for PATCH /api/v1/memos/{uid}.
type UpdateMemoRequest struct {
	Content string `json:"content"`
}

// ListMemosResponse is one page of GET /api/v1/memos.
type ListMemosResponse struct {
	Memos         []Memo `json:"memos"`
	NextPageToken string `json:"nextPageToken"`
}

// Memo is the Memos API memo object.
type Memo struct {
	Name       string `json:"name"`
	UID        string `json:"uid"`
	Content    string `json:"content"`
	Visibility string `json:"visibility"`
	CreateTime string `json:"createTime"`
	UpdateTime string `json:"updateTime"`
}
