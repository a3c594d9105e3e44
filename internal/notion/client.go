package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client communicates with the document store's HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
}

const apiVersion = "2022-06-28"

func NewClient(baseURL, apiKey string, pageSize int) *Client {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx response from the store.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("store api status %d: %s", e.StatusCode, e.Message)
}

// RateLimited reports whether the store asked us to back off.
func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// childrenPage is one page of a block's child list.
type childrenPage struct {
	Results    []*Block `json:"results"`
	HasMore    bool     `json:"has_more"`
	NextCursor string   `json:"next_cursor"`
}

// Children returns the complete ordered child list of a block, following the
// pagination cursor until the store reports no more results. Pages must be
// fetched sequentially: each cursor comes from the prior response.
func (c *Client) Children(ctx context.Context, blockID string) ([]*Block, error) {
	var all []*Block
	cursor := ""
	for {
		page, err := c.listChildren(ctx, blockID, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		if !page.HasMore {
			return all, nil
		}
		cursor = page.NextCursor
	}
}

func (c *Client) listChildren(ctx context.Context, blockID, cursor string) (*childrenPage, error) {
	u := c.baseURL + "/v1/blocks/" + url.PathEscape(blockID) + "/children?page_size=" + strconv.Itoa(c.pageSize)
	if cursor != "" {
		u += "&start_cursor=" + url.QueryEscape(cursor)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var page childrenPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode children: %w", err)
	}
	return &page, nil
}

// createPageRequest is the body for POST /v1/pages.
type createPageRequest struct {
	Parent     pageParent     `json:"parent"`
	Properties pageProperties `json:"properties"`
	Children   []Block        `json:"children,omitempty"`
}

type pageParent struct {
	PageID string `json:"page_id"`
}

type pageProperties struct {
	Title titleProperty `json:"title"`
}

type titleProperty struct {
	Title []RichText `json:"title"`
}

// CreatePage creates a new page under parentID with up to one batch of initial
// blocks and returns the new page's id.
func (c *Client) CreatePage(ctx context.Context, parentID, title string, blocks []Block) (string, error) {
	body, err := json.Marshal(createPageRequest{
		Parent:     pageParent{PageID: parentID},
		Properties: pageProperties{Title: titleProperty{Title: []RichText{Span(title)}}},
		Children:   blocks,
	})
	if err != nil {
		return "", fmt.Errorf("marshal page: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/pages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", apiError(resp)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode page: %w", err)
	}
	return created.ID, nil
}

// AppendBlocks appends one batch of blocks to a page's child list. The store
// preserves append order as document order, so callers must submit batches
// strictly in sequence.
func (c *Client) AppendBlocks(ctx context.Context, pageID string, blocks []Block) error {
	body, err := json.Marshal(map[string]any{"children": blocks})
	if err != nil {
		return fmt.Errorf("marshal blocks: %w", err)
	}
	u := c.baseURL + "/v1/blocks/" + url.PathEscape(pageID) + "/children"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPatch, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("append blocks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", apiVersion)
}

func apiError(resp *http.Response) error {
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
}

// Close releases any resources (currently a no-op).
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
