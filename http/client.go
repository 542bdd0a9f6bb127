// Package http provides HTTP-based implementations of the confrag source
// interfaces: a Confluence REST API client and a plain page fetcher for
// static web content.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/asjoberg/confrag"
)

// DefaultPageSize is the number of results requested per listing call.
const DefaultPageSize = 50

// Expansion fields requested from the API. The listing call stays cheap;
// the detail call asks for everything the export needs.
const (
	listExpand   = "version"
	detailExpand = "body.storage,ancestors,version,space,metadata.labels"
	spaceExpand  = "description,homepage"
)

// Ensure Client implements confrag.ContentService at compile time.
var _ confrag.ContentService = (*Client)(nil)

// Client talks to the Confluence REST API using bearer token authentication.
type Client struct {
	baseURL  string
	token    string
	client   *http.Client
	pageSize int
	limiter  confrag.RequestLimiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.client = hc }
}

// WithPageSize sets the listing page size. Defaults to DefaultPageSize.
func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithLimiter sets a request limiter applied before every API call.
func WithLimiter(l confrag.RequestLimiter) ClientOption {
	return func(c *Client) { c.limiter = l }
}

// NewClient creates a Confluence REST API client for the given instance.
func NewClient(baseURL, token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  trimTrailingSlash(baseURL),
		token:    token,
		client:   &http.Client{Timeout: 30 * time.Second},
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// get performs an authenticated GET against a REST endpoint and decodes the
// JSON response into v.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, v any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	u := c.baseURL + "/rest/api/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return confrag.Errorf(confrag.EUNAUTHORIZED, "API rejected credentials (HTTP %d)", resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return confrag.Errorf(confrag.ENOTFOUND, "resource %q not found", endpoint)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, u)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// Space retrieves metadata about a space.
func (c *Client) Space(ctx context.Context, key string) (*confrag.Space, error) {
	if key == "" {
		return nil, confrag.Errorf(confrag.EINVALID, "space key required")
	}

	params := url.Values{}
	params.Set("expand", spaceExpand)

	var body spaceBody
	if err := c.get(ctx, "space/"+key, params, &body); err != nil {
		return nil, err
	}

	space := &confrag.Space{
		Key:  body.Key,
		Name: body.Name,
	}
	if body.Description != nil && body.Description.Plain != nil {
		space.Description = body.Description.Plain.Value
	}
	if body.Homepage != nil {
		space.HomepageID = body.Homepage.ID
	}
	return space, nil
}

// ListPages enumerates all current pages in a space by paginating the
// content listing endpoint with an increasing offset. Listing stops at the
// first page that is empty or shorter than the requested page size. Any
// page request failure aborts the listing; partial listings are not
// returned.
func (c *Client) ListPages(ctx context.Context, key string) ([]confrag.PageSummary, error) {
	if key == "" {
		return nil, confrag.Errorf(confrag.EINVALID, "space key required")
	}

	var all []confrag.PageSummary
	start := 0

	for {
		params := url.Values{}
		params.Set("spaceKey", key)
		params.Set("type", "page")
		params.Set("status", "current")
		params.Set("expand", listExpand)
		params.Set("start", strconv.Itoa(start))
		params.Set("limit", strconv.Itoa(c.pageSize))

		var body listBody
		if err := c.get(ctx, "content", params, &body); err != nil {
			return nil, fmt.Errorf("listing pages at offset %d: %w", start, err)
		}

		if len(body.Results) == 0 {
			break
		}

		for _, r := range body.Results {
			all = append(all, confrag.PageSummary{ID: r.ID, Title: r.Title})
		}

		if len(body.Results) < c.pageSize {
			break
		}
		start += c.pageSize
	}

	return all, nil
}

// FetchPage retrieves the full representation of a page. The storage-format
// body is returned as-is; converting it to plain text is the caller's
// concern. A page without a body yields an empty StorageHTML.
func (c *Client) FetchPage(ctx context.Context, id string) (*confrag.Page, error) {
	if id == "" {
		return nil, confrag.Errorf(confrag.EINVALID, "page ID required")
	}

	params := url.Values{}
	params.Set("expand", detailExpand)

	var body contentBody
	if err := c.get(ctx, "content/"+id, params, &body); err != nil {
		return nil, err
	}

	page := &confrag.Page{
		ID:           body.ID,
		Title:        body.Title,
		URL:          c.baseURL + "/pages/viewpage.action?pageId=" + body.ID,
		DownloadedAt: time.Now().UTC(),
	}
	if body.Space != nil {
		page.SpaceKey = body.Space.Key
	}
	if body.Body != nil && body.Body.Storage != nil {
		page.StorageHTML = body.Body.Storage.Value
	}
	for _, a := range body.Ancestors {
		page.Ancestors = append(page.Ancestors, confrag.Ancestor{ID: a.ID, Title: a.Title})
	}
	if body.Version != nil {
		page.Version = body.Version.Number
		if body.Version.By != nil {
			page.Author = body.Version.By.DisplayName
		}
		if body.Version.When != "" {
			when, err := time.Parse(time.RFC3339, body.Version.When)
			if err != nil {
				return nil, fmt.Errorf("parsing version timestamp for page %s: %w", body.ID, err)
			}
			page.CreatedAt = when
			page.ModifiedAt = when
		}
	}
	if body.Metadata != nil && body.Metadata.Labels != nil {
		for _, l := range body.Metadata.Labels.Results {
			page.Labels = append(page.Labels, l.Name)
		}
	}

	return page, nil
}

// Response body shapes for the subset of the Confluence REST API in use.

type listBody struct {
	Results []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"results"`
}

type contentBody struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Space *struct {
		Key string `json:"key"`
	} `json:"space"`
	Body *struct {
		Storage *struct {
			Value string `json:"value"`
		} `json:"storage"`
	} `json:"body"`
	Ancestors []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"ancestors"`
	Version *struct {
		Number int    `json:"number"`
		When   string `json:"when"`
		By     *struct {
			DisplayName string `json:"displayName"`
		} `json:"by"`
	} `json:"version"`
	Metadata *struct {
		Labels *struct {
			Results []struct {
				Name string `json:"name"`
			} `json:"results"`
		} `json:"labels"`
	} `json:"metadata"`
}

type spaceBody struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description *struct {
		Plain *struct {
			Value string `json:"value"`
		} `json:"plain"`
	} `json:"description"`
	Homepage *struct {
		ID string `json:"id"`
	} `json:"homepage"`
}
