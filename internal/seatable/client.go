package seatable

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Rows are fetched in pages of this size until the server returns a short page.
const pageLimit = 1000

// Client talks to a SeaTable server on behalf of one API token.
type Client struct {
	ServerURL  string
	APIToken   string
	httpClient *http.Client
}

// NewClient creates a SeaTable client for the given server and API token.
func NewClient(serverURL, apiToken string) *Client {
	return &Client{
		ServerURL: strings.TrimRight(serverURL, "/"),
		APIToken:  apiToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Base is an authenticated handle to one SeaTable base, obtained by
// exchanging the long-lived API token for a temporary access token.
type Base struct {
	client      *Client
	AccessToken string
	UUID        string
}

// Auth exchanges the API token for a base access token and the base UUID.
func (c *Client) Auth(ctx context.Context) (*Base, error) {
	endpoint := fmt.Sprintf("%s/api/v2.1/dtable/app-access-token/", c.ServerURL)

	var result struct {
		AccessToken string `json:"access_token"`
		DtableUUID  string `json:"dtable_uuid"`
	}
	if err := c.getJSON(ctx, endpoint, nil, "Token "+c.APIToken, &result); err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if result.AccessToken == "" || result.DtableUUID == "" {
		return nil, fmt.Errorf("authentication response missing access token or base UUID")
	}

	return &Base{
		client:      c,
		AccessToken: result.AccessToken,
		UUID:        result.DtableUUID,
	}, nil
}

// Metadata describes a base: its tables and their columns.
type Metadata struct {
	Tables []Table `json:"tables"`
}

// Table is one table in a base.
type Table struct {
	ID      string   `json:"_id"`
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Column is one column definition in a table.
type Column struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Metadata fetches the base structure.
func (b *Base) Metadata(ctx context.Context) (*Metadata, error) {
	endpoint := fmt.Sprintf("%s/api-gateway/api/v2/dtables/%s/metadata/", b.client.ServerURL, b.UUID)

	var result struct {
		Metadata Metadata `json:"metadata"`
	}
	if err := b.client.getJSON(ctx, endpoint, nil, "Bearer "+b.AccessToken, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch base metadata: %w", err)
	}
	return &result.Metadata, nil
}

// Table finds a table by name. No fuzzy matching.
func (m *Metadata) Table(name string) (*Table, error) {
	for i := range m.Tables {
		if m.Tables[i].Name == name {
			return &m.Tables[i], nil
		}
	}
	return nil, fmt.Errorf("table %q not found in base", name)
}

// ImageColumn returns the first image-type column of the table.
func (t *Table) ImageColumn() (*Column, error) {
	for i := range t.Columns {
		if t.Columns[i].Type == "image" {
			return &t.Columns[i], nil
		}
	}
	return nil, fmt.Errorf("table %q has no image column", t.Name)
}

// Rows fetches all rows of a view in view order, following start/limit
// pagination until exhausted. Row values are re-keyed from column keys to
// column names using the table's metadata; keys without a matching column
// (like _id) pass through unchanged.
func (b *Base) Rows(ctx context.Context, table *Table, viewName string) ([]Row, error) {
	endpoint := fmt.Sprintf("%s/api-gateway/api/v2/dtables/%s/rows/", b.client.ServerURL, b.UUID)

	names := make(map[string]string, len(table.Columns))
	for _, col := range table.Columns {
		names[col.Key] = col.Name
	}

	var rows []Row
	for start := 0; ; start += pageLimit {
		params := url.Values{
			"table_name": {table.Name},
			"start":      {strconv.Itoa(start)},
			"limit":      {strconv.Itoa(pageLimit)},
		}
		if viewName != "" {
			params.Set("view_name", viewName)
		}

		var result struct {
			Rows []map[string]any `json:"rows"`
		}
		if err := b.client.getJSON(ctx, endpoint, params, "Bearer "+b.AccessToken, &result); err != nil {
			return nil, fmt.Errorf("failed to fetch rows for view %q: %w", viewName, err)
		}

		for _, raw := range result.Rows {
			row := make(Row, len(raw))
			for key, value := range raw {
				if name, ok := names[key]; ok {
					row[name] = value
				} else {
					row[key] = value
				}
			}
			rows = append(rows, row)
		}

		if len(result.Rows) < pageLimit {
			break
		}
	}

	return rows, nil
}

// DownloadLink resolves a base-relative asset path (like
// "images/2024-02/file.jpg") to a signed, directly downloadable URL.
func (c *Client) DownloadLink(ctx context.Context, assetPath string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/v2.1/dtable/app-download-link/", c.ServerURL)
	params := url.Values{"path": {assetPath}}

	var result struct {
		DownloadLink string `json:"download_link"`
	}
	if err := c.getJSON(ctx, endpoint, params, "Token "+c.APIToken, &result); err != nil {
		return "", fmt.Errorf("failed to resolve download link for %s: %w", assetPath, err)
	}
	if result.DownloadLink == "" {
		return "", fmt.Errorf("empty download link for %s", assetPath)
	}
	return result.DownloadLink, nil
}

// ResolveAssetURL turns an image reference from a row into a downloadable
// URL. SeaTable asset URLs
// (https://server/workspace/XX/asset/{uuid}/images/2024-02/file.jpg) are
// converted to signed download links; anything else is returned as-is.
func (c *Client) ResolveAssetURL(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid image URL %q: %w", rawURL, err)
	}

	path, err := url.PathUnescape(parsed.Path)
	if err != nil {
		path = parsed.Path
	}

	marker := "/asset/"
	idx := strings.Index(path, marker)
	if idx < 0 {
		return rawURL, nil
	}

	// Everything after /asset/{uuid}/ is the base-relative asset path.
	afterAsset := path[idx+len(marker):]
	parts := strings.SplitN(afterAsset, "/", 2)
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("could not parse asset path from %q", rawURL)
	}

	return c.DownloadLink(ctx, parts[1])
}

// getJSON performs an authenticated GET and decodes the JSON response.
// Non-2xx responses are reported verbatim, including the response body.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, authorization string, out any) error {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", authorization)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("SeaTable API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
