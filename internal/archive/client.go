// Package archive talks to the Archive.org APIs the toolkit depends on:
// item search, metadata reads, metadata patch writes, and file operations.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/punkarchives/metafix/internal/models"
)

// Credentials holds the Archive.org S3-style keys and the uploader account
// email used to scope searches.
type Credentials struct {
	AccessKey string
	SecretKey string
	Email     string
}

// CredentialsFromEnv reads credentials from the environment (the root
// command loads .env first).
func CredentialsFromEnv() (Credentials, error) {
	creds := Credentials{
		AccessKey: os.Getenv("ARCHIVE_ACCESS_KEY"),
		SecretKey: os.Getenv("ARCHIVE_SECRET_KEY"),
		Email:     os.Getenv("ARCHIVE_EMAIL"),
	}

	if creds.AccessKey == "" || creds.SecretKey == "" {
		return Credentials{}, fmt.Errorf("missing Archive.org credentials: set ARCHIVE_ACCESS_KEY and ARCHIVE_SECRET_KEY")
	}

	return creds, nil
}

// Client is an authenticated Archive.org API client.
type Client struct {
	BaseURL    string
	S3URL      string
	creds      Credentials
	httpClient *http.Client
}

// NewClient creates a client against the public Archive.org endpoints.
func NewClient(creds Credentials) *Client {
	return &Client{
		BaseURL: "https://archive.org",
		S3URL:   "https://s3.us.archive.org",
		creds:   creds,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// searchPageSize is the advancedsearch page size. Archive.org caps rows per
// request, so SearchItems pages until a short page comes back.
const searchPageSize = 1000

var searchFields = []string{
	"identifier", "title", "creator", "description", "date",
	"publicdate", "mediatype", "collection", "subject", "venue", "band",
	"fb", "facebook",
}

// SearchItems fetches every item uploaded by the account, paging through the
// advancedsearch API.
func (c *Client) SearchItems(ctx context.Context) ([]models.Record, error) {
	if c.creds.Email == "" {
		return nil, fmt.Errorf("uploader email required: set ARCHIVE_EMAIL")
	}

	var all []models.Record
	start := 0

	for {
		page, err := c.searchPage(ctx, start)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		all = append(all, page...)
		if len(page) < searchPageSize {
			break
		}
		start += searchPageSize
	}

	return all, nil
}

func (c *Client) searchPage(ctx context.Context, start int) ([]models.Record, error) {
	params := url.Values{}
	params.Set("q", "uploader:"+c.creds.Email)
	params.Set("fl", strings.Join(searchFields, ","))
	params.Set("rows", fmt.Sprint(searchPageSize))
	params.Set("start", fmt.Sprint(start))
	params.Set("output", "json")
	params.Set("sort", "addeddate desc")

	searchURL := fmt.Sprintf("%s/advancedsearch.php?%s", c.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.SetBasicAuth(c.creds.AccessKey, c.creds.SecretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("search returned status %d: %s", resp.StatusCode, string(body))
	}

	var searchResp struct {
		Response struct {
			Docs []models.Record `json:"docs"`
		} `json:"response"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return searchResp.Response.Docs, nil
}

// GetMetadata fetches an item's current metadata. Multi-valued fields are
// collapsed to their first value; the toolkit treats all reviewed fields as
// scalars.
func (c *Client) GetMetadata(ctx context.Context, identifier string) (map[string]string, error) {
	metadataURL := fmt.Sprintf("%s/metadata/%s", c.BaseURL, url.PathEscape(identifier))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metadataURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata fetch returned status %d", resp.StatusCode)
	}

	var metaResp struct {
		Metadata map[string]any `json:"metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&metaResp); err != nil {
		return nil, fmt.Errorf("failed to decode metadata response: %w", err)
	}

	metadata := make(map[string]string, len(metaResp.Metadata))
	for field, value := range metaResp.Metadata {
		switch v := value.(type) {
		case string:
			metadata[field] = v
		case []any:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok {
					metadata[field] = s
				}
			}
		}
	}

	return metadata, nil
}

// LiveValue returns the currently stored value of one field, or empty when
// the field is absent.
func (c *Client) LiveValue(ctx context.Context, identifier, field string) (string, error) {
	metadata, err := c.GetMetadata(ctx, identifier)
	if err != nil {
		return "", err
	}
	return metadata[field], nil
}

// StoredDate returns the item's current date field.
func (c *Client) StoredDate(ctx context.Context, identifier string) (string, error) {
	return c.LiveValue(ctx, identifier, "date")
}

// ModifyMetadata applies a partial metadata update. Each changed field is
// submitted as its own -patch-<field> form parameter; absent fields are left
// untouched.
func (c *Client) ModifyMetadata(ctx context.Context, identifier string, updates map[string]string) error {
	metadataURL := fmt.Sprintf("%s/metadata/%s", c.BaseURL, url.PathEscape(identifier))

	form := url.Values{}
	form.Set("target", "metadata")
	form.Set("-target", "metadata")
	for field, value := range updates {
		form.Set("-patch-"+field, value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, metadataURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.creds.AccessKey, c.creds.SecretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit update: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("update returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode update response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("update rejected: %s", result.Error)
	}

	return nil
}

// ListFiles returns the names of all files stored in an item.
func (c *Client) ListFiles(ctx context.Context, identifier string) ([]string, error) {
	filesURL := fmt.Sprintf("%s/metadata/%s/files", c.BaseURL, url.PathEscape(identifier))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, filesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create files request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file list returned status %d", resp.StatusCode)
	}

	var filesResp struct {
		Result []struct {
			Name string `json:"name"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&filesResp); err != nil {
		return nil, fmt.Errorf("failed to decode file list: %w", err)
	}

	names := make([]string, 0, len(filesResp.Result))
	for _, f := range filesResp.Result {
		names = append(names, f.Name)
	}

	return names, nil
}

// DeleteFile removes a single file from an item via the S3-compatible API.
func (c *Client) DeleteFile(ctx context.Context, identifier, filename string) error {
	deleteURL := fmt.Sprintf("%s/%s/%s", c.S3URL, url.PathEscape(identifier), url.PathEscape(filename))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("LOW %s:%s", c.creds.AccessKey, c.creds.SecretKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
