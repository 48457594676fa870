package freesound

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jscyril/freesound_cli/api"
	"github.com/jscyril/freesound_cli/internal/config"
	fserrors "github.com/jscyril/freesound_cli/pkg/errors"
)

// searchFields is the field selection sent with every search request.
// Only a subset is decoded into api.Sound; the rest is requested so the
// payload matches what the detail panel may grow into.
const searchFields = "id,username,created,name,category,subcategory,tags,description,license," +
	"is_remix,was_remixed,pack,is_geotagged,type,duration,bitdepth,bitrate,samplerate," +
	"filesize,channels,md5,num_downloads,avg_rating,num_ratings,num_comments,previews"

// Client talks to the FreeSound v2 API.
type Client struct {
	cfg  *config.Config
	http *http.Client
}

// NewClient creates a client from the given configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{},
	}
}

type searchResponse struct {
	Count   int         `json:"count"`
	Results []api.Sound `json:"results"`
}

// Search performs a text search and returns one page of results. Every
// call is a fresh remote round-trip; nothing is cached.
func (c *Client) Search(ctx context.Context, query string, page int) (*api.ResultPage, error) {
	if c.cfg.APIKey == "" {
		return nil, fserrors.ErrUnconfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.SearchTimeout)
	defer cancel()

	u, err := url.Parse(c.cfg.BaseURL + "/search/text/")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fserrors.ErrTransport, err)
	}
	q := u.Query()
	q.Set("query", query)
	q.Set("token", c.cfg.APIKey)
	q.Set("page_size", strconv.Itoa(c.cfg.PageSize))
	q.Set("page", strconv.Itoa(page))
	q.Set("fields", searchFields)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fserrors.ErrTransport, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fserrors.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %s", fserrors.ErrTransport, resp.Status)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", fserrors.ErrMalformedResponse, err)
	}

	return &api.ResultPage{
		Sounds:     payload.Results,
		Page:       page,
		TotalPages: TotalPages(payload.Count, c.cfg.PageSize),
		PageSize:   c.cfg.PageSize,
	}, nil
}

// FetchPreview retrieves a preview asset for playback. The credential is
// attached when configured; FreeSound serves previews without it too.
func (c *Client) FetchPreview(ctx context.Context, assetURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.PreviewTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fserrors.ErrFetchFailed, err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fserrors.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %s", fserrors.ErrFetchFailed, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fserrors.ErrFetchFailed, err)
	}
	return data, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Token "+c.cfg.APIKey)
	}
}

// TotalPages computes the page count for a match count: 0 when there are
// no matches, otherwise ceiling division by the page size.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}
