package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/figx/pkg/cache"
	"github.com/matzehuels/figx/pkg/codec"
)

// DefaultBaseURL is the remote design service's API origin.
const DefaultBaseURL = "https://api.figma.com"

// Client is the thin HTTP wrapper over the remote design service's REST
// API. It is stateless aside from its HTTP transport and base URL; callers
// supply the access token per call so a single Client can serve multiple
// remotes with different tokens.
type Client struct {
	Doer    codec.HTTPDoer
	BaseURL string
}

// NewClient constructs a Client. doer may be *http.Client or any test
// double satisfying codec.HTTPDoer.
func NewClient(doer codec.HTTPDoer) *Client {
	base := DefaultBaseURL
	return &Client{Doer: doer, BaseURL: base}
}

// FetchNodes retrieves every container's node tree and flattens it into a
// name-keyed NodeIndex (spec §4.5 FetchRemote: "walk the returned tree to
// materialise an index mapping node_name -> {id, hash, uses_raster_paints}").
// Requests are chunked to MaxBatchIDs container ids per call.
func (c *Client) FetchNodes(ctx context.Context, fileKey, accessToken string, containerIDs []string) (*NodeIndex, error) {
	var containers []Node
	for _, batch := range chunkIDs(containerIDs, MaxBatchIDs) {
		var resp nodesResponse
		if err := c.get(ctx, accessToken, fmt.Sprintf("/v1/files/%s/nodes", url.PathEscape(fileKey)), url.Values{
			"ids":      {strings.Join(batch, ",")},
			"geometry": {"paths"},
		}, &resp); err != nil {
			return nil, err
		}
		for _, id := range batch {
			if w, ok := resp.Nodes[id]; ok {
				containers = append(containers, w.Document)
			}
		}
	}
	return buildIndex(containers), nil
}

// ExportImages requests rendered-image URLs for ids at the given scale and
// format, batching requests to MaxBatchIDs ids. The returned map holds one
// entry per id that resolved to a non-null URL.
func (c *Client) ExportImages(ctx context.Context, fileKey, accessToken string, ids []string, scale float64, format string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, batch := range chunkIDs(ids, MaxBatchIDs) {
		var resp imagesResponse
		if err := c.get(ctx, accessToken, fmt.Sprintf("/v1/images/%s", url.PathEscape(fileKey)), url.Values{
			"ids":    {strings.Join(batch, ",")},
			"scale":  {strconv.FormatFloat(scale, 'f', -1, 64)},
			"format": {format},
		}, &resp); err != nil {
			return nil, err
		}
		if resp.Err != "" {
			return nil, fmt.Errorf("figma: export error: %s", resp.Err)
		}
		for id, u := range resp.Images {
			if u == nil {
				return nil, &NullExportError{NodeID: id}
			}
			out[id] = *u
		}
	}
	return out, nil
}

// User is the subset of the remote design service's "me" response figx
// needs to confirm an access token resolves to an account.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Handle string `json:"handle"`
	ImgURL string `json:"img_url"`
}

// WhoAmI calls the remote service's account endpoint to verify accessToken,
// the same round trip `figx auth` uses before persisting a token to the
// keychain.
func (c *Client) WhoAmI(ctx context.Context, accessToken string) (*User, error) {
	var u User
	if err := c.get(ctx, accessToken, "/v1/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) get(ctx context.Context, accessToken, path string, query url.Values, v any) error {
	return cache.RetryWithBackoff(ctx, func() error {
		u := c.BaseURL + path
		if len(query) > 0 {
			u += "?" + query.Encode()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("X-Figma-Token", accessToken)

		resp, err := c.Doer.Do(req)
		if err != nil {
			return fmt.Errorf("figma: request failed: %w", err)
		}
		defer resp.Body.Close()

		if err := checkStatus(resp.StatusCode); err != nil {
			return err
		}
		return json.NewDecoder(resp.Body).Decode(v)
	})
}
