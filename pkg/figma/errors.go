package figma

import (
	"fmt"

	"github.com/matzehuels/figx/pkg/cache"
)

// InvalidTokenError marks a 403 response (spec §4.6: "403, invalid token,
// distinct message"). It is never retried.
type InvalidTokenError struct{}

func (InvalidTokenError) Error() string { return "figma: invalid access token" }

// NullExportError marks an export request whose response omitted a URL for
// the requested node (spec §4.5 ExportImage "Fails ... on ... null URL").
type NullExportError struct {
	NodeID string
}

func (e *NullExportError) Error() string {
	return fmt.Sprintf("figma: export returned no url for node %s", e.NodeID)
}

func checkStatus(code int) error {
	switch {
	case code == 200:
		return nil
	case code == 403:
		return InvalidTokenError{}
	case code == 429:
		return cache.Retryable(fmt.Errorf("figma: rate limited (status %d)", code))
	default:
		return fmt.Errorf("figma: request failed with status %d", code)
	}
}
