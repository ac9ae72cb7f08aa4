package content

import (
	"encoding/json"
)

// MediaRef is a media reference as it appears in external payloads.
// Depending on how the row was joined, the reference may arrive as a
// single object, a one-element array, null, or an object without a URL.
// FirstURL normalizes all of those shapes at the boundary so the rest of
// the code only ever deals with a plain URL string.
type MediaRef struct {
	URL *string `json:"url"`
}

// FirstURL returns the first non-empty URL from a raw media reference
// payload, or "" when none is present. It never fails: malformed input
// degrades to the empty string.
func FirstURL(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var single MediaRef
	if err := json.Unmarshal(raw, &single); err == nil {
		if single.URL != nil && *single.URL != "" {
			return *single.URL
		}
		// A lone object without a usable URL is a miss, not an error.
		// Fall through in case the payload was actually an array.
	}

	var many []MediaRef
	if err := json.Unmarshal(raw, &many); err != nil {
		return ""
	}
	for _, ref := range many {
		if ref.URL != nil && *ref.URL != "" {
			return *ref.URL
		}
	}
	return ""
}
