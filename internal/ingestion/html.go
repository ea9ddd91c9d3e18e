package ingestion

import (
	"github.com/jonathan/hiresense/internal/fetch"
)

// extractHTML returns the main text of a saved profile or resume page
func extractHTML(html string) (string, error) {
	return fetch.ExtractMainText(html, fetch.ProfilePageSelectors())
}
