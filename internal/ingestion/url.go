package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/jonathan/hiresense/internal/fetch"
)

// URLOptions configures FromURL
type URLOptions struct {
	// UseBrowser re-renders pages with too little static text in headless Chrome
	UseBrowser bool
	Fetch      *fetch.Options
}

// FromURL fetches an online profile (portfolio, hosted resume, GitHub page) and returns its
// cleaned main text, or "" on failure.
func FromURL(ctx context.Context, urlStr string, opts URLOptions) string {
	doc, err := DocumentFromURL(ctx, urlStr, opts)
	if err != nil {
		slog.Warn("profile fetch failed", slog.String("url", urlStr), slog.Any("error", err))
		return ""
	}
	return doc.Text
}

// DocumentFromURL is FromURL with errors and metadata
func DocumentFromURL(ctx context.Context, urlStr string, opts URLOptions) (*Document, error) {
	platform := fetch.DetectPlatform(urlStr)
	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)
	slog.Debug("fetching profile", slog.String("url", urlStr), slog.String("platform", string(platform)))

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return nil, err
	}

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, err
	}

	if opts.UseBrowser && (platform.NeedsBrowser() || fetch.ShouldUseBrowser(text)) {
		if err := browserAllowed(ctx, urlStr, opts.Fetch); err != nil {
			slog.Warn("browser rendering refused", slog.String("url", urlStr), slog.Any("error", err))
			return NewDocument(urlStr, FormatURL, []byte(result.HTML), CleanText(text)), nil
		}
		slog.Debug("static content too short, rendering in browser",
			slog.String("url", urlStr),
			slog.Int("chars", len(text)))
		rendered, err := fetch.RenderText(ctx, urlStr, contentSelectors, noiseSelectors...)
		if err != nil {
			// keep the static text
			slog.Warn("browser rendering failed", slog.String("url", urlStr), slog.Any("error", err))
		} else if len(rendered) > len(text) {
			text = rendered
		}
	}

	return NewDocument(urlStr, FormatURL, []byte(result.HTML), CleanText(text)), nil
}

// browserAllowed applies the fetch address policy to a browser render. The browser dials on
// its own, so the host is resolved and checked up front.
func browserAllowed(ctx context.Context, urlStr string, opts *fetch.Options) error {
	if opts != nil && opts.AllowPrivateNetworks {
		return nil
	}
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	return fetch.CheckHost(ctx, u.Hostname())
}
