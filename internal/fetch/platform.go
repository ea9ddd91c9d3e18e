// Package fetch - platform.go provides profile-host detection and host-specific selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known profile host.
type Platform string

const (
	// PlatformGitHub is a GitHub user or profile README page
	PlatformGitHub Platform = "github"
	// PlatformGitLab is a GitLab user page
	PlatformGitLab Platform = "gitlab"
	// PlatformLinkedIn is a public LinkedIn profile
	PlatformLinkedIn Platform = "linkedin"
	// PlatformNotion is a published Notion page, often used for resumes
	PlatformNotion Platform = "notion"
	// PlatformUnknown is any other site, usually a personal portfolio
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the profile host from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)
	switch {
	case host == "github.com" || strings.HasSuffix(host, ".github.com"):
		return PlatformGitHub
	case host == "gitlab.com" || strings.HasSuffix(host, ".gitlab.com"):
		return PlatformGitLab
	case strings.HasSuffix(host, "linkedin.com"):
		return PlatformLinkedIn
	case strings.HasSuffix(host, "notion.site") || strings.HasSuffix(host, "notion.so"):
		return PlatformNotion
	default:
		return PlatformUnknown
	}
}

// NeedsBrowser reports whether the platform only renders content with JavaScript.
func (p Platform) NeedsBrowser() bool {
	return p == PlatformNotion
}

// PlatformContentSelectors returns content selectors optimized for a specific platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGitHub:
		return []string{
			".markdown-body",
			".js-user-profile-bio",
			"[itemtype='http://schema.org/Person']",
			"main",
		}
	case PlatformGitLab:
		return []string{
			".profile-readme",
			".user-profile",
			"main",
		}
	case PlatformLinkedIn:
		return []string{
			".core-section-container",
			".top-card-layout",
			"main",
		}
	case PlatformNotion:
		return []string{
			".notion-page-content",
			".notion-frame",
			"main",
		}
	default:
		return ProfilePageSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		".social-share",
		".share-buttons",
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",
		".newsletter",
		"[aria-hidden='true']",
	}

	switch platform {
	case PlatformGitHub:
		return append(common,
			".js-yearly-contributions",
			".js-profile-editable-replace .vcard-names-container",
			".footer",
		)
	case PlatformLinkedIn:
		return append(common,
			".authwall",
			".join-form",
			".similar-profiles",
			".browsemap",
		)
	default:
		return common
	}
}
