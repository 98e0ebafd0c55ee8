package jobpost

import (
	"net/url"
	"strings"
)

// Platform is a job board whose page layout is known.
type Platform string

// Known platforms.
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
	{"ashbyhq.com", PlatformAshby},
}

// DetectPlatform identifies the job board serving rawURL.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range platformHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.platform
		}
	}
	return PlatformUnknown
}

// genericSelectors locate the description on pages of unknown layout, most specific first.
var genericSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

// ContentSelectors returns the description selectors for platform, most specific first.
func ContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"}
	case PlatformLever:
		return []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"}
	case PlatformWorkday:
		return []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"}
	case PlatformAshby:
		return []string{".ashby-job-posting-description", "[class*='_descriptionText']", "main"}
	default:
		return genericSelectors
	}
}

// commonNoise is removed from every page before extraction.
var commonNoise = []string{
	"nav", "footer", "header", "script", "style", "noscript", "iframe",
	"form", ".application-form", "#application-form", ".apply-button-container",
	".eeo-statement", ".voluntary-disclosure", ".self-identification",
	".social-share", ".share-buttons", ".cookie-banner", ".cookie-consent",
}

// NoiseSelectors returns the elements removed from platform pages before extraction.
func NoiseSelectors(platform Platform) []string {
	noise := append([]string(nil), commonNoise...)
	switch platform {
	case PlatformGreenhouse:
		noise = append(noise, ".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply")
	case PlatformLever:
		noise = append(noise, ".apply-section", ".lever-application-form", ".posting-apply")
	case PlatformWorkday:
		noise = append(noise, "[data-automation-id='applyButton']", ".application-section")
	case PlatformAshby:
		noise = append(noise, ".ashby-application-form-container")
	}
	return noise
}
