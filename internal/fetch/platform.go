package fetch

import (
	"net/url"
	"strings"
)

// Platform is a job board whose markup the extractor knows about.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

type board struct {
	hosts   []string
	content []string
	noise   []string
}

var boards = map[Platform]board{
	PlatformGreenhouse: {
		hosts:   []string{"greenhouse.io"},
		content: []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:   []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	PlatformLever: {
		hosts:   []string{"lever.co"},
		content: []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:   []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	PlatformWorkday: {
		hosts:   []string{"myworkdayjobs.com", "workday.com"},
		content: []string{"[data-automation-id='jobDescription']", ".gwt-HTML", ".job-description"},
		noise:   []string{"[data-automation-id='applyButton']", ".application-section"},
	},
}

// commonNoise covers application forms, EEO boilerplate and share widgets,
// none of which describe the job itself.
var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	".eeo-statement",
	".eeo-section",
	".voluntary-disclosure",
	".self-identification",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board hosting rawURL.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for platform, b := range boards {
		for _, h := range b.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return platform
			}
		}
	}
	return PlatformUnknown
}

// ContentSelectors returns the selectors to try for platform, most specific first.
func ContentSelectors(platform Platform) []string {
	b, ok := boards[platform]
	if !ok {
		return JobPostingSelectors()
	}
	return append(append([]string(nil), b.content...), JobPostingSelectors()...)
}

// NoiseSelectors returns the selectors removed before extraction on platform.
func NoiseSelectors(platform Platform) []string {
	out := append([]string(nil), commonNoise...)
	if b, ok := boards[platform]; ok {
		out = append(out, b.noise...)
	}
	return out
}
