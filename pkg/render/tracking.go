package render

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// TrackingSettings configures post-render link instrumentation. UTM
// parameters are appended to every trackable anchor; when EnableTracking
// is set, links are additionally rewritten through the redirect endpoint
// and an open pixel is injected before </body>.
type TrackingSettings struct {
	EnableTracking bool   `json:"enableTracking"`
	Endpoint       string `json:"endpoint,omitempty"`
	UTMSource      string `json:"utmSource,omitempty"`
	UTMMedium      string `json:"utmMedium,omitempty"`
	UTMCampaign    string `json:"utmCampaign,omitempty"`
	UTMContent     string `json:"utmContent,omitempty"`
	UTMTerm        string `json:"utmTerm,omitempty"`
	CampaignID     string `json:"campaignId,omitempty"`
	MessageID      string `json:"messageId,omitempty"`
}

func (t TrackingSettings) hasUTM() bool {
	return t.UTMSource != "" || t.UTMMedium != "" || t.UTMCampaign != "" ||
		t.UTMContent != "" || t.UTMTerm != ""
}

// nonTrackableSchemes lists protocols that break when wrapped in a
// redirect.
var nonTrackableSchemes = []string{
	"mailto:",
	"tel:",
	"sms:",
	"javascript:",
	"data:",
	"blob:",
	"file:",
}

// isNonTrackableURL reports whether a href should be left untouched:
// empty values, unresolved template placeholders, fragment-only anchors,
// and special protocols.
func isNonTrackableURL(u string) bool {
	if u == "" {
		return true
	}
	if strings.Contains(u, "{{") || strings.Contains(u, "{%") {
		return true
	}
	if strings.HasPrefix(u, "#") {
		return true
	}
	lower := strings.ToLower(u)
	for _, scheme := range nonTrackableSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// withUTM appends the configured UTM parameters unless the URL already
// carries its own utm_* query keys.
func (t TrackingSettings) withUTM(sourceURL string) string {
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return sourceURL
	}
	params := parsed.Query()
	for key := range params {
		if strings.HasPrefix(strings.ToLower(key), "utm_") {
			return sourceURL
		}
	}
	add := func(key, value string) {
		if value != "" {
			params.Add(key, value)
		}
	}
	add("utm_source", t.UTMSource)
	add("utm_medium", t.UTMMedium)
	add("utm_campaign", t.UTMCampaign)
	add("utm_content", t.UTMContent)
	add("utm_term", t.UTMTerm)
	parsed.RawQuery = params.Encode()
	return parsed.String()
}

// redirectURL wraps a destination in the click-redirect endpoint. The
// timestamp travels along for bot filtering on the collector side.
func (t TrackingSettings) redirectURL(destination string, ts int64) string {
	return fmt.Sprintf("%s/clicks?mid=%s&cid=%s&ts=%d&url=%s",
		strings.TrimSuffix(t.Endpoint, "/"),
		url.QueryEscape(t.MessageID),
		url.QueryEscape(t.CampaignID),
		ts,
		url.QueryEscape(destination))
}

// openPixel returns the 1x1 open-tracking image tag.
func (t TrackingSettings) openPixel(ts int64) string {
	pixelURL := fmt.Sprintf("%s/opens?mid=%s&cid=%s&ts=%d",
		strings.TrimSuffix(t.Endpoint, "/"),
		url.QueryEscape(t.MessageID),
		url.QueryEscape(t.CampaignID),
		ts)
	return fmt.Sprintf(`<img src="%s" alt="" width="1" height="1" style="display: block; border: 0;">`, pixelURL)
}

var (
	hrefRe      = regexp.MustCompile(`(<a[^>]*\s+href=["'])([^"']+)(["'][^>]*>)`)
	bodyCloseRe = regexp.MustCompile(`(?i)(</body>)`)
)

// TrackLinks instruments a rendered document. With tracking disabled and
// no UTM parameters configured it returns the input unchanged.
func TrackLinks(html string, t TrackingSettings) string {
	if !t.EnableTracking && !t.hasUTM() {
		return html
	}

	ts := time.Now().Unix()

	out := hrefRe.ReplaceAllStringFunc(html, func(match string) string {
		parts := hrefRe.FindStringSubmatch(match)
		if len(parts) != 4 {
			return match
		}
		original := parts[1]
		href := parts[2]
		rest := parts[3]

		if isNonTrackableURL(href) {
			return match
		}

		tracked := t.withUTM(href)
		if t.EnableTracking {
			tracked = t.redirectURL(tracked, ts)
		}
		return original + tracked + rest
	})

	if t.EnableTracking {
		pixel := t.openPixel(ts)
		if bodyCloseRe.MatchString(out) {
			out = bodyCloseRe.ReplaceAllString(out, pixel+"$1")
		} else {
			out += pixel
		}
	}
	return out
}
