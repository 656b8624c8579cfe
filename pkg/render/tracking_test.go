package render

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackLinks_NoopWhenDisabledAndNoUTM(t *testing.T) {
	html := `<a href="https://example.net/a">go</a>`
	assert.Equal(t, html, TrackLinks(html, TrackingSettings{}))
}

func TestTrackLinks_AppendsUTMParams(t *testing.T) {
	html := `<p><a href="https://example.net/sale">Sale</a></p>`
	out := TrackLinks(html, TrackingSettings{
		UTMSource:   "newsletter",
		UTMMedium:   "email",
		UTMCampaign: "spring",
	})

	assert.Contains(t, out, "utm_source=newsletter")
	assert.Contains(t, out, "utm_medium=email")
	assert.Contains(t, out, "utm_campaign=spring")
	assert.Contains(t, out, "example.net/sale")
}

func TestTrackLinks_ExistingUTMLeftAlone(t *testing.T) {
	html := `<a href="https://example.net/?utm_source=partner">go</a>`
	out := TrackLinks(html, TrackingSettings{UTMSource: "newsletter"})

	assert.Contains(t, out, "utm_source=partner")
	assert.NotContains(t, out, "utm_source=newsletter")
}

func TestTrackLinks_SkipsNonTrackableHrefs(t *testing.T) {
	tests := []struct {
		name string
		href string
	}{
		{"mailto", "mailto:team@example.net"},
		{"tel", "tel:+15555550100"},
		{"anchor", "#section"},
		{"merge tag", "{{cta_url}}"},
		{"liquid tag", "{% raw %}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := `<a href="` + tt.href + `">go</a>`
			out := TrackLinks(html, TrackingSettings{
				EnableTracking: true,
				Endpoint:       "https://t.example.net",
				UTMSource:      "newsletter",
			})
			// The anchor itself must be untouched; only the open pixel may
			// be appended after it.
			assert.True(t, strings.HasPrefix(out, html), "got %q", out)
		})
	}
}

func TestTrackLinks_RedirectsThroughEndpoint(t *testing.T) {
	html := `<a href="https://example.net/buy">Buy</a>`
	out := TrackLinks(html, TrackingSettings{
		EnableTracking: true,
		Endpoint:       "https://t.example.net",
		CampaignID:     "camp-7",
		MessageID:      "msg-42",
	})

	require.Contains(t, out, `href="https://t.example.net/clicks?`)
	assert.Contains(t, out, "mid=msg-42")
	assert.Contains(t, out, "cid=camp-7")
	assert.Contains(t, out, "url="+url.QueryEscape("https://example.net/buy"))
}

func TestTrackLinks_InjectsOpenPixelBeforeBodyClose(t *testing.T) {
	html := `<html><body><p>hi</p></body></html>`
	out := TrackLinks(html, TrackingSettings{
		EnableTracking: true,
		Endpoint:       "https://t.example.net",
		MessageID:      "msg-1",
	})

	pixelIdx := strings.Index(out, "/opens?")
	bodyIdx := strings.Index(out, "</body>")
	require.NotEqual(t, -1, pixelIdx)
	require.NotEqual(t, -1, bodyIdx)
	assert.Less(t, pixelIdx, bodyIdx)
	assert.Contains(t, out, `width="1" height="1"`)
}

func TestTrackLinks_PixelAppendedWithoutBodyTag(t *testing.T) {
	out := TrackLinks("<p>fragment</p>", TrackingSettings{
		EnableTracking: true,
		Endpoint:       "https://t.example.net",
	})
	assert.Contains(t, out, "/opens?")
	assert.True(t, strings.HasPrefix(out, "<p>fragment</p>"))
}
