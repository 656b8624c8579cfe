package render

import (
	"fmt"
	"net/url"
	"strings"
)

// Social platform icon catalog. Icons ship as inline SVG data URIs so a
// social row never depends on a CDN; unrecognized platforms fall back to a
// generic link glyph.

// socialIconPaths maps a normalized platform name to its monochrome SVG
// path data on a 24x24 viewBox.
var socialIconPaths = map[string]string{
	"x":         "M18.9 2H22l-6.8 7.8L23.2 22h-6.3l-4.9-6.4L6.4 22H3.2l7.3-8.3L1.5 2H8l4.4 5.8L18.9 2zm-1.1 18h1.7L7.1 3.9H5.3L17.8 20z",
	"twitter":   "M23 4.9c-.8.4-1.7.6-2.6.8a4.5 4.5 0 0 0 2-2.5c-.9.5-1.9.9-2.9 1.1a4.5 4.5 0 0 0-7.7 4.1A12.8 12.8 0 0 1 2.5 3.7a4.5 4.5 0 0 0 1.4 6 4.4 4.4 0 0 1-2-.6v.1a4.5 4.5 0 0 0 3.6 4.4 4.5 4.5 0 0 1-2 .1 4.5 4.5 0 0 0 4.2 3.1A9 9 0 0 1 1 18.6a12.7 12.7 0 0 0 6.9 2c8.3 0 12.8-6.9 12.8-12.8v-.6c.9-.6 1.6-1.4 2.3-2.3z",
	"facebook":  "M24 12a12 12 0 1 0-13.9 11.9v-8.4h-3V12h3V9.4c0-3 1.8-4.7 4.5-4.7 1.3 0 2.7.2 2.7.2v3h-1.5c-1.5 0-2 .9-2 1.9V12h3.3l-.5 3.5h-2.8v8.4A12 12 0 0 0 24 12z",
	"instagram": "M12 2.2c3.2 0 3.6 0 4.9.1 1.2 0 1.8.2 2.2.4.6.2 1 .5 1.4.9.4.4.7.8.9 1.4.2.4.4 1 .4 2.2.1 1.3.1 1.7.1 4.9s0 3.6-.1 4.9c0 1.2-.2 1.8-.4 2.2a3.9 3.9 0 0 1-2.3 2.3c-.4.2-1 .4-2.2.4-1.3.1-1.7.1-4.9.1s-3.6 0-4.9-.1c-1.2 0-1.8-.2-2.2-.4a3.9 3.9 0 0 1-2.3-2.3c-.2-.4-.4-1-.4-2.2-.1-1.3-.1-1.7-.1-4.9s0-3.6.1-4.9c0-1.2.2-1.8.4-2.2.2-.6.5-1 .9-1.4.4-.4.8-.7 1.4-.9.4-.2 1-.4 2.2-.4 1.3-.1 1.7-.1 4.9-.1zM12 6a6 6 0 1 0 0 12 6 6 0 0 0 0-12zm0 9.9a3.9 3.9 0 1 1 0-7.8 3.9 3.9 0 0 1 0 7.8zm7.6-10.1a1.4 1.4 0 1 1-2.8 0 1.4 1.4 0 0 1 2.8 0z",
	"linkedin":  "M20.4 20.5h-3.6v-5.6c0-1.3 0-3-1.8-3s-2.1 1.4-2.1 2.9v5.7H9.4V9h3.4v1.6h.1c.5-.9 1.6-1.8 3.4-1.8 3.6 0 4.3 2.4 4.3 5.5v6.2zM5.3 7.4a2.1 2.1 0 1 1 0-4.2 2.1 2.1 0 0 1 0 4.2zm1.8 13.1H3.5V9h3.6v11.5z",
	"youtube":   "M23.5 6.2a3 3 0 0 0-2.1-2.1C19.5 3.5 12 3.5 12 3.5s-7.5 0-9.4.6A3 3 0 0 0 .5 6.2 31 31 0 0 0 0 12a31 31 0 0 0 .5 5.8 3 3 0 0 0 2.1 2.1c1.9.6 9.4.6 9.4.6s7.5 0 9.4-.6a3 3 0 0 0 2.1-2.1A31 31 0 0 0 24 12a31 31 0 0 0-.5-5.8zM9.5 15.6V8.4L15.8 12l-6.3 3.6z",
	"tiktok":    "M19.6 6.7a4.8 4.8 0 0 1-2.9-1 4.9 4.9 0 0 1-1.9-3.2h-3.2v12.9a2.9 2.9 0 1 1-2.1-2.8V9.3a6.1 6.1 0 1 0 5.3 6V8.9a8 8 0 0 0 4.8 1.6V7.3l-.0-.6z",
	"github":    "M12 .5a12 12 0 0 0-3.8 23.4c.6.1.8-.3.8-.6v-2c-3.3.7-4-1.6-4-1.6-.6-1.4-1.4-1.8-1.4-1.8-1.1-.7.1-.7.1-.7 1.2.1 1.8 1.2 1.8 1.2 1 1.8 2.8 1.3 3.5 1 .1-.8.4-1.3.7-1.6-2.7-.3-5.5-1.3-5.5-5.9 0-1.3.5-2.4 1.2-3.2-.1-.3-.5-1.5.1-3.2 0 0 1-.3 3.3 1.2a11.5 11.5 0 0 1 6 0C17.1 5.2 18.1 5.5 18.1 5.5c.6 1.7.2 2.9.1 3.2.8.8 1.2 1.9 1.2 3.2 0 4.6-2.8 5.6-5.5 5.9.4.4.8 1.1.8 2.2v3.3c0 .3.2.7.8.6A12 12 0 0 0 12 .5z",
}

// genericLinkIconPath is the fallback glyph for unrecognized platforms.
const genericLinkIconPath = "M10.6 13.4a1 1 0 0 0 1.4 0l4.3-4.3a3 3 0 0 0-4.2-4.2L9.9 7.1a1 1 0 0 0 1.4 1.4l2.2-2.2a1 1 0 0 1 1.4 1.4l-4.3 4.3a1 1 0 0 0 0 1.4zm2.8-2.8a1 1 0 0 0-1.4 0l-4.3 4.3a3 3 0 1 0 4.2 4.2l2.2-2.2a1 1 0 0 0-1.4-1.4l-2.2 2.2a1 1 0 0 1-1.4-1.4l4.3-4.3a1 1 0 0 0 0-1.4z"

// socialIconAliases normalizes common platform spellings.
var socialIconAliases = map[string]string{
	"twitter/x": "x",
	"x.com":     "x",
	"fb":        "facebook",
	"insta":     "instagram",
	"ig":        "instagram",
	"yt":        "youtube",
}

// SocialIconURI returns an inline SVG data URI for the given platform at
// the given square size, tinted with the given fill color. Unknown
// platforms get the generic link glyph.
func SocialIconURI(platform string, size int, fill string) string {
	if size <= 0 {
		size = 24
	}
	if fill == "" {
		fill = "#6b7280"
	}
	key := strings.ToLower(strings.TrimSpace(platform))
	if alias, ok := socialIconAliases[key]; ok {
		key = alias
	}
	path, ok := socialIconPaths[key]
	if !ok {
		path = genericLinkIconPath
	}
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 24 24">`+
			`<path fill="%s" d="%s"/></svg>`,
		size, size, fill, path,
	)
	return "data:image/svg+xml;charset=utf-8," + url.PathEscape(svg)
}

// KnownSocialPlatforms lists the platforms with dedicated icons.
func KnownSocialPlatforms() []string {
	out := make([]string, 0, len(socialIconPaths))
	for k := range socialIconPaths {
		out = append(out, k)
	}
	return out
}
