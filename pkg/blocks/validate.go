package blocks

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValidationIssue is one path-qualified schema violation, e.g.
// "settings.padding.top: must be between 0 and 200".
type ValidationIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// ValidationError aggregates every issue found in a candidate block. It is
// returned as a value, never panicked, so the API layer can surface it as a
// structured 4xx response.
type ValidationError struct {
	Issues []ValidationIssue `json:"issues"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return "block validation failed: " + strings.Join(msgs, "; ")
}

// issueCollector accumulates issues during a validation walk.
type issueCollector struct {
	issues []ValidationIssue
}

func (c *issueCollector) add(path, format string, args ...interface{}) {
	c.issues = append(c.issues, ValidationIssue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (c *issueCollector) err() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// ValidateBlockJSON decodes and validates a candidate block in one step.
// On success it returns the typed block; on failure a *ValidationError (for
// schema violations) or a plain error (for undecodable JSON).
func ValidateBlockJSON(data []byte) (*EmailBlock, error) {
	// Probe the type first so an unknown discriminator surfaces as a
	// validation issue rather than a decode error.
	var probe struct {
		Type            BlockType       `json:"type"`
		LayoutVariation LayoutVariation `json:"layoutVariation"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode block candidate: %w", err)
	}
	c := &issueCollector{}
	if !IsValidBlockType(probe.Type) {
		c.add("type", "unknown block type %q", probe.Type)
		return nil, c.err()
	}
	if probe.Type == BlockTypeLayouts && !IsValidLayoutVariation(probe.LayoutVariation) {
		c.add("layoutVariation", "unknown layout variation %q", probe.LayoutVariation)
		return nil, c.err()
	}

	var b EmailBlock
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to decode block candidate: %w", err)
	}
	if err := ValidateBlock(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ValidateBlock checks a typed block against the schema for its type (and
// variation). It returns nil or a *ValidationError listing every violation.
func ValidateBlock(b *EmailBlock) error {
	c := &issueCollector{}
	validateBlock(b, "", 0, c)
	return c.err()
}

// ValidateBlocks validates a whole block array, prefixing each issue path
// with the block index.
func ValidateBlocks(bs []EmailBlock) error {
	c := &issueCollector{}
	for i := range bs {
		validateBlock(&bs[i], fmt.Sprintf("blocks[%d].", i), 0, c)
	}
	return c.err()
}

func validateBlock(b *EmailBlock, prefix string, depth int, c *issueCollector) {
	if b.ID == "" {
		c.add(prefix+"id", "is required")
	}
	if b.Position < 0 {
		c.add(prefix+"position", "must be >= 0")
	}
	if !IsValidBlockType(b.Type) {
		c.add(prefix+"type", "unknown block type %q", b.Type)
		return
	}
	if b.Type == BlockTypeLayouts {
		if !IsValidLayoutVariation(b.LayoutVariation) {
			c.add(prefix+"layoutVariation", "unknown layout variation %q", b.LayoutVariation)
			return
		}
	} else if b.LayoutVariation != "" {
		c.add(prefix+"layoutVariation", "only valid on layouts blocks")
	}

	validateSettings(b, prefix, c)
	validateContent(b, prefix, depth, c)
}

func validateBase(s BaseSettings, prefix string, c *issueCollector) {
	if !s.Padding.InRange() {
		c.add(prefix+"settings.padding", "each side must be between %d and %d", PaddingMin, PaddingMax)
	}
	checkOptionalColor(s.BackgroundColor, prefix+"settings.backgroundColor", c)
}

func checkOptionalColor(v, path string, c *issueCollector) {
	if v != "" && !IsHexColor(v) {
		c.add(path, "must be a 6-digit hex color")
	}
}

func checkAlign(v, path string, c *issueCollector) {
	if v != "" && !IsAlignment(v) {
		c.add(path, "must be one of left, center, right")
	}
}

func checkURL(v, path string, c *issueCollector) {
	if !IsURLOrMergeTag(v) {
		c.add(path, "must be empty, a merge tag, or an absolute URL")
	}
}

func checkRange(v int, min, max int, path string, c *issueCollector) {
	if v < min || v > max {
		c.add(path, "must be between %d and %d", min, max)
	}
}

func validateSettings(b *EmailBlock, prefix string, c *issueCollector) {
	switch s := b.Settings.(type) {
	case *LogoSettings:
		validateBase(s.BaseSettings, prefix, c)
		checkAlign(s.Align, prefix+"settings.align", c)
		checkRange(s.Width, 0, MaxCanvasWidth, prefix+"settings.width", c)
	case *SpacerSettings:
		validateBase(s.BaseSettings, prefix, c)
		if s.Size != "" {
			if _, ok := SpacerSizeHeights[s.Size]; !ok {
				c.add(prefix+"settings.size", "must be one of small, medium, large")
			}
		}
	case *TextSettings:
		validateBase(s.BaseSettings, prefix, c)
		checkAlign(s.Align, prefix+"settings.align", c)
		checkOptionalColor(s.Color, prefix+"settings.color", c)
		if s.FontSize != 0 {
			checkRange(s.FontSize, 8, 72, prefix+"settings.fontSize", c)
		}
	case *ImageSettings:
		validateBase(s.BaseSettings, prefix, c)
		checkAlign(s.Align, prefix+"settings.align", c)
		checkRange(s.Width, 0, MaxCanvasWidth, prefix+"settings.width", c)
		checkRange(s.BorderRadius, 0, 100, prefix+"settings.borderRadius", c)
	case *ButtonSettings:
		validateBase(s.BaseSettings, prefix, c)
		if s.Style != "" && s.Style != ButtonStyleSolid && s.Style != ButtonStyleOutline && s.Style != ButtonStyleGhost {
			c.add(prefix+"settings.style", "must be one of solid, outline, ghost")
		}
		checkOptionalColor(s.ButtonColor, prefix+"settings.buttonColor", c)
		checkOptionalColor(s.TextColor, prefix+"settings.textColor", c)
		checkRange(s.BorderRadius, 0, 100, prefix+"settings.borderRadius", c)
		checkAlign(s.Align, prefix+"settings.align", c)
	case *DividerSettings:
		validateBase(s.BaseSettings, prefix, c)
		switch s.LineStyle {
		case "", DividerSolid, DividerDashed, DividerDotted, DividerDecorative:
		default:
			c.add(prefix+"settings.lineStyle", "must be one of solid, dashed, dotted, decorative")
		}
		checkOptionalColor(s.LineColor, prefix+"settings.lineColor", c)
		checkRange(s.Thickness, 0, 20, prefix+"settings.thickness", c)
		checkRange(s.WidthPercent, 0, 100, prefix+"settings.widthPercent", c)
	case *SocialLinksSettings:
		validateBase(s.BaseSettings, prefix, c)
		checkAlign(s.Align, prefix+"settings.align", c)
		checkRange(s.IconSize, 0, 64, prefix+"settings.iconSize", c)
	case *FooterSettings:
		validateBase(s.BaseSettings, prefix, c)
		checkOptionalColor(s.TextColor, prefix+"settings.textColor", c)
		checkAlign(s.Align, prefix+"settings.align", c)
	case *LinkBarSettings:
		validateBase(s.BaseSettings, prefix, c)
		checkOptionalColor(s.TextColor, prefix+"settings.textColor", c)
		checkAlign(s.Align, prefix+"settings.align", c)
	case *AddressSettings:
		validateBase(s.BaseSettings, prefix, c)
		checkOptionalColor(s.TextColor, prefix+"settings.textColor", c)
		checkAlign(s.Align, prefix+"settings.align", c)
	case *LayoutSettings:
		validateBase(s.BaseSettings, prefix, c)
		checkOptionalColor(s.ContentBackgroundColor, prefix+"settings.contentBackgroundColor", c)
		checkOptionalColor(s.TextColor, prefix+"settings.textColor", c)
		checkOptionalColor(s.AccentColor, prefix+"settings.accentColor", c)
	case *ContainerSettings:
		validateBase(s.BaseSettings, prefix, c)
	case nil:
		c.add(prefix+"settings", "is required")
	default:
		c.add(prefix+"settings", "does not match block type %q", b.Type)
	}
}

func validateContent(b *EmailBlock, prefix string, depth int, c *issueCollector) {
	switch ct := b.Content.(type) {
	case *LogoContent:
		checkURL(ct.ImageURL, prefix+"content.imageUrl", c)
		checkURL(ct.LinkURL, prefix+"content.linkUrl", c)
	case *SpacerContent:
	case *TextContent:
	case *ImageContent:
		checkURL(ct.ImageURL, prefix+"content.imageUrl", c)
		checkURL(ct.LinkURL, prefix+"content.linkUrl", c)
	case *ButtonContent:
		if ct.Text == "" {
			c.add(prefix+"content.text", "is required")
		}
		checkURL(ct.URL, prefix+"content.url", c)
	case *DividerContent:
	case *SocialLinksContent:
		for i, l := range ct.Links {
			if l.Platform == "" {
				c.add(fmt.Sprintf("%scontent.links[%d].platform", prefix, i), "is required")
			}
			checkURL(l.URL, fmt.Sprintf("%scontent.links[%d].url", prefix, i), c)
		}
	case *FooterContent:
		checkURL(ct.UnsubscribeURL, prefix+"content.unsubscribeUrl", c)
		checkURL(ct.PreferencesURL, prefix+"content.preferencesUrl", c)
	case *LinkBarContent:
		for i, l := range ct.Links {
			if l.Label == "" {
				c.add(fmt.Sprintf("%scontent.links[%d].label", prefix, i), "is required")
			}
			checkURL(l.URL, fmt.Sprintf("%scontent.links[%d].url", prefix, i), c)
		}
	case *AddressContent:
	case *ContainerContent:
		if depth+1 > MaxContainerDepth {
			c.add(prefix+"content.children", "container nesting exceeds max depth %d", MaxContainerDepth)
			return
		}
		for i := range ct.Children {
			validateBlock(&ct.Children[i], fmt.Sprintf("%scontent.children[%d].", prefix, i), depth+1, c)
		}
	case *HeroContent:
		checkURL(ct.ButtonURL, prefix+"content.buttonUrl", c)
	case *TwoColumnContent:
		if len(ct.Columns) > 2 {
			c.add(prefix+"content.columns", "at most 2 columns")
		}
		for i, col := range ct.Columns {
			checkURL(col.ImageURL, fmt.Sprintf("%scontent.columns[%d].imageUrl", prefix, i), c)
			checkURL(col.ButtonURL, fmt.Sprintf("%scontent.columns[%d].buttonUrl", prefix, i), c)
		}
	case *StatsContent:
		if max, ok := StatsColumnCounts[b.LayoutVariation]; ok && len(ct.Items) > max {
			c.add(prefix+"content.items", "at most %d items for %s", max, b.LayoutVariation)
		}
	case *ImageOverlayContent:
		checkURL(ct.ImageURL, prefix+"content.imageUrl", c)
		checkURL(ct.ButtonURL, prefix+"content.buttonUrl", c)
	case *TwoColumnTextContent:
	case *CompactImageTextContent:
		checkURL(ct.ImageURL, prefix+"content.imageUrl", c)
		if ct.ImageSide != "" && ct.ImageSide != "left" && ct.ImageSide != "right" {
			c.add(prefix+"content.imageSide", "must be left or right")
		}
	case *MagazineFeatureContent:
		checkURL(ct.ImageURL, prefix+"content.imageUrl", c)
		checkURL(ct.AuthorAvatarURL, prefix+"content.authorAvatarUrl", c)
	case *CardCenteredContent:
		checkURL(ct.ImageURL, prefix+"content.imageUrl", c)
		checkURL(ct.ButtonURL, prefix+"content.buttonUrl", c)
	case nil:
		c.add(prefix+"content", "is required")
	default:
		c.add(prefix+"content", "does not match block type %q", b.Type)
	}
}

// ValidateEmail validates the whole document: global settings bounds plus
// every block.
func ValidateEmail(e *Email) error {
	c := &issueCollector{}
	if e.GlobalSettings != nil {
		g := e.GlobalSettings
		if g.MaxWidth != 0 && (g.MaxWidth < MinCanvasWidth || g.MaxWidth > MaxCanvasWidth) {
			c.add("globalSettings.maxWidth", "must be between %d and %d", MinCanvasWidth, MaxCanvasWidth)
		}
		checkOptionalColor(g.BackgroundColor, "globalSettings.backgroundColor", c)
		checkOptionalColor(g.ContentBackgroundColor, "globalSettings.contentBackgroundColor", c)
	}
	for i := range e.Blocks {
		validateBlock(&e.Blocks[i], fmt.Sprintf("blocks[%d].", i), 0, c)
	}
	return c.err()
}
