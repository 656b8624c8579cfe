package blocks

import (
	"encoding/json"
	"fmt"
)

// BlockType identifies the shape of a block's settings/content pair. The
// set is closed: validation rejects anything outside it.
type BlockType string

const (
	BlockTypeLogo        BlockType = "logo"
	BlockTypeSpacer      BlockType = "spacer"
	BlockTypeText        BlockType = "text"
	BlockTypeImage       BlockType = "image"
	BlockTypeButton      BlockType = "button"
	BlockTypeDivider     BlockType = "divider"
	BlockTypeSocialLinks BlockType = "social-links"
	BlockTypeFooter      BlockType = "footer"
	BlockTypeLinkBar     BlockType = "link-bar"
	BlockTypeAddress     BlockType = "address"
	BlockTypeLayouts     BlockType = "layouts"
	BlockTypeContainer   BlockType = "container"
)

// AllBlockTypes lists every valid block type in registry order.
var AllBlockTypes = []BlockType{
	BlockTypeLogo,
	BlockTypeSpacer,
	BlockTypeText,
	BlockTypeImage,
	BlockTypeButton,
	BlockTypeDivider,
	BlockTypeSocialLinks,
	BlockTypeFooter,
	BlockTypeLinkBar,
	BlockTypeAddress,
	BlockTypeLayouts,
	BlockTypeContainer,
}

// IsValidBlockType reports whether t belongs to the closed block type set.
func IsValidBlockType(t BlockType) bool {
	for _, bt := range AllBlockTypes {
		if bt == t {
			return true
		}
	}
	return false
}

// LayoutVariation selects the composer for a "layouts" block. Present iff
// the block type is "layouts".
type LayoutVariation string

const (
	LayoutHeroCenter LayoutVariation = "hero-center"

	LayoutTwoColumn5050 LayoutVariation = "two-column-50-50"
	LayoutTwoColumn6040 LayoutVariation = "two-column-60-40"
	LayoutTwoColumn4060 LayoutVariation = "two-column-40-60"
	LayoutTwoColumn7030 LayoutVariation = "two-column-70-30"
	LayoutTwoColumn3070 LayoutVariation = "two-column-30-70"
	LayoutTwoColumn3366 LayoutVariation = "two-column-33-66"

	LayoutStats2Column LayoutVariation = "stats-2-column"
	LayoutStats3Column LayoutVariation = "stats-3-column"
	LayoutStats4Column LayoutVariation = "stats-4-column"

	LayoutImageOverlay     LayoutVariation = "image-overlay"
	LayoutTwoColumnText    LayoutVariation = "two-column-text"
	LayoutCompactImageText LayoutVariation = "compact-image-text"
	LayoutMagazineFeature  LayoutVariation = "magazine-feature"
	LayoutCardCentered     LayoutVariation = "card-centered"
)

// AllLayoutVariations lists every valid layout variation.
var AllLayoutVariations = []LayoutVariation{
	LayoutHeroCenter,
	LayoutTwoColumn5050,
	LayoutTwoColumn6040,
	LayoutTwoColumn4060,
	LayoutTwoColumn7030,
	LayoutTwoColumn3070,
	LayoutTwoColumn3366,
	LayoutStats2Column,
	LayoutStats3Column,
	LayoutStats4Column,
	LayoutImageOverlay,
	LayoutTwoColumnText,
	LayoutCompactImageText,
	LayoutMagazineFeature,
	LayoutCardCentered,
}

// IsValidLayoutVariation reports whether v belongs to the closed variation set.
func IsValidLayoutVariation(v LayoutVariation) bool {
	for _, lv := range AllLayoutVariations {
		if lv == v {
			return true
		}
	}
	return false
}

// TwoColumnRatios maps each two-column variation to its left-column share
// in percent. The right column takes the remainder.
var TwoColumnRatios = map[LayoutVariation]int{
	LayoutTwoColumn5050: 50,
	LayoutTwoColumn6040: 60,
	LayoutTwoColumn4060: 40,
	LayoutTwoColumn7030: 70,
	LayoutTwoColumn3070: 30,
	LayoutTwoColumn3366: 33,
}

// StatsColumnCounts maps each stats variation to its column count.
var StatsColumnCounts = map[LayoutVariation]int{
	LayoutStats2Column: 2,
	LayoutStats3Column: 3,
	LayoutStats4Column: 4,
}

// MaxContainerDepth bounds nesting of container blocks. Validation and the
// renderer both refuse to descend past it.
const MaxContainerDepth = 5

// BlockSettings is the presentation payload of a block. One implementation
// per block type.
type BlockSettings interface{ isBlockSettings() }

// BlockContent is the data payload of a block. One implementation per block
// type, and per layout variation for "layouts" blocks.
type BlockContent interface{ isBlockContent() }

// EmailBlock is one typed, positioned unit of email content.
type EmailBlock struct {
	ID              string          `json:"id"`
	Type            BlockType       `json:"type"`
	Position        int             `json:"position"`
	LayoutVariation LayoutVariation `json:"layoutVariation,omitempty"`
	Settings        BlockSettings   `json:"settings"`
	Content         BlockContent    `json:"content"`
}

// GlobalEmailSettings is the canvas-level configuration for a render.
type GlobalEmailSettings struct {
	BackgroundColor        string `json:"backgroundColor"`
	ContentBackgroundColor string `json:"contentBackgroundColor"`
	MaxWidth               int    `json:"maxWidth"`
	FontFamily             string `json:"fontFamily"`
	MobileBreakpoint       int    `json:"mobileBreakpoint"`
}

// Canvas width bounds and defaults.
const (
	MinCanvasWidth     = 400
	MaxCanvasWidth     = 800
	DefaultCanvasWidth = 600
)

// DefaultGlobalSettings returns the canvas defaults applied when the caller
// supplies none.
func DefaultGlobalSettings() GlobalEmailSettings {
	return GlobalEmailSettings{
		BackgroundColor:        "#f4f4f4",
		ContentBackgroundColor: "#ffffff",
		MaxWidth:               DefaultCanvasWidth,
		FontFamily:             "Arial, Helvetica, sans-serif",
		MobileBreakpoint:       480,
	}
}

// Normalize clamps the canvas width into [MinCanvasWidth, MaxCanvasWidth]
// and fills empty fields from the defaults.
func (g GlobalEmailSettings) Normalize() GlobalEmailSettings {
	def := DefaultGlobalSettings()
	if g.BackgroundColor == "" {
		g.BackgroundColor = def.BackgroundColor
	}
	if g.ContentBackgroundColor == "" {
		g.ContentBackgroundColor = def.ContentBackgroundColor
	}
	if g.MaxWidth == 0 {
		g.MaxWidth = def.MaxWidth
	}
	if g.MaxWidth < MinCanvasWidth {
		g.MaxWidth = MinCanvasWidth
	}
	if g.MaxWidth > MaxCanvasWidth {
		g.MaxWidth = MaxCanvasWidth
	}
	if g.FontFamily == "" {
		g.FontFamily = def.FontFamily
	}
	if g.MobileBreakpoint == 0 {
		g.MobileBreakpoint = def.MobileBreakpoint
	}
	return g
}

// Email is a full document: subject line, preview text and the ordered
// block list.
type Email struct {
	Subject        string               `json:"subject"`
	PreviewText    string               `json:"previewText"`
	Blocks         []EmailBlock         `json:"blocks"`
	GlobalSettings *GlobalEmailSettings `json:"globalSettings,omitempty"`
}

// MergeTagMap maps merge-tag names to their substitution strings.
type MergeTagMap map[string]string

// --- Per-type settings ---

// BaseSettings carries the presentation fields shared by every block.
type BaseSettings struct {
	Padding         Padding `json:"padding"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
}

type LogoSettings struct {
	BaseSettings
	Align string `json:"align"`
	Width int    `json:"width"`
}

// SpacerSize buckets used by the spacer block and the legacy migration.
const (
	SpacerSmall  = "small"
	SpacerMedium = "medium"
	SpacerLarge  = "large"
)

// SpacerSizeHeights maps spacer size buckets to pixel heights.
var SpacerSizeHeights = map[string]int{
	SpacerSmall:  16,
	SpacerMedium: 32,
	SpacerLarge:  64,
}

type SpacerSettings struct {
	BaseSettings
	Size string `json:"size"`
}

type TextSettings struct {
	BaseSettings
	FontSize   int     `json:"fontSize"`
	LineHeight float64 `json:"lineHeight"`
	Color      string  `json:"color"`
	Align      string  `json:"align"`
	FontWeight int     `json:"fontWeight"`
}

type ImageSettings struct {
	BaseSettings
	Align        string `json:"align"`
	Width        int    `json:"width"`
	BorderRadius int    `json:"borderRadius"`
}

// Button visual styles.
const (
	ButtonStyleSolid   = "solid"
	ButtonStyleOutline = "outline"
	ButtonStyleGhost   = "ghost"
)

type ButtonSettings struct {
	BaseSettings
	Style        string `json:"style"`
	ButtonColor  string `json:"buttonColor"`
	TextColor    string `json:"textColor"`
	BorderRadius int    `json:"borderRadius"`
	Align        string `json:"align"`
	FontSize     int    `json:"fontSize"`
}

// Divider line styles. "decorative" renders a centered glyph instead of a
// rule.
const (
	DividerSolid      = "solid"
	DividerDashed     = "dashed"
	DividerDotted     = "dotted"
	DividerDecorative = "decorative"
)

type DividerSettings struct {
	BaseSettings
	LineStyle    string `json:"lineStyle"`
	LineColor    string `json:"lineColor"`
	Thickness    int    `json:"thickness"`
	WidthPercent int    `json:"widthPercent"`
}

type SocialLinksSettings struct {
	BaseSettings
	Align    string `json:"align"`
	IconSize int    `json:"iconSize"`
}

type FooterSettings struct {
	BaseSettings
	TextColor string `json:"textColor"`
	FontSize  int    `json:"fontSize"`
	Align     string `json:"align"`
}

type LinkBarSettings struct {
	BaseSettings
	Align     string `json:"align"`
	TextColor string `json:"textColor"`
	FontSize  int    `json:"fontSize"`
	Separator string `json:"separator"`
}

type AddressSettings struct {
	BaseSettings
	TextColor string `json:"textColor"`
	FontSize  int    `json:"fontSize"`
	Align     string `json:"align"`
}

type LayoutSettings struct {
	BaseSettings
	ContentBackgroundColor string `json:"contentBackgroundColor,omitempty"`
	TextColor              string `json:"textColor"`
	AccentColor            string `json:"accentColor"`
}

type ContainerSettings struct {
	BaseSettings
}

func (*LogoSettings) isBlockSettings()        {}
func (*SpacerSettings) isBlockSettings()      {}
func (*TextSettings) isBlockSettings()        {}
func (*ImageSettings) isBlockSettings()       {}
func (*ButtonSettings) isBlockSettings()      {}
func (*DividerSettings) isBlockSettings()     {}
func (*SocialLinksSettings) isBlockSettings() {}
func (*FooterSettings) isBlockSettings()      {}
func (*LinkBarSettings) isBlockSettings()     {}
func (*AddressSettings) isBlockSettings()     {}
func (*LayoutSettings) isBlockSettings()      {}
func (*ContainerSettings) isBlockSettings()   {}

// --- Per-type content ---

type LogoContent struct {
	ImageURL string `json:"imageUrl"`
	AltText  string `json:"altText"`
	LinkURL  string `json:"linkUrl,omitempty"`
}

type SpacerContent struct{}

type TextContent struct {
	Text string `json:"text"`
}

type ImageContent struct {
	ImageURL string `json:"imageUrl"`
	AltText  string `json:"altText"`
	LinkURL  string `json:"linkUrl,omitempty"`
}

type ButtonContent struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type DividerContent struct {
	Glyph string `json:"glyph,omitempty"`
}

// SocialLink is one platform entry in a social-links block.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type SocialLinksContent struct {
	Links []SocialLink `json:"links"`
}

type FooterContent struct {
	CompanyName    string `json:"companyName"`
	Address        string `json:"address,omitempty"`
	CustomText     string `json:"customText,omitempty"`
	UnsubscribeURL string `json:"unsubscribeUrl"`
	PreferencesURL string `json:"preferencesUrl,omitempty"`
}

// NamedLink is one labeled entry in a link-bar block.
type NamedLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type LinkBarContent struct {
	Links []NamedLink `json:"links"`
}

type AddressContent struct {
	CompanyName  string `json:"companyName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	Region       string `json:"region,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	Country      string `json:"country,omitempty"`
}

type ContainerContent struct {
	Children []EmailBlock `json:"children"`
}

// --- Layout variation content ---

type HeroContent struct {
	ShowHeader    bool   `json:"showHeader"`
	HeaderText    string `json:"headerText,omitempty"`
	ShowTitle     bool   `json:"showTitle"`
	Title         string `json:"title,omitempty"`
	ShowDivider   bool   `json:"showDivider"`
	ShowParagraph bool   `json:"showParagraph"`
	Paragraph     string `json:"paragraph,omitempty"`
	ShowButton    bool   `json:"showButton"`
	ButtonText    string `json:"buttonText,omitempty"`
	ButtonURL     string `json:"buttonUrl,omitempty"`
}

// LayoutColumn is one column of a generic two-column layout.
type LayoutColumn struct {
	ImageURL   string `json:"imageUrl,omitempty"`
	ImageAlt   string `json:"imageAlt,omitempty"`
	Title      string `json:"title,omitempty"`
	Text       string `json:"text,omitempty"`
	ButtonText string `json:"buttonText,omitempty"`
	ButtonURL  string `json:"buttonUrl,omitempty"`
}

type TwoColumnContent struct {
	Columns []LayoutColumn `json:"columns"`
}

// StatItem is one value/label pair in a stats grid.
type StatItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type StatsContent struct {
	Items []StatItem `json:"items"`
}

type ImageOverlayContent struct {
	ImageURL   string `json:"imageUrl"`
	BadgeText  string `json:"badgeText,omitempty"`
	Title      string `json:"title"`
	Paragraph  string `json:"paragraph,omitempty"`
	ButtonText string `json:"buttonText,omitempty"`
	ButtonURL  string `json:"buttonUrl,omitempty"`
}

type TwoColumnTextContent struct {
	LeftTitle  string `json:"leftTitle"`
	LeftText   string `json:"leftText"`
	RightTitle string `json:"rightTitle"`
	RightText  string `json:"rightText"`
}

type CompactImageTextContent struct {
	ImageURL  string `json:"imageUrl"`
	ImageAlt  string `json:"imageAlt,omitempty"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	ImageSide string `json:"imageSide"` // left or right
}

type MagazineFeatureContent struct {
	ImageURL        string `json:"imageUrl"`
	Category        string `json:"category,omitempty"`
	Title           string `json:"title"`
	Excerpt         string `json:"excerpt"`
	AuthorName      string `json:"authorName,omitempty"`
	AuthorAvatarURL string `json:"authorAvatarUrl,omitempty"`
	Date            string `json:"date,omitempty"`
}

type CardCenteredContent struct {
	ImageURL   string `json:"imageUrl,omitempty"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	ButtonText string `json:"buttonText,omitempty"`
	ButtonURL  string `json:"buttonUrl,omitempty"`
}

func (*LogoContent) isBlockContent()             {}
func (*SpacerContent) isBlockContent()           {}
func (*TextContent) isBlockContent()             {}
func (*ImageContent) isBlockContent()            {}
func (*ButtonContent) isBlockContent()           {}
func (*DividerContent) isBlockContent()          {}
func (*SocialLinksContent) isBlockContent()      {}
func (*FooterContent) isBlockContent()           {}
func (*LinkBarContent) isBlockContent()          {}
func (*AddressContent) isBlockContent()          {}
func (*ContainerContent) isBlockContent()        {}
func (*HeroContent) isBlockContent()             {}
func (*TwoColumnContent) isBlockContent()        {}
func (*StatsContent) isBlockContent()            {}
func (*ImageOverlayContent) isBlockContent()     {}
func (*TwoColumnTextContent) isBlockContent()    {}
func (*CardCenteredContent) isBlockContent()     {}
func (*CompactImageTextContent) isBlockContent() {}
func (*MagazineFeatureContent) isBlockContent()  {}

// newSettings returns a zero-valued settings struct for the given type.
func newSettings(t BlockType) (BlockSettings, error) {
	switch t {
	case BlockTypeLogo:
		return &LogoSettings{}, nil
	case BlockTypeSpacer:
		return &SpacerSettings{}, nil
	case BlockTypeText:
		return &TextSettings{}, nil
	case BlockTypeImage:
		return &ImageSettings{}, nil
	case BlockTypeButton:
		return &ButtonSettings{}, nil
	case BlockTypeDivider:
		return &DividerSettings{}, nil
	case BlockTypeSocialLinks:
		return &SocialLinksSettings{}, nil
	case BlockTypeFooter:
		return &FooterSettings{}, nil
	case BlockTypeLinkBar:
		return &LinkBarSettings{}, nil
	case BlockTypeAddress:
		return &AddressSettings{}, nil
	case BlockTypeLayouts:
		return &LayoutSettings{}, nil
	case BlockTypeContainer:
		return &ContainerSettings{}, nil
	default:
		return nil, fmt.Errorf("unknown block type %q", t)
	}
}

// newContent returns a zero-valued content struct for the given type and,
// for layouts, variation.
func newContent(t BlockType, v LayoutVariation) (BlockContent, error) {
	switch t {
	case BlockTypeLogo:
		return &LogoContent{}, nil
	case BlockTypeSpacer:
		return &SpacerContent{}, nil
	case BlockTypeText:
		return &TextContent{}, nil
	case BlockTypeImage:
		return &ImageContent{}, nil
	case BlockTypeButton:
		return &ButtonContent{}, nil
	case BlockTypeDivider:
		return &DividerContent{}, nil
	case BlockTypeSocialLinks:
		return &SocialLinksContent{}, nil
	case BlockTypeFooter:
		return &FooterContent{}, nil
	case BlockTypeLinkBar:
		return &LinkBarContent{}, nil
	case BlockTypeAddress:
		return &AddressContent{}, nil
	case BlockTypeContainer:
		return &ContainerContent{}, nil
	case BlockTypeLayouts:
		switch v {
		case LayoutHeroCenter:
			return &HeroContent{}, nil
		case LayoutTwoColumn5050, LayoutTwoColumn6040, LayoutTwoColumn4060,
			LayoutTwoColumn7030, LayoutTwoColumn3070, LayoutTwoColumn3366:
			return &TwoColumnContent{}, nil
		case LayoutStats2Column, LayoutStats3Column, LayoutStats4Column:
			return &StatsContent{}, nil
		case LayoutImageOverlay:
			return &ImageOverlayContent{}, nil
		case LayoutTwoColumnText:
			return &TwoColumnTextContent{}, nil
		case LayoutCompactImageText:
			return &CompactImageTextContent{}, nil
		case LayoutMagazineFeature:
			return &MagazineFeatureContent{}, nil
		case LayoutCardCentered:
			return &CardCenteredContent{}, nil
		default:
			return nil, fmt.Errorf("unknown layout variation %q", v)
		}
	default:
		return nil, fmt.Errorf("unknown block type %q", t)
	}
}

// emailBlockJSON is the raw envelope used during (un)marshaling, before the
// settings/content payloads are decoded into their typed structs.
type emailBlockJSON struct {
	ID              string          `json:"id"`
	Type            BlockType       `json:"type"`
	Position        int             `json:"position"`
	LayoutVariation LayoutVariation `json:"layoutVariation,omitempty"`
	Settings        json.RawMessage `json:"settings,omitempty"`
	Content         json.RawMessage `json:"content,omitempty"`
}

// UnmarshalJSON decodes a block, discriminating the settings/content
// payloads on the type (and layoutVariation) field. Missing or null
// payloads decode to zero values so that schema-adjacent AI output with
// omitted optional properties still round-trips; validation decides later
// what is actually required.
func (b *EmailBlock) UnmarshalJSON(data []byte) error {
	var raw emailBlockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal block envelope: %w", err)
	}

	b.ID = raw.ID
	b.Type = raw.Type
	b.Position = raw.Position
	b.LayoutVariation = raw.LayoutVariation

	settings, err := newSettings(raw.Type)
	if err != nil {
		return fmt.Errorf("block %s: %w", raw.ID, err)
	}
	if len(raw.Settings) > 0 && string(raw.Settings) != "null" {
		if err := json.Unmarshal(raw.Settings, settings); err != nil {
			return fmt.Errorf("block %s: failed to unmarshal settings for type %q: %w", raw.ID, raw.Type, err)
		}
	}
	b.Settings = settings

	content, err := newContent(raw.Type, raw.LayoutVariation)
	if err != nil {
		return fmt.Errorf("block %s: %w", raw.ID, err)
	}
	if len(raw.Content) > 0 && string(raw.Content) != "null" {
		if err := json.Unmarshal(raw.Content, content); err != nil {
			return fmt.Errorf("block %s: failed to unmarshal content for type %q: %w", raw.ID, raw.Type, err)
		}
	}
	b.Content = content

	return nil
}

// UnmarshalBlocks decodes a JSON array of blocks.
func UnmarshalBlocks(data []byte) ([]EmailBlock, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to unmarshal block array: %w", err)
	}
	out := make([]EmailBlock, len(raws))
	for i, r := range raws {
		if err := json.Unmarshal(r, &out[i]); err != nil {
			return nil, fmt.Errorf("block at index %d: %w", i, err)
		}
	}
	return out, nil
}
