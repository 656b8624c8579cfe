// Package sections carries the legacy "sections" content model and the
// bidirectional migration to the current block model. Sections are the
// pre-block generation: a flat document of headline, subheadline, ordered
// content sections, an optional call to action and an optional footer.
package sections

// SectionType discriminates the legacy section union.
type SectionType string

const (
	SectionHeading     SectionType = "heading"
	SectionText        SectionType = "text"
	SectionList        SectionType = "list"
	SectionDivider     SectionType = "divider"
	SectionSpacer      SectionType = "spacer"
	SectionHero        SectionType = "hero"
	SectionFeatureGrid SectionType = "feature-grid"
	SectionTestimonial SectionType = "testimonial"
	SectionStats       SectionType = "stats"
	SectionComparison  SectionType = "comparison"
	SectionCTABlock    SectionType = "cta-block"
)

// AllSectionTypes lists every legacy section type.
var AllSectionTypes = []SectionType{
	SectionHeading,
	SectionText,
	SectionList,
	SectionDivider,
	SectionSpacer,
	SectionHero,
	SectionFeatureGrid,
	SectionTestimonial,
	SectionStats,
	SectionComparison,
	SectionCTABlock,
}

// Section is one entry of the legacy content list. The legacy schema was a
// single flat object: which fields are meaningful depends on Type, and the
// richer types carry their payload in a nested object.
type Section struct {
	Type SectionType `json:"type"`

	// heading, text
	Text  string `json:"text,omitempty"`
	Level int    `json:"level,omitempty"`

	// list
	Items []string `json:"items,omitempty"`

	// spacer
	Height int `json:"height,omitempty"`

	// nested payloads
	Hero        *HeroSection  `json:"hero,omitempty"`
	Features    []Feature     `json:"features,omitempty"`
	Testimonial *Testimonial  `json:"testimonial,omitempty"`
	Stats       []Stat        `json:"stats,omitempty"`
	Comparison  *Comparison   `json:"comparison,omitempty"`
	CTA         *CallToAction `json:"cta,omitempty"`
}

// HeroSection is the legacy hero payload.
type HeroSection struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	ButtonText string `json:"buttonText,omitempty"`
	ButtonURL  string `json:"buttonUrl,omitempty"`
}

// Feature is one cell of a legacy feature grid.
type Feature struct {
	ImageURL string `json:"imageUrl,omitempty"`
	Title    string `json:"title"`
	Text     string `json:"text,omitempty"`
}

// Testimonial is the required payload of a testimonial section.
type Testimonial struct {
	Quote      string `json:"quote"`
	AuthorName string `json:"authorName,omitempty"`
	AvatarURL  string `json:"avatarUrl,omitempty"`
}

// Stat is one value/label pair of a legacy stats row.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ComparisonSide is one half of a legacy comparison section.
type ComparisonSide struct {
	Title string   `json:"title"`
	Items []string `json:"items,omitempty"`
}

// Comparison is the required payload of a comparison section.
type Comparison struct {
	Left  ComparisonSide `json:"left"`
	Right ComparisonSide `json:"right"`
}

// CallToAction is the legacy CTA payload, used both inline (cta-block
// sections) and at the document level.
type CallToAction struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// FooterInfo is the legacy document footer.
type FooterInfo struct {
	CompanyName    string `json:"companyName"`
	Address        string `json:"address,omitempty"`
	UnsubscribeURL string `json:"unsubscribeUrl,omitempty"`
}

// EmailContent is a whole legacy document.
type EmailContent struct {
	Headline    string        `json:"headline,omitempty"`
	Subheadline string        `json:"subheadline,omitempty"`
	Sections    []Section     `json:"sections"`
	CTA         *CallToAction `json:"cta,omitempty"`
	Footer      *FooterInfo   `json:"footer,omitempty"`
}
