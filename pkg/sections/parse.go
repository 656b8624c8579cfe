package sections

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseEmailContent extracts a legacy document from stored JSON. Legacy
// documents predate schema validation and drift in small ways (numbers as
// strings, missing arrays, extra fields), so extraction is tolerant by
// path rather than strict struct decoding: absent fields become zero
// values and only a structurally unusable document is an error.
func ParseEmailContent(data []byte) (*EmailContent, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse email content: invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("parse email content: expected a JSON object, got %s", root.Type)
	}

	content := &EmailContent{
		Headline:    root.Get("headline").String(),
		Subheadline: root.Get("subheadline").String(),
	}

	root.Get("sections").ForEach(func(_, raw gjson.Result) bool {
		content.Sections = append(content.Sections, parseSection(raw))
		return true
	})

	if cta := root.Get("cta"); cta.IsObject() {
		content.CTA = parseCTA(cta)
	}
	if footer := root.Get("footer"); footer.IsObject() {
		content.Footer = &FooterInfo{
			CompanyName:    footer.Get("companyName").String(),
			Address:        footer.Get("address").String(),
			UnsubscribeURL: footer.Get("unsubscribeUrl").String(),
		}
	}
	return content, nil
}

func parseSection(raw gjson.Result) Section {
	s := Section{
		Type:   SectionType(raw.Get("type").String()),
		Text:   raw.Get("text").String(),
		Level:  int(raw.Get("level").Int()),
		Height: int(raw.Get("height").Int()),
	}

	raw.Get("items").ForEach(func(_, item gjson.Result) bool {
		s.Items = append(s.Items, item.String())
		return true
	})

	if hero := raw.Get("hero"); hero.IsObject() {
		s.Hero = &HeroSection{
			Title:      hero.Get("title").String(),
			Subtitle:   hero.Get("subtitle").String(),
			ButtonText: hero.Get("buttonText").String(),
			ButtonURL:  hero.Get("buttonUrl").String(),
		}
	}

	raw.Get("features").ForEach(func(_, f gjson.Result) bool {
		s.Features = append(s.Features, Feature{
			ImageURL: f.Get("imageUrl").String(),
			Title:    f.Get("title").String(),
			Text:     f.Get("text").String(),
		})
		return true
	})

	if t := raw.Get("testimonial"); t.IsObject() {
		s.Testimonial = &Testimonial{
			Quote:      t.Get("quote").String(),
			AuthorName: t.Get("authorName").String(),
			AvatarURL:  t.Get("avatarUrl").String(),
		}
	}

	raw.Get("stats").ForEach(func(_, st gjson.Result) bool {
		s.Stats = append(s.Stats, Stat{
			// Older documents stored stat values as raw numbers.
			Value: st.Get("value").String(),
			Label: st.Get("label").String(),
		})
		return true
	})

	if c := raw.Get("comparison"); c.IsObject() {
		s.Comparison = &Comparison{
			Left:  parseComparisonSide(c.Get("left")),
			Right: parseComparisonSide(c.Get("right")),
		}
	}

	if cta := raw.Get("cta"); cta.IsObject() {
		s.CTA = parseCTA(cta)
	}
	return s
}

func parseComparisonSide(raw gjson.Result) ComparisonSide {
	side := ComparisonSide{Title: raw.Get("title").String()}
	raw.Get("items").ForEach(func(_, item gjson.Result) bool {
		side.Items = append(side.Items, item.String())
		return true
	})
	return side
}

func parseCTA(raw gjson.Result) *CallToAction {
	return &CallToAction{
		Text: raw.Get("text").String(),
		URL:  raw.Get("url").String(),
	}
}
