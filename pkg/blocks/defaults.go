package blocks

import "fmt"

// Factory functions producing syntactically valid blocks with
// type/variation-specific placeholder settings and content. Freshly
// created blocks always pass ValidateBlock.

func defaultPadding() Padding {
	return Padding{Top: 16, Right: 24, Bottom: 16, Left: 24}
}

// CreateDefaultBlock builds a default block of the given type at the given
// position. For "layouts", variation selects the content shape; for every
// other type it must be empty. IDs come from the supplied generator.
func CreateDefaultBlock(t BlockType, position int, variation LayoutVariation, ids IDGenerator) (*EmailBlock, error) {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if t != BlockTypeLayouts && variation != "" {
		return nil, fmt.Errorf("variation %q is only valid for layouts blocks", variation)
	}

	b := &EmailBlock{
		ID:              ids.NewID(),
		Type:            t,
		Position:        position,
		LayoutVariation: variation,
	}

	switch t {
	case BlockTypeLogo:
		b.Settings = &LogoSettings{
			BaseSettings: BaseSettings{Padding: Padding{Top: 24, Right: 24, Bottom: 24, Left: 24}},
			Align:        AlignCenter,
			Width:        160,
		}
		b.Content = &LogoContent{ImageURL: "{{logo_url}}", AltText: "Logo"}
	case BlockTypeSpacer:
		b.Settings = &SpacerSettings{Size: SpacerMedium}
		b.Content = &SpacerContent{}
	case BlockTypeText:
		b.Settings = &TextSettings{
			BaseSettings: BaseSettings{Padding: defaultPadding()},
			FontSize:     16,
			LineHeight:   1.6,
			Color:        "#333333",
			Align:        AlignLeft,
			FontWeight:   400,
		}
		b.Content = &TextContent{Text: "Write something worth reading."}
	case BlockTypeImage:
		b.Settings = &ImageSettings{
			BaseSettings: BaseSettings{Padding: defaultPadding()},
			Align:        AlignCenter,
			Width:        552,
			BorderRadius: 0,
		}
		b.Content = &ImageContent{AltText: "Image"}
	case BlockTypeButton:
		b.Settings = &ButtonSettings{
			BaseSettings: BaseSettings{Padding: defaultPadding()},
			Style:        ButtonStyleSolid,
			ButtonColor:  "#1d4ed8",
			TextColor:    "#ffffff",
			BorderRadius: 6,
			Align:        AlignCenter,
			FontSize:     16,
		}
		b.Content = &ButtonContent{Text: "Call to action", URL: "{{cta_url}}"}
	case BlockTypeDivider:
		b.Settings = &DividerSettings{
			BaseSettings: BaseSettings{Padding: defaultPadding()},
			LineStyle:    DividerSolid,
			LineColor:    "#e5e7eb",
			Thickness:    1,
			WidthPercent: 100,
		}
		b.Content = &DividerContent{Glyph: "✦"}
	case BlockTypeSocialLinks:
		b.Settings = &SocialLinksSettings{
			BaseSettings: BaseSettings{Padding: defaultPadding()},
			Align:        AlignCenter,
			IconSize:     24,
		}
		b.Content = &SocialLinksContent{Links: []SocialLink{
			{Platform: "x", URL: "{{social_x_url}}"},
			{Platform: "linkedin", URL: "{{social_linkedin_url}}"},
		}}
	case BlockTypeFooter:
		b.Settings = &FooterSettings{
			BaseSettings: BaseSettings{Padding: Padding{Top: 32, Right: 24, Bottom: 32, Left: 24}},
			TextColor:    "#6b7280",
			FontSize:     12,
			Align:        AlignCenter,
		}
		b.Content = &FooterContent{
			CompanyName:    "{{company_name}}",
			Address:        "{{company_address}}",
			UnsubscribeURL: "{{unsubscribe_url}}",
			PreferencesURL: "{{preferences_url}}",
		}
	case BlockTypeLinkBar:
		b.Settings = &LinkBarSettings{
			BaseSettings: BaseSettings{Padding: defaultPadding()},
			Align:        AlignCenter,
			TextColor:    "#374151",
			FontSize:     14,
			Separator:    "·",
		}
		b.Content = &LinkBarContent{Links: []NamedLink{
			{Label: "Shop", URL: "{{shop_url}}"},
			{Label: "About", URL: "{{about_url}}"},
			{Label: "Contact", URL: "{{contact_url}}"},
		}}
	case BlockTypeAddress:
		b.Settings = &AddressSettings{
			BaseSettings: BaseSettings{Padding: defaultPadding()},
			TextColor:    "#6b7280",
			FontSize:     12,
			Align:        AlignCenter,
		}
		b.Content = &AddressContent{
			CompanyName:  "{{company_name}}",
			AddressLine1: "{{company_address}}",
		}
	case BlockTypeContainer:
		b.Settings = &ContainerSettings{}
		b.Content = &ContainerContent{}
	case BlockTypeLayouts:
		b.Settings = &LayoutSettings{
			BaseSettings: BaseSettings{Padding: Padding{Top: 32, Right: 24, Bottom: 32, Left: 24}},
			TextColor:    "#111827",
			AccentColor:  "#1d4ed8",
		}
		content, err := defaultLayoutContent(variation)
		if err != nil {
			return nil, err
		}
		b.Content = content
	default:
		return nil, fmt.Errorf("unknown block type %q", t)
	}

	return b, nil
}

func defaultLayoutContent(v LayoutVariation) (BlockContent, error) {
	switch v {
	case LayoutHeroCenter:
		return &HeroContent{
			ShowHeader:    true,
			HeaderText:    "NEW",
			ShowTitle:     true,
			Title:         "A headline that earns the open",
			ShowDivider:   true,
			ShowParagraph: true,
			Paragraph:     "One or two sentences that set up the offer and make the button irresistible.",
			ShowButton:    true,
			ButtonText:    "Get started",
			ButtonURL:     "{{cta_url}}",
		}, nil
	case LayoutTwoColumn5050, LayoutTwoColumn6040, LayoutTwoColumn4060,
		LayoutTwoColumn7030, LayoutTwoColumn3070, LayoutTwoColumn3366:
		return &TwoColumnContent{Columns: []LayoutColumn{
			{
				Title:      "First column",
				Text:       "Placeholder copy for the left column.",
				ButtonText: "Learn more",
				ButtonURL:  "{{cta_url}}",
			},
			{
				Title: "Second column",
				Text:  "Placeholder copy for the right column.",
			},
		}}, nil
	case LayoutStats2Column, LayoutStats3Column, LayoutStats4Column:
		n := StatsColumnCounts[v]
		items := make([]StatItem, n)
		for i := range items {
			items[i] = StatItem{Value: "42", Label: fmt.Sprintf("Metric %d", i+1)}
		}
		return &StatsContent{Items: items}, nil
	case LayoutImageOverlay:
		return &ImageOverlayContent{
			BadgeText:  "FEATURED",
			Title:      "Put a headline over the image",
			Paragraph:  "Supporting copy rendered on top of the background image.",
			ButtonText: "See more",
			ButtonURL:  "{{cta_url}}",
		}, nil
	case LayoutTwoColumnText:
		return &TwoColumnTextContent{
			LeftTitle:  "Left heading",
			LeftText:   "Placeholder copy for the left side.",
			RightTitle: "Right heading",
			RightText:  "Placeholder copy for the right side.",
		}, nil
	case LayoutCompactImageText:
		return &CompactImageTextContent{
			Title:     "Compact feature",
			Text:      "A thumbnail next to a short paragraph.",
			ImageSide: "left",
		}, nil
	case LayoutMagazineFeature:
		return &MagazineFeatureContent{
			Category: "STORY",
			Title:    "Magazine-style feature",
			Excerpt:  "A large image with a category tag, title, excerpt and byline.",
		}, nil
	case LayoutCardCentered:
		return &CardCenteredContent{
			Title:      "Card title",
			Text:       "Centered card with optional image and button.",
			ButtonText: "Open",
			ButtonURL:  "{{cta_url}}",
		}, nil
	default:
		return nil, fmt.Errorf("unknown layout variation %q", v)
	}
}
