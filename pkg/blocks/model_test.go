package blocks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalEmailBlock_Button(t *testing.T) {
	data := []byte(`{
		"id": "btn-1",
		"type": "button",
		"position": 3,
		"settings": {
			"padding": {"top": 16, "right": 24, "bottom": 16, "left": 24},
			"style": "solid",
			"buttonColor": "#1d4ed8",
			"textColor": "#ffffff",
			"borderRadius": 6,
			"align": "center",
			"fontSize": 16
		},
		"content": {"text": "Shop now", "url": "{{cta_url}}"}
	}`)

	var b EmailBlock
	require.NoError(t, json.Unmarshal(data, &b))

	assert.Equal(t, "btn-1", b.ID)
	assert.Equal(t, BlockTypeButton, b.Type)
	assert.Equal(t, 3, b.Position)

	settings, ok := b.Settings.(*ButtonSettings)
	require.True(t, ok, "settings should decode to *ButtonSettings")
	assert.Equal(t, ButtonStyleSolid, settings.Style)
	assert.Equal(t, "#1d4ed8", settings.ButtonColor)
	assert.Equal(t, 16, settings.BaseSettings.Padding.Top)

	content, ok := b.Content.(*ButtonContent)
	require.True(t, ok, "content should decode to *ButtonContent")
	assert.Equal(t, "Shop now", content.Text)
	assert.Equal(t, "{{cta_url}}", content.URL)
}

func TestUnmarshalEmailBlock_LayoutVariationSelectsContent(t *testing.T) {
	tests := []struct {
		name      string
		variation LayoutVariation
		content   string
		check     func(t *testing.T, c BlockContent)
	}{
		{
			name:      "hero",
			variation: LayoutHeroCenter,
			content:   `{"showTitle": true, "title": "Welcome"}`,
			check: func(t *testing.T, c BlockContent) {
				hero, ok := c.(*HeroContent)
				require.True(t, ok)
				assert.True(t, hero.ShowTitle)
				assert.Equal(t, "Welcome", hero.Title)
			},
		},
		{
			name:      "two column",
			variation: LayoutTwoColumn6040,
			content:   `{"columns": [{"title": "Left"}, {"title": "Right"}]}`,
			check: func(t *testing.T, c BlockContent) {
				tc, ok := c.(*TwoColumnContent)
				require.True(t, ok)
				require.Len(t, tc.Columns, 2)
				assert.Equal(t, "Left", tc.Columns[0].Title)
			},
		},
		{
			name:      "stats",
			variation: LayoutStats3Column,
			content:   `{"items": [{"value": "98%", "label": "Uptime"}]}`,
			check: func(t *testing.T, c BlockContent) {
				st, ok := c.(*StatsContent)
				require.True(t, ok)
				require.Len(t, st.Items, 1)
				assert.Equal(t, "98%", st.Items[0].Value)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(`{
				"id": "l-1",
				"type": "layouts",
				"position": 0,
				"layoutVariation": "` + string(tt.variation) + `",
				"content": ` + tt.content + `
			}`)

			var b EmailBlock
			require.NoError(t, json.Unmarshal(data, &b))
			assert.Equal(t, tt.variation, b.LayoutVariation)
			tt.check(t, b.Content)
		})
	}
}

func TestUnmarshalEmailBlock_MissingPayloadsDecodeToZero(t *testing.T) {
	var b EmailBlock
	require.NoError(t, json.Unmarshal([]byte(`{"id": "t-1", "type": "text", "position": 1}`), &b))

	settings, ok := b.Settings.(*TextSettings)
	require.True(t, ok)
	assert.Zero(t, settings.FontSize)

	content, ok := b.Content.(*TextContent)
	require.True(t, ok)
	assert.Empty(t, content.Text)
}

func TestUnmarshalEmailBlock_UnknownType(t *testing.T) {
	var b EmailBlock
	err := json.Unmarshal([]byte(`{"id": "x", "type": "carousel", "position": 0}`), &b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carousel")
}

func TestUnmarshalEmailBlock_ContainerChildren(t *testing.T) {
	data := []byte(`{
		"id": "c-1",
		"type": "container",
		"position": 0,
		"content": {"children": [
			{"id": "t-1", "type": "text", "position": 0, "content": {"text": "inside"}},
			{"id": "d-1", "type": "divider", "position": 1}
		]}
	}`)

	var b EmailBlock
	require.NoError(t, json.Unmarshal(data, &b))

	ct, ok := b.Content.(*ContainerContent)
	require.True(t, ok)
	require.Len(t, ct.Children, 2)
	assert.Equal(t, BlockTypeText, ct.Children[0].Type)
	assert.Equal(t, "inside", ct.Children[0].Content.(*TextContent).Text)
	assert.Equal(t, BlockTypeDivider, ct.Children[1].Type)
}

func TestUnmarshalBlocks(t *testing.T) {
	data := []byte(`[
		{"id": "a", "type": "spacer", "position": 0},
		{"id": "b", "type": "divider", "position": 1}
	]`)

	bs, err := UnmarshalBlocks(data)
	require.NoError(t, err)
	require.Len(t, bs, 2)
	assert.Equal(t, BlockTypeSpacer, bs[0].Type)
	assert.Equal(t, BlockTypeDivider, bs[1].Type)
}

func TestGlobalEmailSettingsNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        GlobalEmailSettings
		wantWidth int
	}{
		{"zero value gets defaults", GlobalEmailSettings{}, 600},
		{"below minimum clamps", GlobalEmailSettings{MaxWidth: 320}, 400},
		{"above maximum clamps", GlobalEmailSettings{MaxWidth: 1200}, 800},
		{"in range kept", GlobalEmailSettings{MaxWidth: 640}, 640},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.in.Normalize()
			assert.Equal(t, tt.wantWidth, g.MaxWidth)
			assert.NotEmpty(t, g.FontFamily)
			assert.NotEmpty(t, g.BackgroundColor)
		})
	}
}

func TestTwoColumnRatiosCoverAllTwoColumnVariations(t *testing.T) {
	for _, v := range AllLayoutVariations {
		if _, ok := TwoColumnRatios[v]; ok {
			share := TwoColumnRatios[v]
			assert.Greater(t, share, 0)
			assert.Less(t, share, 100)
		}
	}
	assert.Len(t, TwoColumnRatios, 6)
}
