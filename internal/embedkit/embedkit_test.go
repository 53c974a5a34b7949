package embedkit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	st "shopfront/internal/storagetypes"
)

func TestCheckMessage(t *testing.T) {
	assert.NoError(t, CheckMessage(""))
	assert.NoError(t, CheckMessage(strings.Repeat("a", MaxMessageLen)))

	err := CheckMessage(strings.Repeat("a", MaxMessageLen+1))
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "message", verr.Field)
	assert.Equal(t, MaxMessageLen, verr.Limit)
}

func TestCheckMessageCountsRunes(t *testing.T) {
	// 2000 multibyte runes are within the limit even though the byte count
	// is far larger.
	assert.NoError(t, CheckMessage(strings.Repeat("⠀", MaxMessageLen)))
}

func TestValidateDescriptionLimit(t *testing.T) {
	assert.NoError(t, Validate(st.EmbedTemplate{Description: strings.Repeat("a", MaxDescriptionLen)}))
	assert.Error(t, Validate(st.EmbedTemplate{Description: strings.Repeat("a", MaxDescriptionLen+1)}))
}

func TestRender(t *testing.T) {
	tpl := st.EmbedTemplate{
		Title:       "welcome",
		Description: "shop rules",
		Footer:      st.EmbedFooter{Text: "footer", Timestamp: true},
		Author:      st.EmbedAuthor{Name: "shop"},
		Image:       "https://example.com/banner.png",
		Thumbnail:   "https://example.com/logo.png",
		Fields:      []st.EmbedField{{Name: "f", Value: "v", Inline: true}},
	}

	embed := Render(tpl)
	assert.Equal(t, "welcome", embed.Title)
	assert.Equal(t, DefaultColor, embed.Color, "zero color falls back to the default")
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "footer", embed.Footer.Text)
	assert.NotEmpty(t, embed.Timestamp)
	require.NotNil(t, embed.Author)
	require.NotNil(t, embed.Image)
	require.NotNil(t, embed.Thumbnail)
	require.Len(t, embed.Fields, 1)
	assert.True(t, embed.Fields[0].Inline)
}

func TestRenderKeepsExplicitColor(t *testing.T) {
	embed := Render(st.EmbedTemplate{Color: 0xff0000})
	assert.Equal(t, 0xff0000, embed.Color)
}
