// Package embedkit renders stored embed templates into Discord embeds and
// enforces the platform's outbound size limits.
package embedkit

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	st "shopfront/internal/storagetypes"
)

const (
	// MaxMessageLen is the hard limit for plain outbound messages.
	MaxMessageLen = 2000
	// MaxDescriptionLen is the hard limit for a template description.
	MaxDescriptionLen = 4000

	DefaultColor = 0x36393f
)

// ValidationError reports an outbound payload that exceeds a platform limit
// or misses a required alternative. The send fails with it instead of
// silently truncating.
type ValidationError struct {
	Field string
	Limit int
	Got   int
}

func (e *ValidationError) Error() string {
	if e.Limit == 0 {
		return fmt.Sprintf("embedkit: %s is required", e.Field)
	}
	return fmt.Sprintf("embedkit: %s is %d characters, limit is %d", e.Field, e.Got, e.Limit)
}

// CheckMessage validates a plain message against the 2000-character limit.
func CheckMessage(content string) error {
	if len([]rune(content)) > MaxMessageLen {
		return &ValidationError{Field: "message", Limit: MaxMessageLen, Got: len([]rune(content))}
	}
	return nil
}

// Validate checks a template before it is stored or sent.
func Validate(tpl st.EmbedTemplate) error {
	if n := len([]rune(tpl.Description)); n > MaxDescriptionLen {
		return &ValidationError{Field: "description", Limit: MaxDescriptionLen, Got: n}
	}
	return nil
}

// Render builds the Discord embed for a stored template.
func Render(tpl st.EmbedTemplate) *discordgo.MessageEmbed {
	color := tpl.Color
	if color == 0 {
		color = DefaultColor
	}
	embed := &discordgo.MessageEmbed{
		Title:       tpl.Title,
		Description: tpl.Description,
		Color:       color,
	}
	if tpl.Footer.Text != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: tpl.Footer.Text, IconURL: tpl.Footer.Icon}
	}
	if tpl.Footer.Timestamp {
		embed.Timestamp = time.Now().Format(time.RFC3339)
	}
	if tpl.Author.Name != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{Name: tpl.Author.Name, IconURL: tpl.Author.Icon}
	}
	if tpl.Image != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: tpl.Image}
	}
	if tpl.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: tpl.Thumbnail}
	}
	for _, f := range tpl.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	return embed
}
