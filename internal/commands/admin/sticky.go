package admin

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"shopfront/internal/core"
	"shopfront/internal/embedkit"
	"shopfront/internal/sticky"
	"shopfront/internal/storage"
	st "shopfront/internal/storagetypes"
)

func (c *AdminCommand) runSticky(ctx *core.SlashInteractionContext, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	switch sub.Name {
	case "set":
		return c.stickySet(ctx, sub)
	case "remove":
		return c.stickyRemove(ctx)
	case "view":
		return c.stickyView(ctx)
	}
	return nil
}

func (c *AdminCommand) stickySet(ctx *core.SlashInteractionContext, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	session := ctx.Session
	event := ctx.Event
	opts := optionMap(sub)

	content := stringOption(opts, "content")
	embedName := stringOption(opts, "embed")
	if content == "" && embedName == "" {
		return core.RespondEphemeral(session, event, "❌ You must provide content or an embed name.")
	}
	if err := embedkit.CheckMessage(content); err != nil {
		return core.RespondEphemeral(session, event, fmt.Sprintf("❌ %v", err))
	}
	if embedName != "" {
		if _, err := ctx.Deps.Storage.Embed(embedName); errors.Is(err, storage.ErrNotFound) {
			return core.RespondEphemeral(session, event, fmt.Sprintf("❌ No embed named `%s`.", embedName))
		}
	}

	cfg := st.StickyConfig{Content: content, EmbedName: embedName}
	sender := sticky.NewDiscordSender(session, ctx.Deps.Storage)
	if err := ctx.Deps.Sticky.Set(event.ChannelID, cfg, sender); err != nil {
		return fmt.Errorf("set sticky: %w", err)
	}
	return core.RespondEphemeral(session, event, "📌 Sticky message set for this channel.")
}

func (c *AdminCommand) stickyRemove(ctx *core.SlashInteractionContext) error {
	sender := sticky.NewDiscordSender(ctx.Session, ctx.Deps.Storage)
	err := ctx.Deps.Sticky.Remove(ctx.Event.ChannelID, sender)
	if errors.Is(err, storage.ErrNotFound) {
		return core.RespondEphemeral(ctx.Session, ctx.Event, "❌ No sticky message configured for this channel.")
	}
	if err != nil {
		return fmt.Errorf("remove sticky: %w", err)
	}
	return core.RespondEphemeral(ctx.Session, ctx.Event, "🗑️ Sticky message removed.")
}

func (c *AdminCommand) stickyView(ctx *core.SlashInteractionContext) error {
	cfg, err := ctx.Deps.Sticky.View(ctx.Event.ChannelID)
	if errors.Is(err, storage.ErrNotFound) {
		return core.RespondEphemeral(ctx.Session, ctx.Event, "❌ No sticky message configured for this channel.")
	}
	if err != nil {
		return fmt.Errorf("view sticky: %w", err)
	}

	kind := "Text"
	if cfg.EmbedName != "" {
		kind = "Embed: " + cfg.EmbedName
	}
	preview := cfg.Content
	if preview == "" {
		preview = "*none*"
	}
	return core.RespondEmbedEphemeral(ctx.Session, ctx.Event, &discordgo.MessageEmbed{
		Title: "📌 Sticky Message",
		Color: core.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Type", Value: kind, Inline: true},
			{Name: "Created", Value: cfg.CreatedAt.Format("2006-01-02 15:04"), Inline: true},
			{Name: "Content", Value: preview},
		},
	})
}
