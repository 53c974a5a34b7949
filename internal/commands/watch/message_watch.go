package watch

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"shopfront/internal/core"
	"shopfront/internal/embedkit"
	"shopfront/internal/responder"
	"shopfront/internal/sticky"
)

// WatchCommand is message-driven only: it runs the autoresponder and sticky
// passes on every inbound channel message.
type WatchCommand struct{}

func (c *WatchCommand) Name() string            { return "watch" }
func (c *WatchCommand) Description() string     { return "Autoresponder and sticky message pass" }
func (c *WatchCommand) Group() string           { return "watch" }
func (c *WatchCommand) Category() string        { return "🛠️ Management" }
func (c *WatchCommand) UserPermissions() []int64 { return []int64{} }

func (c *WatchCommand) Run(ctx interface{}) error { return nil }

func (c *WatchCommand) Message(ctx *core.MessageContext) error {
	event := ctx.Event
	if event.Author.Bot {
		return nil
	}

	if err := c.autorespond(ctx); err != nil {
		ctx.Deps.Log.Error().Err(err).Str("channel", event.ChannelID).Msg("autoresponder pass failed")
	}

	sender := sticky.NewDiscordSender(ctx.Session, ctx.Deps.Storage)
	if _, err := ctx.Deps.Sticky.OnMessage(event.ChannelID, sender); err != nil {
		ctx.Deps.Log.Error().Err(err).Str("channel", event.ChannelID).Msg("sticky repost failed")
	}
	return nil
}

func (c *WatchCommand) autorespond(ctx *core.MessageContext) error {
	event := ctx.Event

	rules, err := ctx.Deps.Storage.Autoresponders()
	if err != nil {
		return fmt.Errorf("load autoresponders: %w", err)
	}
	rule := responder.Match(rules, event.Content, event.ChannelID)
	if rule == nil {
		return nil
	}

	send := &discordgo.MessageSend{
		Content:   rule.Response,
		Reference: event.Reference(),
	}
	if rule.EmbedName != "" {
		tpl, err := ctx.Deps.Storage.Embed(rule.EmbedName)
		if err != nil {
			return fmt.Errorf("resolve autoresponder embed %q: %w", rule.EmbedName, err)
		}
		send.Embeds = []*discordgo.MessageEmbed{embedkit.Render(*tpl)}
	}

	_, err = ctx.Session.ChannelMessageSendComplex(event.ChannelID, send)
	return err
}

func init() {
	core.RegisterCommand(&WatchCommand{})
}
