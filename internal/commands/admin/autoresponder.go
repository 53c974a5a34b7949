package admin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"shopfront/internal/core"
	"shopfront/internal/storage"
	st "shopfront/internal/storagetypes"
)

func (c *AdminCommand) runAutoresponder(ctx *core.SlashInteractionContext, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	switch sub.Name {
	case "add":
		return c.responderAdd(ctx, sub)
	case "list":
		return c.responderList(ctx)
	case "delete":
		return c.responderDelete(ctx, sub)
	}
	return nil
}

func (c *AdminCommand) responderAdd(ctx *core.SlashInteractionContext, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	session := ctx.Session
	event := ctx.Event
	opts := optionMap(sub)

	trigger := stringOption(opts, "trigger")
	response := stringOption(opts, "response")
	embedName := stringOption(opts, "embed")
	channelID := ""
	if opt, ok := opts["channel"]; ok {
		channelID = opt.ChannelValue(session).ID
	}

	if response == "" && embedName == "" {
		return core.RespondEphemeral(session, event, "❌ You must provide either a response or an embed name.")
	}
	if embedName != "" {
		if _, err := ctx.Deps.Storage.Embed(embedName); errors.Is(err, storage.ErrNotFound) {
			return core.RespondEphemeral(session, event, fmt.Sprintf("❌ No embed named `%s`.", embedName))
		}
	}

	rule := st.AutoresponderRule{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		Response:  response,
		EmbedName: embedName,
		ChannelID: channelID,
	}
	if err := ctx.Deps.Storage.AddAutoresponder(rule); err != nil {
		return fmt.Errorf("store autoresponder: %w", err)
	}

	scope := "globally"
	if channelID != "" {
		scope = fmt.Sprintf("in <#%s>", channelID)
	}
	return core.RespondEphemeral(session, event,
		fmt.Sprintf("✅ Autoresponder added!\n**Trigger:** %s\n**Scope:** %s", trigger, scope))
}

func (c *AdminCommand) responderList(ctx *core.SlashInteractionContext) error {
	rules, err := ctx.Deps.Storage.Autoresponders()
	if err != nil {
		return fmt.Errorf("load autoresponders: %w", err)
	}
	if len(rules) == 0 {
		return core.RespondEphemeral(ctx.Session, ctx.Event, "📋 No autoresponders configured.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 **Autoresponders** (%d):\n", len(rules))
	for _, r := range rules {
		scope := "Global"
		if r.ChannelID != "" {
			scope = fmt.Sprintf("<#%s>", r.ChannelID)
		}
		kind := "Text"
		if r.EmbedName != "" {
			kind = "Embed: " + r.EmbedName
		}
		fmt.Fprintf(&b, "• **ID:** `%s` | **Trigger:** %q | **Scope:** %s | **Type:** %s\n",
			r.ID, r.Trigger, scope, kind)
	}
	return core.RespondEphemeral(ctx.Session, ctx.Event, b.String())
}

func (c *AdminCommand) responderDelete(ctx *core.SlashInteractionContext, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	id := stringOption(optionMap(sub), "id")
	err := ctx.Deps.Storage.DeleteAutoresponder(id)
	if errors.Is(err, storage.ErrNotFound) {
		return core.RespondEphemeral(ctx.Session, ctx.Event, "❌ Autoresponder not found.")
	}
	if err != nil {
		return fmt.Errorf("delete autoresponder: %w", err)
	}
	return core.RespondEphemeral(ctx.Session, ctx.Event, "🗑️ Autoresponder deleted.")
}
