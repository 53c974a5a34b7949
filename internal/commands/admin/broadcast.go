package admin

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"shopfront/internal/core"
	"shopfront/internal/embedkit"
)

var spacerMessage = strings.TrimSuffix(strings.Repeat("⠀\n", 36), "\n")

// runSay relays a staff message through the bot, with the spacer variant
// used to push old content out of view.
func (c *AdminCommand) runSay(ctx *core.SlashInteractionContext, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	session := ctx.Session
	event := ctx.Event
	opts := optionMap(sub)

	message := stringOption(opts, "message")
	if stringOption(opts, "type") == "spacer" {
		message = spacerMessage
	}
	if err := embedkit.CheckMessage(message); err != nil {
		return core.RespondEphemeral(session, event, fmt.Sprintf("❌ %v", err))
	}

	if err := core.RespondEphemeral(session, event, "✅ Message sent!"); err != nil {
		return err
	}
	return core.MessageRespond(session, event.ChannelID, message)
}

func (c *AdminCommand) runStatus(ctx *core.SlashInteractionContext, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	state := stringOption(optionMap(sub), "state")

	var label string
	switch state {
	case "open":
		label = "🟢 **opened** — orders are being taken!"
	case "closed":
		label = "🔴 **closed** — check back later."
	case "slow":
		label = "🟡 **slow orders** — processing may take longer than usual."
	default:
		return core.RespondEphemeral(ctx.Session, ctx.Event, "❌ Unknown shop status.")
	}

	return core.Respond(ctx.Session, ctx.Event, fmt.Sprintf("the shop is now %s", label))
}
