package ticket

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"shopfront/internal/core"
	"shopfront/internal/ticket"
)

// adminMenu dispatches the staff select menu. The token set is closed;
// anything else is a stale control and gets rejected.
func (c *TicketCommand) adminMenu(ctx *core.ComponentInteractionContext) error {
	session := ctx.Session
	event := ctx.Event

	values := event.MessageComponentData().Values
	if len(values) == 0 {
		return nil
	}
	action, err := ticket.ParseMenuAction(values[0])
	if err != nil {
		ctx.Deps.Log.Warn().Err(err).Str("channel", event.ChannelID).Msg("stale admin menu token")
		return core.RespondEphemeral(session, event, "❌ Unknown admin action.")
	}

	switch action {
	case ticket.ActionAddUser:
		return showUserModal(ctx, idModalAddUser, "Add User to Ticket", "Enter user ID to add", false)
	case ticket.ActionBanUser:
		return showUserModal(ctx, idModalBanUser, "Ban User", "Enter user ID to ban", true)
	case ticket.ActionRemoveUser:
		return showUserModal(ctx, idModalRemove, "Remove User from Ticket", "Enter user ID to remove", false)
	case ticket.ActionReceipt:
		return c.showReceiptModal(ctx)
	case ticket.ActionDeliver:
		return c.showDeliverModal(ctx)
	case ticket.ActionLock:
		return c.toggleLock(ctx)
	case ticket.ActionPriority:
		return c.showPriorityModal(ctx)
	case ticket.ActionClaim:
		return c.claim(ctx)
	case ticket.ActionMarkPaid:
		return c.markPaid(ctx)
	case ticket.ActionSendTemplate:
		return c.showTemplateModal(ctx)
	case ticket.ActionUserInfo:
		return c.userInfo(ctx)
	case ticket.ActionTranscript:
		return c.onDemandTranscript(ctx)
	}
	return nil
}

func showUserModal(ctx *core.ComponentInteractionContext, customID, title, placeholder string, withReason bool) error {
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    "user_id",
				Label:       "User ID",
				Style:       discordgo.TextInputShort,
				Placeholder: placeholder,
				Required:    true,
			},
		}},
	}
	if withReason {
		components = append(components, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    "reason",
				Label:       "Reason",
				Style:       discordgo.TextInputParagraph,
				Placeholder: "Ban reason...",
				Required:    false,
			},
		}})
	}
	return ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: components,
		},
	})
}

func (c *TicketCommand) addUser(ctx *core.ModalInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	userID := strings.TrimSpace(core.ModalValue(event.ModalSubmitData(), "user_id"))

	member, err := session.GuildMember(event.GuildID, userID)
	if err != nil {
		return core.RespondEphemeral(session, event, "❌ Could not find or add that user.")
	}
	if err := session.ChannelPermissionSet(event.ChannelID, userID,
		discordgo.PermissionOverwriteTypeMember, customerPermissions, 0); err != nil {
		return core.RespondEphemeral(session, event, "❌ Could not find or add that user.")
	}

	if err := core.RespondEphemeral(session, event, fmt.Sprintf("✅ Added <@%s> to the ticket.", userID)); err != nil {
		return err
	}
	return core.MessageRespond(session, event.ChannelID,
		fmt.Sprintf("<@%s> has been added to this ticket by <@%s>", member.User.ID, core.EventUser(event).ID))
}

func (c *TicketCommand) banUser(ctx *core.ModalInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	data := event.ModalSubmitData()
	userID := strings.TrimSpace(core.ModalValue(data, "user_id"))
	reason := core.ModalValue(data, "reason")
	if reason == "" {
		reason = "No reason provided"
	}

	member, err := session.GuildMember(event.GuildID, userID)
	if err != nil {
		return core.RespondEphemeral(session, event, "❌ Could not find that user.")
	}
	actor := core.EventUser(event)
	if err := session.GuildBanCreateWithReason(event.GuildID, userID,
		fmt.Sprintf("Banned by %s: %s", actor.String(), reason), 0); err != nil {
		return core.RespondEphemeral(session, event, "❌ Could not ban that user. Check permissions.")
	}

	if err := core.RespondEphemeral(session, event, fmt.Sprintf("🔨 Banned %s", member.User.String())); err != nil {
		return err
	}
	return core.MessageRespond(session, event.ChannelID,
		fmt.Sprintf("%s has been banned. Reason: %s", member.User.String(), reason))
}

func (c *TicketCommand) removeUser(ctx *core.ModalInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	userID := strings.TrimSpace(core.ModalValue(event.ModalSubmitData(), "user_id"))

	if err := session.ChannelPermissionDelete(event.ChannelID, userID); err != nil {
		return core.RespondEphemeral(session, event, "❌ Could not find or remove that user.")
	}

	if err := core.RespondEphemeral(session, event, fmt.Sprintf("✅ Removed <@%s> from the ticket.", userID)); err != nil {
		return err
	}
	return core.MessageRespond(session, event.ChannelID,
		fmt.Sprintf("<@%s> has been removed from this ticket by <@%s>", userID, core.EventUser(event).ID))
}

// toggleLock flips the @everyone send-messages overwrite on the ticket
// channel.
func (c *TicketCommand) toggleLock(ctx *core.ComponentInteractionContext) error {
	session := ctx.Session
	event := ctx.Event

	channel, err := session.Channel(event.ChannelID)
	if err != nil {
		return fmt.Errorf("fetch ticket channel: %w", err)
	}

	locked := false
	var existing *discordgo.PermissionOverwrite
	for _, ow := range channel.PermissionOverwrites {
		if ow.ID == event.GuildID {
			existing = ow
			locked = ow.Deny&discordgo.PermissionSendMessages != 0
			break
		}
	}

	var allow, deny int64
	if existing != nil {
		allow, deny = existing.Allow, existing.Deny
	}
	if locked {
		deny &^= discordgo.PermissionSendMessages
	} else {
		deny |= discordgo.PermissionSendMessages
	}
	if err := session.ChannelPermissionSet(event.ChannelID, event.GuildID,
		discordgo.PermissionOverwriteTypeRole, allow, deny); err != nil {
		return fmt.Errorf("update lock overwrite: %w", err)
	}

	if locked {
		return core.RespondEphemeral(session, event, "🔓 Ticket unlocked - users can now send messages.")
	}
	return core.RespondEphemeral(session, event, "🔒 Ticket locked - only staff can send messages.")
}

func (c *TicketCommand) showPriorityModal(ctx *core.ComponentInteractionContext) error {
	return ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: idModalPriority,
			Title:    "Set Ticket Priority",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "priority",
						Label:       "Priority Level",
						Style:       discordgo.TextInputShort,
						Placeholder: "urgent, high, normal, or low",
						Required:    true,
					},
				}},
			},
		},
	})
}

func (c *TicketCommand) setPriority(ctx *core.ModalInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	priority := strings.ToLower(strings.TrimSpace(core.ModalValue(event.ModalSubmitData(), "priority")))

	if err := core.MessageRespond(session, event.ChannelID,
		fmt.Sprintf("%s Ticket priority set to **%s** by <@%s>",
			ticket.PriorityEmoji(priority), priority, core.EventUser(event).ID)); err != nil {
		return err
	}
	return core.RespondEphemeral(session, event, fmt.Sprintf("✅ Priority set to %s", priority))
}

func (c *TicketCommand) claim(ctx *core.ComponentInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	user := core.EventUser(event)

	if err := ctx.Deps.Tickets.Claim(event.ChannelID, user.String()); err != nil {
		ctx.Deps.Log.Debug().Err(err).Str("channel", event.ChannelID).Msg("claim on channel without session")
	}

	if err := core.MessageRespond(session, event.ChannelID,
		fmt.Sprintf("✋ This ticket has been claimed by <@%s>", user.ID)); err != nil {
		return err
	}
	return core.RespondEphemeral(session, event, "✅ You have claimed this ticket.")
}

func (c *TicketCommand) markPaid(ctx *core.ComponentInteractionContext) error {
	session := ctx.Session
	event := ctx.Event

	if err := core.MessageRespond(session, event.ChannelID,
		fmt.Sprintf("💰 Payment received and confirmed by <@%s>", core.EventUser(event).ID)); err != nil {
		return err
	}
	return core.RespondEphemeral(session, event, "✅ Ticket marked as paid.")
}

func (c *TicketCommand) showTemplateModal(ctx *core.ComponentInteractionContext) error {
	return ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: idModalTemplate,
			Title:    "Send Template Message",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "template",
						Label:       "Template Type",
						Style:       discordgo.TextInputShort,
						Placeholder: "processing, ready, moreinfo, thanks",
						Required:    true,
					},
				}},
			},
		},
	})
}

func (c *TicketCommand) sendTemplate(ctx *core.ModalInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	name := strings.ToLower(strings.TrimSpace(core.ModalValue(event.ModalSubmitData(), "template")))

	msg, err := ticket.ReplyTemplate(name)
	if err != nil {
		return core.RespondEphemeral(session, event,
			"❌ Unknown template. Available: processing, ready, moreinfo, thanks.")
	}
	if err := core.MessageRespond(session, event.ChannelID, msg); err != nil {
		return err
	}
	return core.RespondEphemeral(session, event, "✅ Template sent!")
}

func (c *TicketCommand) userInfo(ctx *core.ComponentInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	deps := ctx.Deps

	sess, ok := deps.Tickets.Session(event.ChannelID)
	if !ok {
		return core.RespondEphemeral(session, event, "❌ No ticket data found.")
	}
	member, err := session.GuildMember(event.GuildID, sess.CustomerID)
	if err != nil {
		return core.RespondEphemeral(session, event, "❌ User not found.")
	}

	history, err := deps.Tickets.Ledger().ByUser(sess.CustomerID)
	if err != nil {
		return fmt.Errorf("load order history: %w", err)
	}

	var roleNames []string
	for _, rid := range member.Roles {
		if role, err := session.State.Role(event.GuildID, rid); err == nil && role != nil {
			roleNames = append(roleNames, role.Name)
		}
	}
	roles := strings.Join(roleNames, ", ")
	if roles == "" {
		roles = "None"
	}
	joined := "Unknown"
	if !member.JoinedAt.IsZero() {
		joined = member.JoinedAt.Format("2006-01-02")
	}

	return core.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
		Title:     "👤 User Information",
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: member.User.AvatarURL("")},
		Color:     0x5865f2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Username", Value: member.User.String(), Inline: true},
			{Name: "User ID", Value: sess.CustomerID, Inline: true},
			{Name: "Joined Server", Value: joined, Inline: true},
			{Name: "Roles", Value: roles},
			{Name: "Total Orders", Value: fmt.Sprintf("%d", len(history)), Inline: true},
			{Name: "Current Order", Value: fmt.Sprintf("%sx %s", sess.Quantity, sess.ItemType)},
		},
	})
}

// onDemandTranscript renders the channel without closing it.
func (c *TicketCommand) onDemandTranscript(ctx *core.ComponentInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	user := core.EventUser(event)

	channel, err := session.Channel(event.ChannelID)
	if err != nil {
		return fmt.Errorf("fetch ticket channel: %w", err)
	}

	html, err := buildTranscript(session, ctx.Deps, event.ChannelID, channel.Name, user.String())
	if err != nil {
		ctx.Deps.Log.Error().Err(err).Str("channel", event.ChannelID).Msg("transcript generation failed")
		return core.RespondEphemeral(session, event, "❌ Failed to generate transcript.")
	}

	return session.InteractionRespond(event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "📄 Transcript generated!",
			Flags:   discordgo.MessageFlagsEphemeral,
			Files: []*discordgo.File{{
				Name:   channel.Name + ".html",
				Reader: bytes.NewReader(html),
			}},
		},
	})
}
