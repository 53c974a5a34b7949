package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"shopfront/internal/core"
	"shopfront/internal/ticket"
)

const customerPermissions = discordgo.PermissionViewChannel |
	discordgo.PermissionSendMessages |
	discordgo.PermissionReadMessageHistory |
	discordgo.PermissionAttachFiles |
	discordgo.PermissionEmbedLinks

func (c *TicketCommand) showCreateModal(ctx *core.ComponentInteractionContext) error {
	return ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: idCreateModal,
			Title:    "place your order",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "item_type",
						Label:       "what are you ordering?",
						Style:       discordgo.TextInputShort,
						Placeholder: "e.g., robux, n-tro, etc.",
						Required:    true,
						MaxLength:   100,
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "quantity",
						Label:       "quantity",
						Style:       discordgo.TextInputShort,
						Placeholder: "how many items do you want?",
						Required:    true,
						MaxLength:   50,
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "payment",
						Label:       "payment",
						Style:       discordgo.TextInputShort,
						Placeholder: "e.g., cashapp, paypal, etc.",
						Required:    true,
						MaxLength:   100,
					},
				}},
			},
		},
	})
}

// createTicket handles the order modal: allocates a ticket number, creates
// the private channel, posts the lifecycle card and order-details card, and
// registers the session.
func (c *TicketCommand) createTicket(ctx *core.ModalInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	deps := ctx.Deps
	user := core.EventUser(event)

	data := event.ModalSubmitData()
	itemType := core.ModalValue(data, "item_type")
	quantity := core.ModalValue(data, "quantity")
	payment := core.ModalValue(data, "payment")

	number, channelName, err := deps.Tickets.NextTicket(event.GuildID, user.Username)
	if err != nil {
		// Missing category config disables ticket creation; logged, not
		// surfaced as a session.
		deps.Log.Error().Err(err).Str("guild", event.GuildID).Msg("ticket creation disabled")
		return core.RespondEphemeral(session, event, "❌ Ticket creation is not configured on this server.")
	}

	cfg := deps.Tickets.Config()
	overwrites := []*discordgo.PermissionOverwrite{
		{
			ID:   event.GuildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		{
			ID:    user.ID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: customerPermissions,
		},
	}
	for _, roleID := range cfg.StaffRoleIDs {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    roleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: customerPermissions | discordgo.PermissionManageMessages,
		})
	}

	channel, err := session.GuildChannelCreateComplex(event.GuildID, discordgo.GuildChannelCreateData{
		Name:                 channelName,
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             cfg.CategoryID,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		return fmt.Errorf("create ticket channel: %w", err)
	}

	deps.Tickets.Open(channel.ID, ticket.Session{
		TicketNumber:  number,
		CustomerID:    user.ID,
		CustomerTag:   user.String(),
		ItemType:      itemType,
		Quantity:      quantity,
		PaymentMethod: payment,
		CreatedAt:     time.Now(),
	})

	var pings strings.Builder
	fmt.Fprintf(&pings, "<@%s>", user.ID)
	for _, roleID := range cfg.StaffRoleIDs {
		fmt.Fprintf(&pings, " <@&%s>", roleID)
	}

	// Lifecycle header card: close and process controls.
	_, err = session.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Content: pings.String(),
		Embeds: []*discordgo.MessageEmbed{{
			Description: "thanks for buying!\nwait for assistance — staff will process your order shortly.",
			Color:       core.EmbedColor,
		}},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "done", Style: discordgo.SecondaryButton, CustomID: idCloseButton},
				discordgo.Button{Label: "note + process", Style: discordgo.SecondaryButton, CustomID: idNoteProcess},
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("send lifecycle card: %w", err)
	}

	// Order-details card with the admin action menu.
	_, err = session.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title: "♡ new order!",
			Description: fmt.Sprintf("**item** : %s\n**quantity** : %s\n**payment** : %s",
				itemType, quantity, payment),
			Thumbnail: &discordgo.MessageEmbedThumbnail{URL: user.AvatarURL("")},
			Color:     core.EmbedColor,
		}},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{adminMenuSelect()}},
		},
	})
	if err != nil {
		return fmt.Errorf("send order details card: %w", err)
	}

	// Payment instructions matching the customer's method.
	if err := core.MessageRespond(session, channel.ID, cfg.Payment.For(payment)); err != nil {
		deps.Log.Warn().Err(err).Str("channel", channel.ID).Msg("payment instructions not sent")
	}

	return core.RespondEphemeral(session, event, fmt.Sprintf("🎫 Ticket created: <#%s>", channel.ID))
}

func adminMenuSelect() discordgo.SelectMenu {
	var options []discordgo.SelectMenuOption
	for _, opt := range ticket.MenuOptions() {
		options = append(options, discordgo.SelectMenuOption{
			Label:       opt.Description,
			Value:       opt.Action.Token(),
			Description: opt.Description,
		})
	}
	return discordgo.SelectMenu{
		CustomID:    idAdminMenu,
		Placeholder: "admin options",
		Options:     options,
	}
}
