package ticket

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"shopfront/internal/core"
	"shopfront/internal/ticket"
)

func (c *TicketCommand) showDeliverModal(ctx *core.ComponentInteractionContext) error {
	itemRow := func(id, label string, required bool) discordgo.ActionsRow {
		return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    id,
				Label:       label,
				Style:       discordgo.TextInputShort,
				Placeholder: "Item Name|https://link.com",
				Required:    required,
			},
		}}
	}
	return ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: idModalDeliver,
			Title:    "Deliver Items to Customer",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "item_type",
						Label:       "Item Type",
						Style:       discordgo.TextInputShort,
						Placeholder: "e.g., robux, nitro",
						Required:    true,
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "quantity",
						Label:       "Quantity",
						Style:       discordgo.TextInputShort,
						Placeholder: "e.g., 1000",
						Required:    true,
					},
				}},
				itemRow("item1", "Item 1 (name|link)", true),
				itemRow("item2", "Item 2 (name|link) - Optional", false),
				itemRow("item3", "Item 3 (name|link) - Optional", false),
			},
		},
	})
}

// deliver stashes the item links behind a reveal token and DMs the customer
// a message carrying the reveal button. The links stay hidden until clicked.
func (c *TicketCommand) deliver(ctx *core.ModalInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	deps := ctx.Deps

	data := event.ModalSubmitData()
	itemType := core.ModalValue(data, "item_type")
	quantity := core.ModalValue(data, "quantity")

	var items []ticket.DeliveryItem
	for _, field := range []string{"item1", "item2", "item3"} {
		if item := ticket.ParseDeliveryItem(core.ModalValue(data, field)); item != nil {
			items = append(items, *item)
		}
	}

	sess, ok := deps.Tickets.Session(event.ChannelID)
	if !ok {
		return core.RespondEphemeral(session, event, "❌ Could not find ticket data.")
	}

	// The interaction ID is unique per delivery and serves as the reveal
	// token.
	token := event.ID
	if err := deps.Tickets.Notifier().Stash(token, items); err != nil {
		return fmt.Errorf("stash delivery: %w", err)
	}

	dm, err := session.UserChannelCreate(sess.CustomerID)
	if err != nil {
		return core.RespondEphemeral(session, event, "❌ Could not send DM. User may have DMs disabled.")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "❥ __new alert__!!\n")
	fmt.Fprintf(&msg, "✧ **%sx %s** fell from the sky!!\n", quantity, itemType)
	msg.WriteString("⤷ vouch to activate warranty! ☻\n")
	msg.WriteString("✧ **thank you for buying with us!**")

	_, err = session.ChannelMessageSendComplex(dm.ID, &discordgo.MessageSend{
		Content: msg.String(),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "items!", Style: discordgo.SecondaryButton, CustomID: "reveal_items_" + token},
			}},
		},
	})
	if err != nil {
		return core.RespondEphemeral(session, event, "❌ Could not send DM. User may have DMs disabled.")
	}

	if err := core.RespondEphemeral(session, event, fmt.Sprintf("✅ Delivery sent to <@%s>!", sess.CustomerID)); err != nil {
		return err
	}
	return core.MessageRespond(session, event.ChannelID,
		fmt.Sprintf("📦 Items delivered to <@%s> by <@%s>", sess.CustomerID, core.EventUser(event).ID))
}
