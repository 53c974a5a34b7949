package ticket

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"shopfront/internal/core"
	"shopfront/internal/orders"
	"shopfront/internal/ticket"
	st "shopfront/internal/storagetypes"
)

const statusPlaceholderID = "order_status_PLACEHOLDER"

func (c *TicketCommand) showNoteModal(ctx *core.ComponentInteractionContext) error {
	return ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: idNoteModal,
			Title:    "Add Note & Process Order",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "note",
						Label:       "internal note (optional)",
						Style:       discordgo.TextInputParagraph,
						Placeholder: "Add any internal notes about this order...",
						Required:    false,
					},
				}},
			},
		},
	})
}

// processOrder commits the channel's session into the ledger via the
// two-phase card poster.
func (c *TicketCommand) processOrder(ctx *core.ModalInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	deps := ctx.Deps

	if err := core.DeferEphemeral(session, event); err != nil {
		return err
	}

	note := core.ModalValue(event.ModalSubmitData(), "note")
	if note == "" {
		note = "No notes"
	}

	cfg := deps.Tickets.Config()
	if cfg.OrderChannelID == "" {
		return core.EditReply(session, event, "❌ Order channel not configured.")
	}

	poster := &orderCardPoster{
		session:   session,
		channelID: cfg.OrderChannelID,
		ticketRef: event.ChannelID,
	}
	order, state, err := deps.Tickets.ProcessOrder(event.ChannelID, note, poster)
	switch {
	case errors.Is(err, ticket.ErrSessionNotFound):
		return core.EditReply(session, event, "❌ Ticket data not found.")
	case errors.Is(err, ticket.ErrAlreadyProcessed):
		return core.EditReply(session, event, "❌ This order has already been processed.")
	case err != nil && order != nil && state == ticket.CardPending:
		// Order persisted, card not finalized; staff can resend manually.
		deps.Log.Error().Err(err).Str("message", order.MessageID).Msg("order card finalize failed")
		return core.EditReply(session, event, "⚠️ Order logged, but its status control could not be wired up. Resend the card manually.")
	case err != nil:
		return core.EditReply(session, event, fmt.Sprintf("❌ Failed to process order: %v", err))
	}

	return core.EditReply(session, event, "✅ Order processed and logged!")
}

// orderCardPoster renders the order card into the order-log channel. The
// status select is posted with a placeholder ID and patched to carry the
// message's own ID once known.
type orderCardPoster struct {
	session   *discordgo.Session
	channelID string
	ticketRef string
}

func (p *orderCardPoster) Post(order st.Order) (string, error) {
	msg, err := p.session.ChannelMessageSendComplex(p.channelID, &discordgo.MessageSend{
		Content: renderOrderCard(order, p.ticketRef),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{statusSelect(statusPlaceholderID)}},
		},
	})
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

func (p *orderCardPoster) Finalize(messageID string) error {
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{statusSelect("order_status_" + messageID)}},
	}
	_, err := p.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         messageID,
		Channel:    p.channelID,
		Components: &components,
	})
	return err
}

func renderOrderCard(order st.Order, ticketChannelID string) string {
	return fmt.Sprintf(
		"**order 4 <@%s>**\n__%sx %s__ · <#%s>\n__%s__ ➲ %s\n-# %s",
		order.User, order.Amount, order.Item, ticketChannelID, order.MOP, order.Status, order.Note)
}

func statusSelect(customID string) discordgo.SelectMenu {
	var options []discordgo.SelectMenuOption
	for _, opt := range orders.StatusOptions() {
		options = append(options, discordgo.SelectMenuOption{
			Label:       opt.Value,
			Value:       opt.Value,
			Description: opt.Description,
		})
	}
	return discordgo.SelectMenu{
		CustomID:    customID,
		Placeholder: "Update Status",
		Options:     options,
	}
}
