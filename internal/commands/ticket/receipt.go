package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"shopfront/internal/core"
)

func (c *TicketCommand) showReceiptModal(ctx *core.ComponentInteractionContext) error {
	shortInput := func(id, label, placeholder string, required bool) discordgo.ActionsRow {
		return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    id,
				Label:       label,
				Style:       discordgo.TextInputShort,
				Placeholder: placeholder,
				Required:    required,
			},
		}}
	}
	return ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: idModalReceipt,
			Title:    "Generate Receipt",
			Components: []discordgo.MessageComponent{
				shortInput("order", "Order", "e.g., 1000 robux", true),
				shortInput("payment", "Payment", "e.g., $5.00 via Cashapp", true),
				shortInput("order_date", "Order Date", "Leave blank for today", false),
				shortInput("delivery_date", "Delivery Date", "Leave blank for today", false),
				shortInput("warranty", "Warranty (yes/no)", "yes or no", true),
			},
		},
	})
}

func (c *TicketCommand) sendReceipt(ctx *core.ModalInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	data := event.ModalSubmitData()

	today := time.Now().Format("01/02/2006")
	order := core.ModalValue(data, "order")
	payment := core.ModalValue(data, "payment")
	orderDate := core.ModalValue(data, "order_date")
	if orderDate == "" {
		orderDate = today
	}
	deliveryDate := core.ModalValue(data, "delivery_date")
	if deliveryDate == "" {
		deliveryDate = today
	}
	warranty := "no"
	if strings.EqualFold(strings.TrimSpace(core.ModalValue(data, "warranty")), "yes") {
		warranty = "yes"
	}

	receipt := fmt.Sprintf(
		"order — %s\npayment — %s\nwarranty — %s\n> -# order date · delivery date\n> **%s · %s**",
		order, payment, warranty, orderDate, deliveryDate)

	if err := core.MessageRespond(session, event.ChannelID, receipt); err != nil {
		return err
	}
	return core.RespondEphemeral(session, event, "✅ Receipt sent!")
}
