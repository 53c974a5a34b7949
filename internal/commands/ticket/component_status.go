package ticket

import (
	"fmt"
	"strings"

	"shopfront/internal/core"
)

// OrderStatusCommand is not a slash command: it exists to receive the status
// select on order cards, whose custom IDs carry the card's own message ID
// ("order_status_<messageID>").
type OrderStatusCommand struct{}

func (c *OrderStatusCommand) Name() string            { return "order_status" }
func (c *OrderStatusCommand) Description() string     { return "Order card status select" }
func (c *OrderStatusCommand) Group() string           { return "ticket" }
func (c *OrderStatusCommand) Category() string        { return "🎫 Storefront" }
func (c *OrderStatusCommand) UserPermissions() []int64 { return []int64{} }

func (c *OrderStatusCommand) Run(ctx interface{}) error { return nil }

func (c *OrderStatusCommand) Component(ctx *core.ComponentInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	deps := ctx.Deps

	data := event.MessageComponentData()
	messageID := strings.TrimPrefix(data.CustomID, "order_status_")
	if messageID == "PLACEHOLDER" {
		// Card was never finalized; the order still exists under the real
		// message ID, which the control on this message happens to be.
		messageID = event.Message.ID
	}
	if len(data.Values) == 0 {
		return nil
	}
	status := data.Values[0]

	found, err := deps.Tickets.UpdateStatus(messageID, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if !found {
		return core.RespondEphemeral(session, event, "❌ No order found for this card.")
	}
	return core.RespondEphemeral(session, event, fmt.Sprintf("✅ Order status set to **%s**.", status))
}

func init() {
	core.RegisterCommand(&OrderStatusCommand{})
}
