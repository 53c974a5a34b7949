package ticket

import (
	"errors"
	"fmt"
	"strings"

	"shopfront/internal/core"
	"shopfront/internal/ticket"
)

// RevealCommand receives the "items!" button from delivery DMs. The custom
// ID carries the reveal token ("reveal_items_<token>").
type RevealCommand struct{}

func (c *RevealCommand) Name() string            { return "reveal_items" }
func (c *RevealCommand) Description() string     { return "Delivery reveal button" }
func (c *RevealCommand) Group() string           { return "ticket" }
func (c *RevealCommand) Category() string        { return "🎫 Storefront" }
func (c *RevealCommand) UserPermissions() []int64 { return []int64{} }

func (c *RevealCommand) Run(ctx interface{}) error { return nil }

func (c *RevealCommand) Component(ctx *core.ComponentInteractionContext) error {
	session := ctx.Session
	event := ctx.Event

	token := strings.TrimPrefix(event.MessageComponentData().CustomID, "reveal_items_")
	items, err := ctx.Deps.Tickets.Notifier().Reveal(token)
	if errors.Is(err, ticket.ErrDeliveryNotFound) {
		return core.RespondEphemeral(session, event, "❌ This delivery has expired. Contact staff if you never received your items.")
	}
	if err != nil {
		return fmt.Errorf("reveal delivery: %w", err)
	}

	var b strings.Builder
	b.WriteString("🎁 your items:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "**%s** — %s\n", item.Name, item.Link)
	}
	return core.RespondEphemeral(session, event, b.String())
}

func init() {
	core.RegisterCommand(&RevealCommand{})
}
