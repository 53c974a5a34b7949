package admin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"shopfront/internal/core"
	"shopfront/internal/orders"
)

func (c *AdminCommand) runOrders(ctx *core.SlashInteractionContext, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	opts := optionMap(sub)

	filter := orders.Filter{
		Item:   stringOption(opts, "item"),
		Status: stringOption(opts, "status"),
	}
	if opt, ok := opts["user"]; ok {
		filter.User = opt.UserValue(ctx.Session).ID
	}
	page := 1
	if opt, ok := opts["page"]; ok {
		page = int(opt.IntValue())
	}

	return respondOrdersPage(ctx.Session, ctx.Event, ctx.Deps, filter, page, false)
}

// ordersPageSelect re-renders the order list when a page is picked. The
// filter rides along in the custom ID so the query is reproducible.
func (c *AdminCommand) ordersPageSelect(ctx *core.ComponentInteractionContext, rest string) error {
	parts := strings.SplitN(rest, ":", 3)
	if len(parts) != 3 {
		return nil
	}
	filter := orders.Filter{User: parts[0], Item: parts[1], Status: parts[2]}

	values := ctx.Event.MessageComponentData().Values
	if len(values) == 0 {
		return nil
	}
	page, err := strconv.Atoi(values[0])
	if err != nil {
		return nil
	}

	return respondOrdersPage(ctx.Session, ctx.Event, ctx.Deps, filter, page, true)
}

func respondOrdersPage(session *discordgo.Session, event *discordgo.InteractionCreate, deps *core.Deps, filter orders.Filter, pageNum int, update bool) error {
	page, err := deps.Tickets.Ledger().Query(filter, pageNum)
	if errors.Is(err, orders.ErrPageOutOfRange) {
		return core.RespondEphemeral(session, event, "❌ Page out of range.")
	}
	if err != nil {
		return fmt.Errorf("query orders: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Orders page %d/%d:\n", page.Number, page.TotalPages)
	if len(page.Orders) == 0 {
		b.WriteString("No orders found.")
	}
	for _, o := range page.Orders {
		fmt.Fprintf(&b, "• User: <@%s>, Item: %s, Amount: %s, Payment: %s, Status: %s\n",
			o.User, o.Item, o.Amount, o.MOP, o.Status)
	}

	var components []discordgo.MessageComponent
	if page.TotalPages > 1 {
		components = []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				pageSelect(filter, page.Number, page.TotalPages),
			}},
		}
	}

	responseType := discordgo.InteractionResponseChannelMessageWithSource
	if update {
		responseType = discordgo.InteractionResponseUpdateMessage
	}
	return session.InteractionRespond(event.Interaction, &discordgo.InteractionResponse{
		Type: responseType,
		Data: &discordgo.InteractionResponseData{
			Content:    b.String(),
			Components: components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}

func pageSelect(filter orders.Filter, current, total int) discordgo.SelectMenu {
	// Select menus cap at 25 options.
	if total > 25 {
		total = 25
	}
	var options []discordgo.SelectMenuOption
	for i := 1; i <= total; i++ {
		options = append(options, discordgo.SelectMenuOption{
			Label:   fmt.Sprintf("Page %d", i),
			Value:   strconv.Itoa(i),
			Default: i == current,
		})
	}
	return discordgo.SelectMenu{
		CustomID:    fmt.Sprintf("%s:%s:%s:%s", idOrdersPage, filter.User, filter.Item, filter.Status),
		Placeholder: fmt.Sprintf("Page %d/%d", current, total),
		Options:     options,
	}
}
