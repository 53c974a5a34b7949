package ticket

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"shopfront/internal/core"
)

// custom IDs owned by this command; the dispatcher routes by the "ticket"
// prefix.
const (
	idCreateButton  = "ticket_create"
	idCreateModal   = "ticket_modal"
	idCloseButton   = "ticket_close"
	idCancelClose   = "ticket_cancel_close"
	idNoteProcess   = "ticket_note_process"
	idNoteModal     = "ticket_note_modal"
	idAdminMenu     = "ticket_admin_menu"
	idModalAddUser  = "ticket_admin_add_user"
	idModalBanUser  = "ticket_admin_ban_user"
	idModalRemove   = "ticket_admin_remove_user"
	idModalReceipt  = "ticket_admin_receipt"
	idModalDeliver  = "ticket_admin_deliver"
	idModalPriority = "ticket_admin_priority"
	idModalTemplate = "ticket_admin_template"
)

// TicketCommand posts the order panel and drives the whole ticket lifecycle
// through its component and modal hooks.
type TicketCommand struct{}

func (c *TicketCommand) Name() string        { return "ticket" }
func (c *TicketCommand) Description() string { return "Post the order panel in this channel" }
func (c *TicketCommand) Group() string       { return "ticket" }
func (c *TicketCommand) Category() string    { return "🎫 Storefront" }
func (c *TicketCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageMessages}
}

func (c *TicketCommand) SlashDefinition() *discordgo.ApplicationCommand {
	perms := int64(discordgo.PermissionManageMessages)
	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		DefaultMemberPermissions: &perms,
	}
}

func (c *TicketCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}
	return c.postPanel(context)
}

func (c *TicketCommand) postPanel(ctx *core.SlashInteractionContext) error {
	session := ctx.Session
	event := ctx.Event

	_, err := session.ChannelMessageSendComplex(event.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "🎫 place an order",
			Description: "Click below to open a ticket and tell us what you want to buy.",
			Color:       core.EmbedColor,
		}},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "order here!", Style: discordgo.SecondaryButton, CustomID: idCreateButton},
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("send ticket panel: %w", err)
	}
	return core.RespondEphemeral(session, event, "✅ Ticket panel posted.")
}

func (c *TicketCommand) Component(ctx *core.ComponentInteractionContext) error {
	switch ctx.Event.MessageComponentData().CustomID {
	case idCreateButton:
		return c.showCreateModal(ctx)
	case idCloseButton:
		return c.beginClose(ctx)
	case idCancelClose:
		return c.cancelClose(ctx)
	case idNoteProcess:
		return c.showNoteModal(ctx)
	case idAdminMenu:
		return c.adminMenu(ctx)
	}
	return nil
}

func (c *TicketCommand) Modal(ctx *core.ModalInteractionContext) error {
	switch ctx.Event.ModalSubmitData().CustomID {
	case idCreateModal:
		return c.createTicket(ctx)
	case idNoteModal:
		return c.processOrder(ctx)
	case idModalAddUser:
		return c.addUser(ctx)
	case idModalBanUser:
		return c.banUser(ctx)
	case idModalRemove:
		return c.removeUser(ctx)
	case idModalReceipt:
		return c.sendReceipt(ctx)
	case idModalDeliver:
		return c.deliver(ctx)
	case idModalPriority:
		return c.setPriority(ctx)
	case idModalTemplate:
		return c.sendTemplate(ctx)
	}
	return nil
}

func init() {
	core.RegisterCommand(
		&TicketCommand{},
		core.WithGuildOnly(),
		core.WithCommandLogger(),
	)
}
