package admin

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"shopfront/internal/core"
)

// component/modal custom IDs use ":"-separated segments after the command
// name, so the dispatcher's prefix match still routes them here.
const (
	idEmbedEdit  = "admin:embed_edit"  // admin:embed_edit:<field>:<name>
	idEmbedModal = "admin:embed_modal" // admin:embed_modal:<field>:<name>
	idOrdersPage = "admin:orders_page" // admin:orders_page:<user>:<item>:<status>
)

// AdminCommand is the storefront management surface: embed templates,
// autoresponders, sticky messages, the order log, broadcasts and shop
// status.
type AdminCommand struct{}

func (c *AdminCommand) Name() string        { return "admin" }
func (c *AdminCommand) Description() string { return "Storefront admin commands" }
func (c *AdminCommand) Group() string       { return "admin" }
func (c *AdminCommand) Category() string    { return "🛠️ Management" }
func (c *AdminCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageGuild}
}

func (c *AdminCommand) SlashDefinition() *discordgo.ApplicationCommand {
	perms := int64(discordgo.PermissionManageGuild)
	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Name:        "embed",
				Description: "Manage embeds",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "create",
						Description: "Create a new embed",
						Options: []*discordgo.ApplicationCommandOption{
							{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Embed name", Required: true},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "list",
						Description: "List all embeds",
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "delete",
						Description: "Delete an embed",
						Options: []*discordgo.ApplicationCommandOption{
							{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Embed name", Required: true},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "send",
						Description: "Send an embed to this channel",
						Options: []*discordgo.ApplicationCommandOption{
							{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Embed name", Required: true},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Name:        "autoresponder",
				Description: "Manage autoresponders",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "add",
						Description: "Add an autoresponder",
						Options: []*discordgo.ApplicationCommandOption{
							{Type: discordgo.ApplicationCommandOptionString, Name: "trigger", Description: "Trigger word/phrase", Required: true},
							{Type: discordgo.ApplicationCommandOptionString, Name: "response", Description: "Response text"},
							{Type: discordgo.ApplicationCommandOptionString, Name: "embed", Description: "Embed name to send"},
							{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "Channel scope (leave blank for all channels)"},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "list",
						Description: "List all autoresponders",
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "delete",
						Description: "Delete an autoresponder",
						Options: []*discordgo.ApplicationCommandOption{
							{Type: discordgo.ApplicationCommandOptionString, Name: "id", Description: "Autoresponder ID", Required: true},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Name:        "sticky",
				Description: "Manage sticky messages",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "set",
						Description: "Set a sticky message",
						Options: []*discordgo.ApplicationCommandOption{
							{Type: discordgo.ApplicationCommandOptionString, Name: "content", Description: "Message content"},
							{Type: discordgo.ApplicationCommandOptionString, Name: "embed", Description: "Embed name"},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "remove",
						Description: "Remove sticky message from this channel",
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "view",
						Description: "View current sticky message info",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "orders",
				Description: "View order logs",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Filter by user"},
					{Type: discordgo.ApplicationCommandOptionString, Name: "item", Description: "Filter by item"},
					{Type: discordgo.ApplicationCommandOptionString, Name: "status", Description: "Filter by status"},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "page", Description: "Page number"},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "say",
				Description: "Make the bot say something",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "message", Description: "Message to say", Required: true},
					{
						Type: discordgo.ApplicationCommandOptionString, Name: "type", Description: "Message type",
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Normal", Value: "normal"},
							{Name: "Spacer", Value: "spacer"},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Update shop status",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type: discordgo.ApplicationCommandOptionString, Name: "state", Description: "Shop status", Required: true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "opened", Value: "open"},
							{Name: "closed", Value: "closed"},
							{Name: "slow orders", Value: "slow"},
						},
					},
				},
			},
		},
	}
}

func (c *AdminCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	data := context.Event.ApplicationCommandData()
	if len(data.Options) == 0 {
		return nil
	}
	top := data.Options[0]

	switch top.Type {
	case discordgo.ApplicationCommandOptionSubCommandGroup:
		if len(top.Options) == 0 {
			return nil
		}
		sub := top.Options[0]
		switch top.Name {
		case "embed":
			return c.runEmbed(context, sub)
		case "autoresponder":
			return c.runAutoresponder(context, sub)
		case "sticky":
			return c.runSticky(context, sub)
		}
	case discordgo.ApplicationCommandOptionSubCommand:
		switch top.Name {
		case "orders":
			return c.runOrders(context, top)
		case "say":
			return c.runSay(context, top)
		case "status":
			return c.runStatus(context, top)
		}
	}
	return nil
}

func (c *AdminCommand) Component(ctx *core.ComponentInteractionContext) error {
	customID := ctx.Event.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, idEmbedEdit+":"):
		return c.embedEditButton(ctx, strings.TrimPrefix(customID, idEmbedEdit+":"))
	case strings.HasPrefix(customID, idOrdersPage+":"):
		return c.ordersPageSelect(ctx, strings.TrimPrefix(customID, idOrdersPage+":"))
	}
	return nil
}

func (c *AdminCommand) Modal(ctx *core.ModalInteractionContext) error {
	customID := ctx.Event.ModalSubmitData().CustomID
	if strings.HasPrefix(customID, idEmbedModal+":") {
		return c.embedEditModal(ctx, strings.TrimPrefix(customID, idEmbedModal+":"))
	}
	return nil
}

// optionMap flattens a subcommand's options for lookup by name.
func optionMap(sub *discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, opt := range sub.Options {
		m[opt.Name] = opt
	}
	return m
}

func stringOption(m map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := m[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func init() {
	core.RegisterCommand(
		&AdminCommand{},
		core.WithGuildOnly(),
		core.WithUserPermissionCheck(),
		core.WithCommandLogger(),
	)
}
