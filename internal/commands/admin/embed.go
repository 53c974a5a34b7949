package admin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"shopfront/internal/core"
	"shopfront/internal/embedkit"
	"shopfront/internal/storage"
	st "shopfront/internal/storagetypes"
)

func (c *AdminCommand) runEmbed(ctx *core.SlashInteractionContext, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	opts := optionMap(sub)
	switch sub.Name {
	case "create":
		return c.embedCreate(ctx, stringOption(opts, "name"))
	case "list":
		return c.embedList(ctx)
	case "delete":
		return c.embedDelete(ctx, stringOption(opts, "name"))
	case "send":
		return c.embedSend(ctx, stringOption(opts, "name"))
	}
	return nil
}

// embedCreate stores a blank template and replies with the live preview and
// its edit buttons.
func (c *AdminCommand) embedCreate(ctx *core.SlashInteractionContext, name string) error {
	session := ctx.Session
	event := ctx.Event

	if _, err := ctx.Deps.Storage.Embed(name); err == nil {
		return core.RespondEphemeral(session, event, fmt.Sprintf("❌ An embed named `%s` already exists.", name))
	}

	tpl := st.EmbedTemplate{Description: "*empty embed — use the buttons below to edit*"}
	if err := ctx.Deps.Storage.SetEmbed(name, tpl); err != nil {
		return fmt.Errorf("store embed template: %w", err)
	}

	return session.InteractionRespond(event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    fmt.Sprintf("✅ Embed `%s` created. Preview:", name),
			Embeds:     []*discordgo.MessageEmbed{embedkit.Render(tpl)},
			Components: editButtons(name),
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}

func editButtons(name string) []discordgo.MessageComponent {
	btn := func(field, label string) discordgo.Button {
		return discordgo.Button{
			Label:    label,
			Style:    discordgo.SecondaryButton,
			CustomID: fmt.Sprintf("%s:%s:%s", idEmbedEdit, field, name),
		}
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			btn("title", "Title"),
			btn("description", "Description"),
			btn("color", "Color"),
			btn("more", "More..."),
		}},
	}
}

func (c *AdminCommand) embedList(ctx *core.SlashInteractionContext) error {
	embeds, err := ctx.Deps.Storage.Embeds()
	if err != nil {
		return fmt.Errorf("load embeds: %w", err)
	}
	if len(embeds) == 0 {
		return core.RespondEphemeral(ctx.Session, ctx.Event, "📋 No embeds configured.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 **Embeds** (%d):\n", len(embeds))
	for name, tpl := range embeds {
		title := tpl.Title
		if title == "" {
			title = "*untitled*"
		}
		fmt.Fprintf(&b, "• `%s` — %s\n", name, title)
	}
	return core.RespondEphemeral(ctx.Session, ctx.Event, b.String())
}

func (c *AdminCommand) embedDelete(ctx *core.SlashInteractionContext, name string) error {
	err := ctx.Deps.Storage.DeleteEmbed(name)
	if errors.Is(err, storage.ErrNotFound) {
		return core.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("❌ No embed named `%s`.", name))
	}
	if err != nil {
		return fmt.Errorf("delete embed: %w", err)
	}
	return core.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("🗑️ Embed `%s` deleted.", name))
}

func (c *AdminCommand) embedSend(ctx *core.SlashInteractionContext, name string) error {
	tpl, err := ctx.Deps.Storage.Embed(name)
	if errors.Is(err, storage.ErrNotFound) {
		return core.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("❌ No embed named `%s`.", name))
	}
	if err != nil {
		return fmt.Errorf("load embed: %w", err)
	}
	if err := embedkit.Validate(*tpl); err != nil {
		return core.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("❌ %v", err))
	}

	if _, err := ctx.Session.ChannelMessageSendEmbed(ctx.Event.ChannelID, embedkit.Render(*tpl)); err != nil {
		return fmt.Errorf("send embed: %w", err)
	}
	return core.RespondEphemeral(ctx.Session, ctx.Event, "✅ Embed sent!")
}

// embedEditButton opens the modal matching the clicked field. The rest
// segment is "<field>:<name>"; names may themselves contain ":", so split
// once.
func (c *AdminCommand) embedEditButton(ctx *core.ComponentInteractionContext, rest string) error {
	field, name, ok := strings.Cut(rest, ":")
	if !ok {
		return nil
	}

	modalID := fmt.Sprintf("%s:%s:%s", idEmbedModal, field, name)
	valueInput := func(label, placeholder string, style discordgo.TextInputStyle) []discordgo.MessageComponent {
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "value",
					Label:       label,
					Style:       style,
					Placeholder: placeholder,
					Required:    true,
				},
			}},
		}
	}

	var title string
	var components []discordgo.MessageComponent
	switch field {
	case "title":
		title = "Edit Title"
		components = valueInput("Title", "Embed title", discordgo.TextInputShort)
	case "description":
		title = "Edit Description"
		components = valueInput("Description", "Embed description", discordgo.TextInputParagraph)
	case "color":
		title = "Edit Color"
		components = valueInput("Color (hex)", "#36393f", discordgo.TextInputShort)
	case "more":
		title = "Edit Details"
		short := func(id, label string) discordgo.ActionsRow {
			return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{CustomID: id, Label: label, Style: discordgo.TextInputShort, Required: false},
			}}
		}
		components = []discordgo.MessageComponent{
			short("image", "Image URL"),
			short("thumbnail", "Thumbnail URL"),
			short("footer_text", "Footer text"),
			short("footer_icon", "Footer icon URL"),
			short("author", "Author name"),
		}
	default:
		return nil
	}

	return ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   modalID,
			Title:      title,
			Components: components,
		},
	})
}

func (c *AdminCommand) embedEditModal(ctx *core.ModalInteractionContext, rest string) error {
	session := ctx.Session
	event := ctx.Event

	field, name, ok := strings.Cut(rest, ":")
	if !ok {
		return nil
	}
	tpl, err := ctx.Deps.Storage.Embed(name)
	if errors.Is(err, storage.ErrNotFound) {
		return core.RespondEphemeral(session, event, fmt.Sprintf("❌ No embed named `%s`.", name))
	}
	if err != nil {
		return fmt.Errorf("load embed: %w", err)
	}

	data := event.ModalSubmitData()
	switch field {
	case "title":
		tpl.Title = core.ModalValue(data, "value")
	case "description":
		tpl.Description = core.ModalValue(data, "value")
	case "color":
		raw := strings.TrimPrefix(strings.TrimSpace(core.ModalValue(data, "value")), "#")
		color, err := strconv.ParseInt(raw, 16, 32)
		if err != nil {
			return core.RespondEphemeral(session, event, "❌ Invalid color. Use a hex value like `#36393f`.")
		}
		tpl.Color = int(color)
	case "more":
		tpl.Image = core.ModalValue(data, "image")
		tpl.Thumbnail = core.ModalValue(data, "thumbnail")
		tpl.Footer.Text = core.ModalValue(data, "footer_text")
		tpl.Footer.Icon = core.ModalValue(data, "footer_icon")
		tpl.Author.Name = core.ModalValue(data, "author")
	default:
		return nil
	}

	if err := embedkit.Validate(*tpl); err != nil {
		return core.RespondEphemeral(session, event, fmt.Sprintf("❌ %v", err))
	}
	if err := ctx.Deps.Storage.SetEmbed(name, *tpl); err != nil {
		return fmt.Errorf("store embed template: %w", err)
	}

	return session.InteractionRespond(event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    fmt.Sprintf("✅ Embed `%s` updated. Preview:", name),
			Embeds:     []*discordgo.MessageEmbed{embedkit.Render(*tpl)},
			Components: editButtons(name),
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}
