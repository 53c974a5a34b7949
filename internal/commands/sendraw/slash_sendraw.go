package sendraw

import (
	"encoding/json"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"shopfront/internal/core"
	"shopfront/internal/embedkit"
)

// componentsV2Flag marks a message as using the raw component layout
// (1 << 15). The API rejects such payloads without it.
const componentsV2Flag = 1 << 15

const (
	idJSONModal = "sendraw_modal"
)

// SendRawCommand posts raw component-layout payloads: either operator-typed
// JSON or a canned test message, for prototyping message layouts the
// builders do not cover.
type SendRawCommand struct{}

func (c *SendRawCommand) Name() string        { return "sendraw" }
func (c *SendRawCommand) Description() string { return "Send a raw component-layout message" }
func (c *SendRawCommand) Group() string       { return "admin" }
func (c *SendRawCommand) Category() string    { return "🛠️ Management" }
func (c *SendRawCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageGuild}
}

func (c *SendRawCommand) SlashDefinition() *discordgo.ApplicationCommand {
	perms := int64(discordgo.PermissionManageGuild)
	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type: discordgo.ApplicationCommandOptionString, Name: "type",
				Description: "Type of message to send", Required: true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Custom JSON", Value: "custom"},
					{Name: "Test Message", Value: "test"},
				},
			},
		},
	}
}

func (c *SendRawCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	data := context.Event.ApplicationCommandData()
	if len(data.Options) == 0 {
		return nil
	}
	switch data.Options[0].StringValue() {
	case "custom":
		return c.showJSONModal(context)
	case "test":
		return c.sendTest(context)
	}
	return nil
}

func (c *SendRawCommand) showJSONModal(ctx *core.SlashInteractionContext) error {
	return ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: idJSONModal,
			Title:    "Send Raw Component Message",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "json_payload",
						Label:       "JSON Payload",
						Style:       discordgo.TextInputParagraph,
						Placeholder: "Paste your component JSON here...",
						Required:    true,
						MaxLength:   embedkit.MaxDescriptionLen,
					},
				}},
			},
		},
	})
}

func (c *SendRawCommand) sendTest(ctx *core.SlashInteractionContext) error {
	payload := map[string]any{
		"flags": componentsV2Flag,
		"components": []any{
			map[string]any{
				"type": 10,
				"content": "✅ This is a raw component-layout test message!",
			},
		},
	}
	if err := postRaw(ctx.Session, ctx.Event.ChannelID, payload); err != nil {
		return core.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("❌ Error: %v", err))
	}
	return core.RespondEphemeral(ctx.Session, ctx.Event, "✅ Test message sent!")
}

func (c *SendRawCommand) Modal(ctx *core.ModalInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	if event.ModalSubmitData().CustomID != idJSONModal {
		return nil
	}

	raw := core.ModalValue(event.ModalSubmitData(), "json_payload")
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return core.RespondEphemeral(session, event, fmt.Sprintf("❌ Invalid JSON: %v", err))
	}

	// Force the component-layout flag; the API rejects the payload without
	// it.
	flags := componentsV2Flag
	if f, ok := payload["flags"].(float64); ok {
		flags |= int(f)
	}
	payload["flags"] = flags

	if err := postRaw(session, event.ChannelID, payload); err != nil {
		return core.RespondEphemeral(session, event, fmt.Sprintf("❌ Error: %v", err))
	}
	return core.RespondEphemeral(session, event, "✅ Raw component message sent!")
}

// postRaw bypasses the message builders and posts the payload straight to
// the channel-messages endpoint.
func postRaw(session *discordgo.Session, channelID string, payload map[string]any) error {
	endpoint := discordgo.EndpointChannelMessages(channelID)
	_, err := session.RequestWithBucketID("POST", endpoint, payload, endpoint)
	return err
}

func init() {
	core.RegisterCommand(
		&SendRawCommand{},
		core.WithGuildOnly(),
		core.WithUserPermissionCheck(),
		core.WithCommandLogger(),
	)
}
