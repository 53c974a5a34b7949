package ticket

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"shopfront/internal/core"
	"shopfront/internal/ticket"
)

// beginClose starts the grace-window countdown. The channel is deleted when
// the window expires unless the requester cancels first; the latch inside
// the close request guarantees exactly one side wins.
func (c *TicketCommand) beginClose(ctx *core.ComponentInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	deps := ctx.Deps
	user := core.EventUser(event)

	channel, err := session.State.Channel(event.ChannelID)
	if err != nil {
		channel, err = session.Channel(event.ChannelID)
		if err != nil {
			return fmt.Errorf("fetch ticket channel: %w", err)
		}
	}

	hasManage := event.Member.Permissions&discordgo.PermissionManageChannels != 0
	if !deps.Tickets.CanManage(channel.Name, user.Username, hasManage, event.Member.Roles) {
		return core.RespondEphemeral(session, event, "❌ You don't have permission to close this ticket.")
	}

	// Transcript first, while the messages still exist.
	c.deliverTranscript(ctx, channel.Name, user)

	req, err := deps.Tickets.BeginClose(event.ChannelID, user.ID, user.String())
	if errors.Is(err, ticket.ErrClosePending) {
		return core.RespondEphemeral(session, event, "❌ This ticket is already closing.")
	}
	if err != nil {
		return err
	}

	if err := session.InteractionRespond(event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "🔒 Ticket Closing",
				Description: fmt.Sprintf("This ticket will be deleted in **%d seconds**.\nClick \"Cancel\" to stop.", int(req.Window.Seconds())),
				Color:       0xff6b6b,
			}},
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.Button{Label: "Cancel", Style: discordgo.DangerButton, CustomID: idCancelClose},
				}},
			},
		},
	}); err != nil {
		return err
	}

	time.AfterFunc(req.Window, func() {
		if !deps.Tickets.ExpireClose(req.ChannelID) {
			return
		}
		if _, err := session.ChannelDelete(req.ChannelID); err != nil {
			deps.Log.Error().Err(err).Str("channel", req.ChannelID).Msg("ticket channel delete failed")
		}
	})
	return nil
}

func (c *TicketCommand) cancelClose(ctx *core.ComponentInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	user := core.EventUser(event)

	if !ctx.Deps.Tickets.CancelClose(event.ChannelID, user.ID) {
		return core.RespondEphemeral(session, event, "❌ Only the person who requested the close can cancel it.")
	}

	return session.InteractionRespond(event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    "✅ Ticket closure cancelled.",
			Embeds:     []*discordgo.MessageEmbed{},
			Components: []discordgo.MessageComponent{},
		},
	})
}

// deliverTranscript renders the channel history and sends it to the
// transcript channel when one is configured. Failures are logged, never
// block the close.
func (c *TicketCommand) deliverTranscript(ctx *core.ComponentInteractionContext, channelName string, closedBy *discordgo.User) {
	deps := ctx.Deps
	cfg := deps.Tickets.Config()
	if cfg.TranscriptChannelID == "" {
		return
	}

	html, err := buildTranscript(ctx.Session, ctx.Deps, ctx.Event.ChannelID, channelName, closedBy.String())
	if err != nil {
		deps.Log.Error().Err(err).Str("channel", ctx.Event.ChannelID).Msg("transcript generation failed")
		return
	}

	_, err = ctx.Session.ChannelMessageSendComplex(cfg.TranscriptChannelID, &discordgo.MessageSend{
		Content: fmt.Sprintf("📄 Transcript for **%s** closed by <@%s>", channelName, closedBy.ID),
		Files: []*discordgo.File{{
			Name:   channelName + ".html",
			Reader: bytes.NewReader(html),
		}},
	})
	if err != nil {
		deps.Log.Error().Err(err).Str("channel", cfg.TranscriptChannelID).Msg("transcript delivery failed")
	}
}

// buildTranscript fetches up to 100 messages and renders them oldest-first.
func buildTranscript(session *discordgo.Session, deps *core.Deps, channelID, channelName, closedBy string) ([]byte, error) {
	msgs, err := session.ChannelMessages(channelID, 100, "", "", "")
	if err != nil {
		return nil, fmt.Errorf("fetch channel messages: %w", err)
	}

	// The API returns newest-first.
	rendered := make([]ticket.TranscriptMessage, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		ts := m.Timestamp
		tm := ticket.TranscriptMessage{
			Author:    m.Author.Username,
			Bot:       m.Author.Bot,
			Content:   m.Content,
			Timestamp: ts,
		}
		for _, a := range m.Attachments {
			tm.Attachments = append(tm.Attachments, ticket.TranscriptAttachment{
				Name:  a.Filename,
				URL:   a.URL,
				Size:  a.Size,
				Image: strings.HasPrefix(a.ContentType, "image/"),
			})
		}
		rendered = append(rendered, tm)
	}

	sess, _ := deps.Tickets.Session(channelID)
	sess.ClosedBy = closedBy
	return ticket.RenderTranscript(channelName, sess, time.Now(), rendered), nil
}
