package sticky

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"shopfront/internal/embedkit"
	"shopfront/internal/storage"
	st "shopfront/internal/storagetypes"
)

// DiscordSender renders sticky configs into real channel messages. Embed
// references resolve against the template store at send time, so edits to a
// template show up on the next repost.
type DiscordSender struct {
	session *discordgo.Session
	store   *storage.Storage
}

func NewDiscordSender(session *discordgo.Session, store *storage.Storage) *DiscordSender {
	return &DiscordSender{session: session, store: store}
}

func (d *DiscordSender) DeleteSticky(channelID, messageID string) error {
	return d.session.ChannelMessageDelete(channelID, messageID)
}

func (d *DiscordSender) SendSticky(channelID string, cfg st.StickyConfig) (string, error) {
	send := &discordgo.MessageSend{Content: cfg.Content}
	if cfg.EmbedName != "" {
		tpl, err := d.store.Embed(cfg.EmbedName)
		if err != nil {
			return "", fmt.Errorf("resolve sticky embed %q: %w", cfg.EmbedName, err)
		}
		send.Embeds = []*discordgo.MessageEmbed{embedkit.Render(*tpl)}
	}
	msg, err := d.session.ChannelMessageSendComplex(channelID, send)
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}
