package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"shopfront/internal/core"
)

// Bot owns the gateway session and routes events into the command registry.
type Bot struct {
	dg   *discordgo.Session
	deps *core.Deps
	log  zerolog.Logger
}

// StartBot runs the bot until ctx is cancelled.
func StartBot(ctx context.Context, deps *core.Deps) error {
	b := &Bot{
		deps: deps,
		log:  deps.Log.With().Str("component", "discord").Logger(),
	}
	if err := b.run(ctx, deps.Cfg.DiscordToken); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	b.log.Info().Msg("shutdown signal received, closing session")
	return nil
}

// onReady seeds ticket counters from surviving channel names and registers
// slash commands per guild.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	for _, g := range r.Guilds {
		b.seedTicketCounter(s, g.ID)

		if b.deps.Cfg.InitSlashCommands {
			if err := b.registerCommands(g.ID); err != nil {
				b.log.Error().Err(err).Str("guild", g.ID).Msg("slash command registration failed")
			}
		}
	}
	if !b.deps.Cfg.InitSlashCommands {
		b.log.Info().Msg("slash command registration skipped")
	}
	b.log.Info().Str("user", r.User.Username).Msg("bot is running")
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	b.log.Info().Str("guild", g.Guild.ID).Str("name", g.Guild.Name).Msg("joined guild")
	b.seedTicketCounter(s, g.Guild.ID)
	if b.deps.Cfg.InitSlashCommands {
		if err := b.registerCommands(g.Guild.ID); err != nil {
			b.log.Error().Err(err).Str("guild", g.Guild.ID).Msg("slash command registration failed")
		}
	}
}

// seedTicketCounter continues ticket numbering from channels that survived
// a restart.
func (b *Bot) seedTicketCounter(s *discordgo.Session, guildID string) {
	channels, err := s.GuildChannels(guildID)
	if err != nil {
		b.log.Warn().Err(err).Str("guild", guildID).Msg("cannot list channels for counter seed")
		return
	}
	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, ch.Name)
	}
	b.deps.Tickets.SeedCounter(guildID, names)
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	for _, cmd := range core.AllCommands() {
		handler, ok := cmd.(core.MessageHandler)
		if !ok {
			continue
		}
		ctx := &core.MessageContext{Session: s, Event: m, Deps: b.deps}
		if err := handler.Message(ctx); err != nil {
			b.log.Error().Err(err).Str("command", cmd.Name()).Str("channel", m.ChannelID).Msg("message handler failed")
		}
	}
}

// onInteractionCreate is the catch-all boundary: handler errors degrade to
// a generic ephemeral failure instead of propagating.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		cmd, ok := core.GetCommand(name)
		if !ok {
			b.log.Warn().Str("command", name).Msg("unknown slash command")
			return
		}
		ctx := &core.SlashInteractionContext{Session: s, Event: i, Deps: b.deps}
		if err := cmd.Run(ctx); err != nil {
			b.log.Error().Err(err).Str("command", name).Msg("slash command failed")
			b.reportFailure(s, i)
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		cmd := matchByPrefix(customID)
		if cmd == nil {
			b.log.Warn().Str("custom_id", customID).Msg("no component route")
			return
		}
		handler, ok := cmd.(core.ComponentInteractionHandler)
		if !ok {
			return
		}
		ctx := &core.ComponentInteractionContext{Session: s, Event: i, Deps: b.deps}
		if err := handler.Component(ctx); err != nil {
			b.log.Error().Err(err).Str("command", cmd.Name()).Str("custom_id", customID).Msg("component handler failed")
			b.reportFailure(s, i)
		}

	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		cmd := matchByPrefix(customID)
		if cmd == nil {
			b.log.Warn().Str("custom_id", customID).Msg("no modal route")
			return
		}
		handler, ok := cmd.(core.ModalInteractionHandler)
		if !ok {
			return
		}
		ctx := &core.ModalInteractionContext{Session: s, Event: i, Deps: b.deps}
		if err := handler.Modal(ctx); err != nil {
			b.log.Error().Err(err).Str("command", cmd.Name()).Str("custom_id", customID).Msg("modal handler failed")
			b.reportFailure(s, i)
		}
	}
}

// matchByPrefix routes a custom ID to the command owning it. Longer names
// win so "order_status" is never shadowed by a shorter match.
func matchByPrefix(customID string) core.Command {
	var matched core.Command
	for _, cmd := range core.AllCommands() {
		name := cmd.Name()
		if customID != name &&
			!strings.HasPrefix(customID, name+"_") &&
			!strings.HasPrefix(customID, name+":") {
			continue
		}
		if matched == nil || len(name) > len(matched.Name()) {
			matched = cmd
		}
	}
	return matched
}

func (b *Bot) reportFailure(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := core.RespondEphemeral(s, i, "❌ An error occurred while processing your request.")
	if err != nil {
		// Already responded; deliver as a followup instead.
		_, _ = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: "❌ An error occurred while processing your request.",
			Flags:   discordgo.MessageFlagsEphemeral,
		})
	}
}

// registrationLimiter paces command creation calls below the REST write
// limit.
var registrationLimiter = rate.NewLimiter(rate.Limit(40), 1)

func (b *Bot) registerCommands(guildID string) error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return err
		}
		appID = user.ID
	}

	wanted := make(map[string]bool)
	for _, cmd := range core.AllCommands() {
		slash, ok := cmd.(core.SlashProvider)
		if !ok {
			continue
		}
		def := slash.SlashDefinition()
		if def == nil {
			continue
		}
		wanted[def.Name] = true

		if err := registrationLimiter.Wait(context.Background()); err != nil {
			return err
		}
		if _, err := b.dg.ApplicationCommandCreate(appID, guildID, def); err != nil {
			b.log.Error().Err(err).Str("command", def.Name).Str("guild", guildID).Msg("command create failed")
		} else {
			b.log.Info().Str("command", def.Name).Str("guild", guildID).Msg("command registered")
		}
	}

	// Drop commands this build no longer provides.
	existing, err := b.dg.ApplicationCommands(appID, guildID)
	if err != nil {
		return err
	}
	for _, old := range existing {
		if wanted[old.Name] {
			continue
		}
		b.log.Info().Str("command", old.Name).Str("guild", guildID).Msg("deleting obsolete command")
		if err := b.dg.ApplicationCommandDelete(appID, guildID, old.ID); err != nil {
			b.log.Error().Err(err).Str("command", old.Name).Msg("command delete failed")
		}
	}
	return nil
}
