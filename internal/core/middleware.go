package core

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx interface{}) error
}

func (w *wrappedCommand) Run(ctx interface{}) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	return w.Command.Run(ctx)
}

func (w *wrappedCommand) Component(ctx *ComponentInteractionContext) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	if ch, ok := w.Command.(ComponentInteractionHandler); ok {
		return ch.Component(ctx)
	}
	return nil
}

func (w *wrappedCommand) Modal(ctx *ModalInteractionContext) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	if mh, ok := w.Command.(ModalInteractionHandler); ok {
		return mh.Modal(ctx)
	}
	return nil
}

func (w *wrappedCommand) Message(ctx *MessageContext) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	if mh, ok := w.Command.(MessageHandler); ok {
		return mh.Message(ctx)
	}
	return nil
}

func (w *wrappedCommand) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := w.Command.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

// runInner invokes the hook matching the context type on the wrapped
// command, so middleware wraps every entry point uniformly.
func runInner(cmd Command, ctx interface{}) error {
	switch v := ctx.(type) {
	case *ComponentInteractionContext:
		if ch, ok := cmd.(ComponentInteractionHandler); ok {
			return ch.Component(v)
		}
		return nil
	case *ModalInteractionContext:
		if mh, ok := cmd.(ModalInteractionHandler); ok {
			return mh.Modal(v)
		}
		return nil
	case *MessageContext:
		if mh, ok := cmd.(MessageHandler); ok {
			return mh.Message(v)
		}
		return nil
	}
	return cmd.Run(ctx)
}

func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}

func WithGuildOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				switch v := ctx.(type) {
				case *SlashInteractionContext:
					if v.Event.GuildID == "" {
						return RespondEphemeral(v.Session, v.Event, "You must be in a server to use this command.")
					}
				case *MessageContext:
					if v.Event.GuildID == "" {
						return nil
					}
				}
				return runInner(cmd, ctx)
			},
		}
	}
}

// WithUserPermissionCheck gates a command on its UserPermissions: default
// allow when none declared, any-of semantics otherwise, admins bypass.
func WithUserPermissionCheck() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				var s *discordgo.Session
				var e *discordgo.InteractionCreate

				switch v := ctx.(type) {
				case *SlashInteractionContext:
					s, e = v.Session, v.Event
				case *ComponentInteractionContext:
					s, e = v.Session, v.Event
				case *ModalInteractionContext:
					s, e = v.Session, v.Event
				default:
					return runInner(cmd, ctx)
				}

				if e.GuildID == "" || e.Member == nil {
					return runInner(cmd, ctx)
				}

				required := cmd.UserPermissions()
				if len(required) == 0 {
					return runInner(cmd, ctx)
				}

				perms, err := s.UserChannelPermissions(e.Member.User.ID, e.ChannelID)
				if err != nil {
					return fmt.Errorf("failed to get user permissions: %w", err)
				}
				if perms&discordgo.PermissionAdministrator != 0 {
					return runInner(cmd, ctx)
				}
				for _, p := range required {
					if perms&p != 0 {
						return runInner(cmd, ctx)
					}
				}

				var names []string
				for _, p := range required {
					names = append(names, fmt.Sprintf("0x%x", p))
				}
				return RespondEphemeral(s, e, fmt.Sprintf(
					"You need at least one of the following permissions to run this command:\n`%s`",
					strings.Join(names, "`, `")))
			},
		}
	}
}

// WithCommandLogger records every invocation through the shared logger.
func WithCommandLogger() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				switch v := ctx.(type) {
				case *SlashInteractionContext:
					user := ""
					if v.Event.Member != nil {
						user = v.Event.Member.User.ID
					}
					v.Deps.Log.Info().
						Str("command", cmd.Name()).
						Str("guild", v.Event.GuildID).
						Str("channel", v.Event.ChannelID).
						Str("user", user).
						Msg("command invoked")
				}
				return runInner(cmd, ctx)
			},
		}
	}
}
