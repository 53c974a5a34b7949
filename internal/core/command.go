package core

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"shopfront/internal/config"
	"shopfront/internal/sticky"
	"shopfront/internal/storage"
	"shopfront/internal/ticket"
)

// Command is anything the dispatcher can run. Commands self-describe; the
// registry and the Discord registration layer derive everything from here.
type Command interface {
	Name() string
	Description() string
	Group() string
	Category() string
	UserPermissions() []int64
	Run(ctx interface{}) error
}

// Providers - how this command should be registered with Discord.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// Deps are the state objects built once at startup and handed to every
// handler. Never package globals.
type Deps struct {
	Cfg     *config.Config
	Storage *storage.Storage
	Tickets *ticket.Controller
	Sticky  *sticky.Reposter
	Log     zerolog.Logger
}

// Contexts - what the runtime hands a command when executing it.
type SlashInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Deps    *Deps
}

type ComponentInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Deps    *Deps
}

type ModalInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Deps    *Deps
}

type MessageContext struct {
	Session *discordgo.Session
	Event   *discordgo.MessageCreate
	Deps    *Deps
}

// Hooks beyond Run for component clicks, modal submissions and plain
// messages. Dispatch is by custom-ID prefix (component/modal) or broadcast
// (message).
type ComponentInteractionHandler interface {
	Component(*ComponentInteractionContext) error
}

type ModalInteractionHandler interface {
	Modal(*ModalInteractionContext) error
}

type MessageHandler interface {
	Message(*MessageContext) error
}
