package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/core"
)

type stubCommand struct{ name string }

func (c *stubCommand) Name() string              { return c.name }
func (c *stubCommand) Description() string       { return c.name }
func (c *stubCommand) Group() string             { return "test" }
func (c *stubCommand) Category() string          { return "test" }
func (c *stubCommand) UserPermissions() []int64  { return nil }
func (c *stubCommand) Run(ctx interface{}) error { return nil }

func TestMatchByPrefix(t *testing.T) {
	core.RegisterCommand(&stubCommand{name: "order"})
	core.RegisterCommand(&stubCommand{name: "order_status"})
	core.RegisterCommand(&stubCommand{name: "admin"})

	got := matchByPrefix("order_status_12345")
	require.NotNil(t, got)
	// The longer name wins over "order" even though both prefixes match.
	assert.Equal(t, "order_status", got.Name())

	got = matchByPrefix("order_modal")
	require.NotNil(t, got)
	assert.Equal(t, "order", got.Name())

	got = matchByPrefix("admin:embed_edit:title:welcome")
	require.NotNil(t, got)
	assert.Equal(t, "admin", got.Name())

	got = matchByPrefix("admin")
	require.NotNil(t, got)
	assert.Equal(t, "admin", got.Name())

	// A shared word is not a route: the separator must follow the name.
	assert.Nil(t, matchByPrefix("administrate"))
	assert.Nil(t, matchByPrefix("unknown_id"))
}
