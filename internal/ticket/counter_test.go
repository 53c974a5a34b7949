package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterSeedFromChannelNames(t *testing.T) {
	c := NewCounter()
	c.Seed("g1", []string{
		"general",
		"ticket-3-alice",
		"ticket-12-bob",
		"ticket-notanumber-x",
		"order-log",
	})

	assert.Equal(t, 13, c.Next("g1"))
	assert.Equal(t, 14, c.Next("g1"))
}

func TestCounterSeedNeverRewinds(t *testing.T) {
	c := NewCounter()
	c.Seed("g1", []string{"ticket-9-alice"})
	c.Seed("g1", []string{"ticket-2-bob"})
	assert.Equal(t, 10, c.Next("g1"))
}

func TestCounterGuildsIndependent(t *testing.T) {
	c := NewCounter()
	c.Seed("g1", []string{"ticket-5-alice"})

	assert.Equal(t, 6, c.Next("g1"))
	assert.Equal(t, 1, c.Next("g2"))
}
