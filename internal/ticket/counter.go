package ticket

import (
	"regexp"
	"strconv"
	"sync"
)

var ticketNameRe = regexp.MustCompile(`^ticket-(\d+)-`)

// Counter hands out per-guild ticket numbers. Numbers are seeded from the
// channel names that survive a restart and continue in memory only, so a
// restart can reuse numbers of historical-but-closed tickets. They are a
// display aid, never a key.
type Counter struct {
	mu   sync.Mutex
	last map[string]int
}

func NewCounter() *Counter {
	return &Counter{last: make(map[string]int)}
}

// Seed records the highest ticket number observed among existing channel
// names so numbering continues where it left off.
func (c *Counter) Seed(guildID string, channelNames []string) {
	highest := 0
	for _, name := range channelNames {
		m := ticketNameRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if highest > c.last[guildID] {
		c.last[guildID] = highest
	}
}

func (c *Counter) Next(guildID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last[guildID]++
	return c.last[guildID]
}
