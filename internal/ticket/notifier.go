package ticket

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/allegro/bigcache/v3"
)

// MaxDeliveryItems is how many item links one delivery can carry.
const MaxDeliveryItems = 3

var ErrDeliveryNotFound = errors.New("ticket: delivery not found")

// DeliveryItem is one purchased item the customer may reveal.
type DeliveryItem struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// Notifier holds delivered-item payloads behind one-shot reveal tokens until
// the customer clicks the reveal control. Entries expire with the cache TTL
// so unrevealed deliveries do not accumulate forever.
type Notifier struct {
	cache *bigcache.BigCache
}

func NewNotifier(ttl time.Duration) (*Notifier, error) {
	cache, err := bigcache.NewBigCache(bigcache.DefaultConfig(ttl))
	if err != nil {
		return nil, fmt.Errorf("delivery cache: %w", err)
	}
	return &Notifier{cache: cache}, nil
}

func (n *Notifier) Stash(token string, items []DeliveryItem) error {
	if len(items) == 0 {
		return errors.New("ticket: delivery needs at least one item")
	}
	if len(items) > MaxDeliveryItems {
		items = items[:MaxDeliveryItems]
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return n.cache.Set(token, b)
}

// Reveal reads the payload without consuming it, so the customer can click
// the control again.
func (n *Notifier) Reveal(token string) ([]DeliveryItem, error) {
	b, err := n.cache.Get(token)
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
			return nil, ErrDeliveryNotFound
		}
		return nil, err
	}
	var items []DeliveryItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ParseDeliveryItem splits the "name|link" form staff type into the deliver
// modal. Empty input yields a nil item.
func ParseDeliveryItem(raw string) *DeliveryItem {
	if raw == "" {
		return nil
	}
	name, link, _ := strings.Cut(raw, "|")
	return &DeliveryItem{Name: strings.TrimSpace(name), Link: strings.TrimSpace(link)}
}
