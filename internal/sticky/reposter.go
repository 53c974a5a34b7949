package sticky

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"shopfront/internal/storage"
	st "shopfront/internal/storagetypes"
)

// Cooldown is the minimum gap between reposts in one channel. Inside the
// window the sticky simply does not reappear until the next message after
// the window; no timer re-arms it.
const Cooldown = 3 * time.Second

// Sender performs the Discord side effects of a repost. The delete is
// best-effort: a missing previous copy is not an error.
type Sender interface {
	DeleteSticky(channelID, messageID string) error
	SendSticky(channelID string, cfg st.StickyConfig) (messageID string, err error)
}

// Reposter re-sends a channel's configured sticky after activity, rate
// limited per channel. One instance is constructed at startup and shared by
// the message handler.
type Reposter struct {
	store *storage.Storage
	log   zerolog.Logger
	now   func() time.Time

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewReposter(store *storage.Storage, log zerolog.Logger) *Reposter {
	return &Reposter{
		store:    store,
		log:      log.With().Str("component", "sticky").Logger(),
		now:      time.Now,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (r *Reposter) limiter(channelID string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()
	lim, ok := r.limiters[channelID]
	if !ok {
		lim = rate.NewLimiter(rate.Every(Cooldown), 1)
		r.limiters[channelID] = lim
	}
	return lim
}

// OnMessage reposts the channel's sticky if one is configured and the
// cooldown has elapsed. It reports whether a repost happened.
func (r *Reposter) OnMessage(channelID string, sender Sender) (bool, error) {
	cfg, err := r.store.Sticky(channelID)
	if err != nil {
		if err == storage.ErrNotFound {
			return false, nil
		}
		return false, err
	}

	if !r.limiter(channelID).AllowN(r.now(), 1) {
		return false, nil
	}

	if cfg.LastMessageID != "" {
		if err := sender.DeleteSticky(channelID, cfg.LastMessageID); err != nil {
			r.log.Debug().Err(err).Str("channel", channelID).Msg("previous sticky already gone")
		}
	}

	messageID, err := sender.SendSticky(channelID, *cfg)
	if err != nil {
		return false, err
	}
	if err := r.store.SetStickyMessageID(channelID, messageID); err != nil {
		return true, err
	}
	return true, nil
}

// Set installs or replaces the channel's sticky and posts the first copy.
func (r *Reposter) Set(channelID string, cfg st.StickyConfig, sender Sender) error {
	if prev, err := r.store.Sticky(channelID); err == nil && prev.LastMessageID != "" {
		if err := sender.DeleteSticky(channelID, prev.LastMessageID); err != nil {
			r.log.Debug().Err(err).Str("channel", channelID).Msg("previous sticky already gone")
		}
	}

	messageID, err := sender.SendSticky(channelID, cfg)
	if err != nil {
		return err
	}
	cfg.LastMessageID = messageID
	cfg.CreatedAt = r.now()
	return r.store.SetSticky(channelID, cfg)
}

// Remove deletes the channel's sticky config and its rendered copy.
// Reports storage.ErrNotFound when no sticky is configured.
func (r *Reposter) Remove(channelID string, sender Sender) error {
	cfg, err := r.store.Sticky(channelID)
	if err != nil {
		return err
	}
	if cfg.LastMessageID != "" {
		if err := sender.DeleteSticky(channelID, cfg.LastMessageID); err != nil {
			r.log.Debug().Err(err).Str("channel", channelID).Msg("previous sticky already gone")
		}
	}
	if err := r.store.DeleteSticky(channelID); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.limiters, channelID)
	r.mu.Unlock()
	return nil
}

// View returns the channel's sticky config for display.
func (r *Reposter) View(channelID string) (*st.StickyConfig, error) {
	return r.store.Sticky(channelID)
}
