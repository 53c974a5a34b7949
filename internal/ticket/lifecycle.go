package ticket

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"shopfront/internal/orders"
	st "shopfront/internal/storagetypes"
)

var (
	// ErrNoCategory means the ticket category channel is not configured;
	// ticket creation is disabled until it is.
	ErrNoCategory = errors.New("ticket: ticket category not configured")

	ErrSessionNotFound  = errors.New("ticket: no session for channel")
	ErrAlreadyProcessed = errors.New("ticket: session already processed")
	ErrUnauthorized     = errors.New("ticket: not allowed to manage this ticket")
	ErrClosePending     = errors.New("ticket: close already pending")
)

// Config carries the external channel/role identifiers the controller needs.
type Config struct {
	CategoryID          string
	StaffRoleIDs        []string
	OrderChannelID      string
	TranscriptChannelID string
	Payment             PaymentInstructions
}

// CardState tracks the two-phase order card: posted with a placeholder
// select ID, then patched so the control references its own message.
type CardState int

const (
	CardPending CardState = iota
	CardFinalized
)

// OrderPoster renders the order card into the order-log channel. Post sends
// the card with a placeholder control ID and returns the new message ID;
// Finalize patches the control to carry that ID. The split is load-bearing:
// the control's identifier must reference the message it lives on, which is
// only known after the first send.
type OrderPoster interface {
	Post(order st.Order) (messageID string, err error)
	Finalize(messageID string) error
}

// Controller drives tickets from open through processing to closure,
// coordinating the session registry with the durable order ledger. One
// instance is built at startup and handed to every handler.
type Controller struct {
	cfg      Config
	registry *Registry
	counter  *Counter
	ledger   *orders.Ledger
	notifier *Notifier
	log      zerolog.Logger

	closeMu sync.Mutex
	closes  map[string]*CloseRequest
}

func NewController(cfg Config, registry *Registry, counter *Counter, ledger *orders.Ledger, notifier *Notifier, log zerolog.Logger) *Controller {
	return &Controller{
		cfg:      cfg,
		registry: registry,
		counter:  counter,
		ledger:   ledger,
		notifier: notifier,
		log:      log.With().Str("component", "ticket").Logger(),
		closes:   make(map[string]*CloseRequest),
	}
}

func (c *Controller) Config() Config       { return c.cfg }
func (c *Controller) Registry() *Registry  { return c.registry }
func (c *Controller) Ledger() *orders.Ledger { return c.ledger }
func (c *Controller) Notifier() *Notifier  { return c.notifier }

// SeedCounter continues ticket numbering from channels that already exist.
func (c *Controller) SeedCounter(guildID string, channelNames []string) {
	c.counter.Seed(guildID, channelNames)
}

// NextTicket allocates the next ticket number and derives the channel name.
// Fails with ErrNoCategory when ticket creation is disabled by config; the
// caller logs it without surfacing a session to the user.
func (c *Controller) NextTicket(guildID, username string) (int, string, error) {
	if c.cfg.CategoryID == "" {
		return 0, "", ErrNoCategory
	}
	n := c.counter.Next(guildID)
	return n, ChannelName(n, username), nil
}

var channelNameSanitizer = strings.NewReplacer(" ", "-")

// ChannelName builds the "ticket-N-username" channel name, lowercased and
// stripped to the characters Discord accepts.
func ChannelName(number int, username string) string {
	name := strings.ToLower(fmt.Sprintf("ticket-%d-%s", number, channelNameSanitizer.Replace(username)))
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Open stores a fresh session for a created ticket channel.
func (c *Controller) Open(channelID string, s Session) {
	s.State = StateOpen
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	c.registry.Put(channelID, s)
	c.log.Info().Str("channel", channelID).Int("ticket", s.TicketNumber).Msg("ticket opened")
}

func (c *Controller) Session(channelID string) (Session, bool) {
	return c.registry.Get(channelID)
}

// Claim annotates the session with the claiming staff member. Claiming does
// not change lifecycle state.
func (c *Controller) Claim(channelID, staffTag string) error {
	if !c.registry.mutate(channelID, func(s *Session) { s.ClaimedBy = staffTag }) {
		return ErrSessionNotFound
	}
	return nil
}

// ProcessOrder commits the channel's session into the order ledger. The card
// is posted first, the order persisted under the real message ID, then the
// card finalized. A finalize failure leaves a persisted order with a pending
// card — recoverable by resending — and is reported alongside the order.
func (c *Controller) ProcessOrder(channelID, note string, poster OrderPoster) (*st.Order, CardState, error) {
	sess, ok := c.registry.Get(channelID)
	if !ok {
		return nil, CardPending, ErrSessionNotFound
	}
	if sess.State != StateOpen {
		return nil, CardPending, ErrAlreadyProcessed
	}

	order := st.Order{
		User:      sess.CustomerID,
		Item:      sess.ItemType,
		Amount:    sess.Quantity,
		MOP:       sess.PaymentMethod,
		Status:    orders.StatusPending,
		ChannelID: c.cfg.OrderChannelID,
		Note:      note,
		Timestamp: time.Now(),
	}

	messageID, err := poster.Post(order)
	if err != nil {
		return nil, CardPending, fmt.Errorf("post order card: %w", err)
	}
	order.MessageID = messageID

	if err := c.ledger.Append(order); err != nil {
		return nil, CardPending, fmt.Errorf("persist order: %w", err)
	}
	c.registry.mutate(channelID, func(s *Session) { s.State = StateProcessed })

	if err := poster.Finalize(messageID); err != nil {
		c.log.Error().Err(err).Str("message", messageID).Msg("order card left unfinalized")
		return &order, CardPending, fmt.Errorf("finalize order card: %w", err)
	}
	c.log.Info().Str("channel", channelID).Str("message", messageID).Msg("order processed")
	return &order, CardFinalized, nil
}

// UpdateStatus sets an order's status by card message ID. The bool reports
// whether the order existed; repeated identical updates are no-ops.
func (c *Controller) UpdateStatus(messageID, status string) (bool, error) {
	return c.ledger.UpdateStatus(messageID, status)
}

// CanManage implements the shared staff/owner rule: the implied ticket owner
// (channel name carries their handle), anyone with manage-channels, or a
// configured staff role.
func (c *Controller) CanManage(channelName, username string, hasManageChannels bool, memberRoles []string) bool {
	if hasManageChannels {
		return true
	}
	if username != "" && strings.Contains(channelName, strings.ToLower(username)) {
		return true
	}
	for _, r := range memberRoles {
		if slices.Contains(c.cfg.StaffRoleIDs, r) {
			return true
		}
	}
	return false
}

// BeginClose starts the close countdown for a channel. The returned request
// carries the single-fire latch that resolves the cancel/expiry race.
func (c *Controller) BeginClose(channelID, requestedBy, requestedByTag string) (*CloseRequest, error) {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if _, pending := c.closes[channelID]; pending {
		return nil, ErrClosePending
	}

	prev := StateOpen
	if sess, ok := c.registry.Get(channelID); ok {
		prev = sess.State
		c.registry.mutate(channelID, func(s *Session) {
			s.State = StateClosing
			s.ClosedBy = requestedByTag
		})
	}

	req := &CloseRequest{
		ChannelID:   channelID,
		RequestedBy: requestedBy,
		Window:      CloseGraceWindow,
		prevState:   prev,
	}
	c.closes[channelID] = req
	return req, nil
}

// CancelClose aborts a pending close, returning the session to its prior
// state. Reports false when there is nothing to cancel or the caller may not
// cancel it.
func (c *Controller) CancelClose(channelID, userID string) bool {
	c.closeMu.Lock()
	req := c.closes[channelID]
	c.closeMu.Unlock()
	if req == nil || !req.Cancel(userID) {
		return false
	}

	c.registry.mutate(channelID, func(s *Session) {
		s.State = req.prevState
		s.ClosedBy = ""
	})
	c.closeMu.Lock()
	delete(c.closes, channelID)
	c.closeMu.Unlock()
	return true
}

// ExpireClose claims the deletion side of the race. When it reports true the
// caller deletes the channel and the session is discarded.
func (c *Controller) ExpireClose(channelID string) bool {
	c.closeMu.Lock()
	req := c.closes[channelID]
	c.closeMu.Unlock()
	if req == nil || !req.Expire() {
		return false
	}

	c.registry.mutate(channelID, func(s *Session) { s.State = StateClosed })
	c.registry.Delete(channelID)
	c.closeMu.Lock()
	delete(c.closes, channelID)
	c.closeMu.Unlock()
	c.log.Info().Str("channel", channelID).Msg("ticket closed")
	return true
}
