package ticket

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/orders"
	st "shopfront/internal/storagetypes"
)

type memOrderStore struct {
	mu     sync.Mutex
	orders []st.Order
}

func (m *memOrderStore) Orders() ([]st.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]st.Order, len(m.orders))
	copy(out, m.orders)
	return out, nil
}

func (m *memOrderStore) SaveOrders(o []st.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = o
	return nil
}

// fakePoster stands in for the order-card renderer.
type fakePoster struct {
	postErr     error
	finalizeErr error
	posted      []st.Order
	finalized   []string
}

func (p *fakePoster) Post(order st.Order) (string, error) {
	if p.postErr != nil {
		return "", p.postErr
	}
	p.posted = append(p.posted, order)
	return "msg-1", nil
}

func (p *fakePoster) Finalize(messageID string) error {
	if p.finalizeErr != nil {
		return p.finalizeErr
	}
	p.finalized = append(p.finalized, messageID)
	return nil
}

func newTestController(t *testing.T, cfg Config) (*Controller, *memOrderStore) {
	t.Helper()
	store := &memOrderStore{}
	notifier, err := NewNotifier(time.Minute)
	require.NoError(t, err)
	c := NewController(cfg, NewRegistry(), NewCounter(), orders.NewLedger(store), notifier, zerolog.Nop())
	return c, store
}

func TestNextTicketRequiresCategory(t *testing.T) {
	c, _ := newTestController(t, Config{})
	_, _, err := c.NextTicket("g1", "alice")
	assert.ErrorIs(t, err, ErrNoCategory)
}

func TestNextTicketNumbersPerGuild(t *testing.T) {
	c, _ := newTestController(t, Config{CategoryID: "cat"})

	n1, name, err := c.NextTicket("g1", "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, n1)
	assert.Equal(t, "ticket-1-alice", name)

	n2, _, err := c.NextTicket("g1", "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, n2)

	other, _, err := c.NextTicket("g2", "carol")
	require.NoError(t, err)
	assert.Equal(t, 1, other)
}

func TestChannelNameSanitization(t *testing.T) {
	assert.Equal(t, "ticket-3-some-user", ChannelName(3, "Some User"))
	assert.Equal(t, "ticket-7-wrd", ChannelName(7, "wëi®d!"))
	assert.Equal(t, "ticket-1-a_b-c", ChannelName(1, "a_b-c"))
}

func TestProcessOrderHappyPath(t *testing.T) {
	c, store := newTestController(t, Config{CategoryID: "cat", OrderChannelID: "orders"})
	c.Open("chan1", Session{
		TicketNumber:  1,
		CustomerID:    "user1",
		ItemType:      "robux",
		Quantity:      "1000",
		PaymentMethod: "cashapp",
	})

	poster := &fakePoster{}
	order, state, err := c.ProcessOrder("chan1", "rush", poster)
	require.NoError(t, err)
	assert.Equal(t, CardFinalized, state)
	require.NotNil(t, order)
	assert.Equal(t, "msg-1", order.MessageID)
	assert.Equal(t, orders.StatusPending, order.Status)
	assert.Equal(t, "rush", order.Note)
	assert.Equal(t, "orders", order.ChannelID)
	assert.Equal(t, []string{"msg-1"}, poster.finalized)

	persisted, err := store.Orders()
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, "robux", persisted[0].Item)

	sess, ok := c.Session("chan1")
	require.True(t, ok)
	assert.Equal(t, StateProcessed, sess.State)
}

func TestProcessOrderRejectsSecondRun(t *testing.T) {
	c, _ := newTestController(t, Config{CategoryID: "cat"})
	c.Open("chan1", Session{CustomerID: "user1"})

	_, _, err := c.ProcessOrder("chan1", "", &fakePoster{})
	require.NoError(t, err)

	_, _, err = c.ProcessOrder("chan1", "", &fakePoster{})
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestProcessOrderUnknownChannel(t *testing.T) {
	c, _ := newTestController(t, Config{CategoryID: "cat"})
	_, _, err := c.ProcessOrder("nope", "", &fakePoster{})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestProcessOrderPostFailureLeavesSessionOpen(t *testing.T) {
	c, store := newTestController(t, Config{CategoryID: "cat"})
	c.Open("chan1", Session{CustomerID: "user1"})

	poster := &fakePoster{postErr: errors.New("api down")}
	order, state, err := c.ProcessOrder("chan1", "", poster)
	require.Error(t, err)
	assert.Nil(t, order)
	assert.Equal(t, CardPending, state)

	sess, ok := c.Session("chan1")
	require.True(t, ok)
	assert.Equal(t, StateOpen, sess.State)

	persisted, err := store.Orders()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestProcessOrderFinalizeFailureKeepsOrder(t *testing.T) {
	c, store := newTestController(t, Config{CategoryID: "cat"})
	c.Open("chan1", Session{CustomerID: "user1"})

	poster := &fakePoster{finalizeErr: errors.New("edit rejected")}
	order, state, err := c.ProcessOrder("chan1", "", poster)
	require.Error(t, err)
	require.NotNil(t, order)
	assert.Equal(t, CardPending, state)

	// The order is persisted and the session consumed; only the card control
	// is left unfinalized.
	persisted, err := store.Orders()
	require.NoError(t, err)
	assert.Len(t, persisted, 1)

	sess, ok := c.Session("chan1")
	require.True(t, ok)
	assert.Equal(t, StateProcessed, sess.State)
}

func TestClaimAnnotatesSession(t *testing.T) {
	c, _ := newTestController(t, Config{CategoryID: "cat"})
	c.Open("chan1", Session{CustomerID: "user1"})

	require.NoError(t, c.Claim("chan1", "staff#1"))
	sess, ok := c.Session("chan1")
	require.True(t, ok)
	assert.Equal(t, "staff#1", sess.ClaimedBy)
	assert.Equal(t, StateOpen, sess.State)

	assert.ErrorIs(t, c.Claim("nope", "staff#1"), ErrSessionNotFound)
}

func TestCanManage(t *testing.T) {
	c, _ := newTestController(t, Config{CategoryID: "cat", StaffRoleIDs: []string{"role-staff"}})

	assert.True(t, c.CanManage("ticket-1-alice", "Alice", false, nil), "owner by channel name")
	assert.True(t, c.CanManage("ticket-1-alice", "bob", true, nil), "manage channels")
	assert.True(t, c.CanManage("ticket-1-alice", "bob", false, []string{"role-staff"}), "staff role")
	assert.False(t, c.CanManage("ticket-1-alice", "bob", false, []string{"role-other"}))
}

func TestCloseCancelWinsRace(t *testing.T) {
	c, _ := newTestController(t, Config{CategoryID: "cat"})
	c.Open("chan1", Session{CustomerID: "user1"})

	req, err := c.BeginClose("chan1", "user1", "user#1")
	require.NoError(t, err)
	assert.Equal(t, CloseGraceWindow, req.Window)

	sess, _ := c.Session("chan1")
	assert.Equal(t, StateClosing, sess.State)

	assert.True(t, c.CancelClose("chan1", "user1"))
	sess, ok := c.Session("chan1")
	require.True(t, ok)
	assert.Equal(t, StateOpen, sess.State)
	assert.Empty(t, sess.ClosedBy)

	// The loser of the latch must not delete the channel.
	assert.False(t, c.ExpireClose("chan1"))
}

func TestCloseExpiryWinsRace(t *testing.T) {
	c, _ := newTestController(t, Config{CategoryID: "cat"})
	c.Open("chan1", Session{CustomerID: "user1"})

	_, err := c.BeginClose("chan1", "user1", "user#1")
	require.NoError(t, err)

	assert.True(t, c.ExpireClose("chan1"))
	_, ok := c.Session("chan1")
	assert.False(t, ok, "session discarded after expiry")

	assert.False(t, c.CancelClose("chan1", "user1"))
}

func TestCancelCloseRequesterOnly(t *testing.T) {
	c, _ := newTestController(t, Config{CategoryID: "cat"})
	c.Open("chan1", Session{CustomerID: "user1"})

	_, err := c.BeginClose("chan1", "user1", "user#1")
	require.NoError(t, err)

	assert.False(t, c.CancelClose("chan1", "someone-else"))
	assert.True(t, c.CancelClose("chan1", "user1"))
}

func TestBeginCloseRejectsSecondRequest(t *testing.T) {
	c, _ := newTestController(t, Config{CategoryID: "cat"})
	c.Open("chan1", Session{CustomerID: "user1"})

	_, err := c.BeginClose("chan1", "user1", "user#1")
	require.NoError(t, err)

	_, err = c.BeginClose("chan1", "user2", "user#2")
	assert.ErrorIs(t, err, ErrClosePending)
}

func TestCancelCloseRestoresProcessedState(t *testing.T) {
	c, _ := newTestController(t, Config{CategoryID: "cat"})
	c.Open("chan1", Session{CustomerID: "user1"})
	_, _, err := c.ProcessOrder("chan1", "", &fakePoster{})
	require.NoError(t, err)

	_, err = c.BeginClose("chan1", "user1", "user#1")
	require.NoError(t, err)
	require.True(t, c.CancelClose("chan1", "user1"))

	sess, ok := c.Session("chan1")
	require.True(t, ok)
	assert.Equal(t, StateProcessed, sess.State)
}
