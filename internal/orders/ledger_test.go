package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	st "shopfront/internal/storagetypes"
)

// memStore is an in-memory stand-in for the document store.
type memStore struct {
	orders []st.Order
	saves  int
}

func (m *memStore) Orders() ([]st.Order, error) {
	out := make([]st.Order, len(m.orders))
	copy(out, m.orders)
	return out, nil
}

func (m *memStore) SaveOrders(orders []st.Order) error {
	m.orders = orders
	m.saves++
	return nil
}

func order(msgID, user, item, status string, ts time.Time) st.Order {
	return st.Order{
		User:      user,
		Item:      item,
		Amount:    "1",
		MOP:       "cashapp",
		Status:    status,
		MessageID: msgID,
		Timestamp: ts,
	}
}

func TestAppendReplacesSameMessageID(t *testing.T) {
	store := &memStore{}
	ledger := NewLedger(store)
	ts := time.Now()

	require.NoError(t, ledger.Append(order("m1", "u1", "robux", StatusPending, ts)))
	require.NoError(t, ledger.Append(order("m1", "u1", "robux", StatusPaid, ts)))

	all, err := store.Orders()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, StatusPaid, all[0].Status)
}

func TestUpdateStatus(t *testing.T) {
	store := &memStore{}
	ledger := NewLedger(store)
	require.NoError(t, ledger.Append(order("m1", "u1", "robux", StatusPending, time.Now())))

	found, err := ledger.UpdateStatus("m1", StatusDone)
	require.NoError(t, err)
	assert.True(t, found)

	got, err := ledger.FindByMessageID("m1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, StatusDone, got.Status)

	// Same status again is a no-op with the same result.
	saves := store.saves
	found, err = ledger.UpdateStatus("m1", StatusDone)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, saves, store.saves)

	found, err = ledger.UpdateStatus("missing", StatusDone)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindByMessageIDMissing(t *testing.T) {
	ledger := NewLedger(&memStore{})
	got, err := ledger.FindByMessageID("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestByUser(t *testing.T) {
	store := &memStore{}
	ledger := NewLedger(store)
	ts := time.Now()
	require.NoError(t, ledger.Append(order("m1", "alice", "robux", StatusPending, ts)))
	require.NoError(t, ledger.Append(order("m2", "bob", "nitro", StatusPending, ts)))
	require.NoError(t, ledger.Append(order("m3", "alice", "nitro", StatusDone, ts)))

	got, err := ledger.ByUser("alice")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestQueryPagination(t *testing.T) {
	store := &memStore{}
	ledger := NewLedger(store)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		msgID := string(rune('a' + i))
		require.NoError(t, ledger.Append(order(msgID, "u1", "robux", StatusPending, base.Add(time.Duration(i)*time.Minute))))
	}

	p1, err := ledger.Query(Filter{}, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, p1.TotalPages)
	require.Len(t, p1.Orders, PageSize)
	assert.Equal(t, "a", p1.Orders[0].MessageID)

	p3, err := ledger.Query(Filter{}, 3)
	require.NoError(t, err)
	assert.Len(t, p3.Orders, 2)
	assert.Equal(t, "l", p3.Orders[1].MessageID)

	_, err = ledger.Query(Filter{}, 4)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
	_, err = ledger.Query(Filter{}, 0)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestQueryStableOrderOnEqualTimestamps(t *testing.T) {
	store := &memStore{}
	ledger := NewLedger(store)
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, ledger.Append(order("b", "u1", "x", StatusPending, ts)))
	require.NoError(t, ledger.Append(order("a", "u1", "x", StatusPending, ts)))

	p, err := ledger.Query(Filter{}, 1)
	require.NoError(t, err)
	require.Len(t, p.Orders, 2)
	assert.Equal(t, "a", p.Orders[0].MessageID)
	assert.Equal(t, "b", p.Orders[1].MessageID)
}

func TestQueryEmptyResult(t *testing.T) {
	ledger := NewLedger(&memStore{})

	p, err := ledger.Query(Filter{}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.TotalPages)
	assert.Empty(t, p.Orders)

	_, err = ledger.Query(Filter{}, 2)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestQueryFilters(t *testing.T) {
	store := &memStore{}
	ledger := NewLedger(store)
	ts := time.Now()
	require.NoError(t, ledger.Append(order("m1", "alice", "Robux 1000", "Done", ts)))
	require.NoError(t, ledger.Append(order("m2", "bob", "nitro boost", StatusDone, ts)))
	require.NoError(t, ledger.Append(order("m3", "alice", "robux 500", StatusPending, ts)))

	p, err := ledger.Query(Filter{User: "alice"}, 1)
	require.NoError(t, err)
	assert.Len(t, p.Orders, 2)

	// Item filter is a case-insensitive substring.
	p, err = ledger.Query(Filter{Item: "ROBUX"}, 1)
	require.NoError(t, err)
	assert.Len(t, p.Orders, 2)

	// Status filter is case-insensitive exact.
	p, err = ledger.Query(Filter{Status: "done"}, 1)
	require.NoError(t, err)
	assert.Len(t, p.Orders, 2)

	p, err = ledger.Query(Filter{User: "alice", Item: "robux", Status: "pending"}, 1)
	require.NoError(t, err)
	require.Len(t, p.Orders, 1)
	assert.Equal(t, "m3", p.Orders[0].MessageID)
}
