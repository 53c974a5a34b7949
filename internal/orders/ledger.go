package orders

import (
	"errors"
	"sort"
	"strings"
	"sync"

	st "shopfront/internal/storagetypes"
)

// PageSize is how many orders one /admin orders page shows.
const PageSize = 5

var ErrPageOutOfRange = errors.New("orders: page out of range")

// Store is the slice of the document store the ledger needs.
// *storage.Storage satisfies it.
type Store interface {
	Orders() ([]st.Order, error)
	SaveOrders([]st.Order) error
}

// Ledger is the durable log of placed orders, keyed by the message ID of the
// rendered order card. Mutating operations serialize on an internal mutex so
// concurrent gateway handlers cannot interleave a read-modify-write.
type Ledger struct {
	mu    sync.Mutex
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// Append records an order. An existing order with the same message ID is
// replaced, keeping the one-order-per-message invariant.
func (l *Ledger) Append(order st.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.store.Orders()
	if err != nil {
		return err
	}
	for i, o := range all {
		if o.MessageID == order.MessageID {
			all[i] = order
			return l.store.SaveOrders(all)
		}
	}
	all = append(all, order)
	return l.store.SaveOrders(all)
}

func (l *Ledger) FindByMessageID(messageID string) (*st.Order, error) {
	all, err := l.store.Orders()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].MessageID == messageID {
			return &all[i], nil
		}
	}
	return nil, nil
}

// UpdateStatus sets the status of the order behind messageID. It reports
// false when no such order exists; callers surface that to the actor.
// Setting the same status again is a no-op with an identical result.
func (l *Ledger) UpdateStatus(messageID, status string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.store.Orders()
	if err != nil {
		return false, err
	}
	for i := range all {
		if all[i].MessageID == messageID {
			if all[i].Status == status {
				return true, nil
			}
			all[i].Status = status
			return true, l.store.SaveOrders(all)
		}
	}
	return false, nil
}

func (l *Ledger) ByUser(userID string) ([]st.Order, error) {
	all, err := l.store.Orders()
	if err != nil {
		return nil, err
	}
	var out []st.Order
	for _, o := range all {
		if o.User == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// Filter narrows a ledger query. Zero values mean "no constraint".
type Filter struct {
	User   string // exact user ID
	Item   string // case-insensitive substring
	Status string // case-insensitive exact
}

func (f Filter) matches(o st.Order) bool {
	if f.User != "" && o.User != f.User {
		return false
	}
	if f.Item != "" && !strings.Contains(strings.ToLower(o.Item), strings.ToLower(f.Item)) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(o.Status, f.Status) {
		return false
	}
	return true
}

// Page is one stable slice of a filtered query.
type Page struct {
	Orders     []st.Order
	Number     int
	TotalPages int
}

// Query returns page `page` (1-based) of the orders matching f, in creation
// order with the message ID as tie-break so pagination is stable across
// calls. Pages past the end fail with ErrPageOutOfRange, except that an
// empty result tolerates page 1 and returns an empty page 1 of 1.
func (l *Ledger) Query(f Filter, page int) (*Page, error) {
	all, err := l.store.Orders()
	if err != nil {
		return nil, err
	}

	var matched []st.Order
	for _, o := range all {
		if f.matches(o) {
			matched = append(matched, o)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.Before(matched[j].Timestamp)
		}
		return matched[i].MessageID < matched[j].MessageID
	})

	totalPages := (len(matched) + PageSize - 1) / PageSize
	if totalPages == 0 {
		if page != 1 {
			return nil, ErrPageOutOfRange
		}
		return &Page{Number: 1, TotalPages: 1}, nil
	}
	if page < 1 || page > totalPages {
		return nil, ErrPageOutOfRange
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return &Page{Orders: matched[start:end], Number: page, TotalPages: totalPages}, nil
}
