package storage

import (
	st "shopfront/internal/storagetypes"
)

// Orders loads the full order ledger. Absent document means an empty ledger.
func (s *Storage) Orders() ([]st.Order, error) {
	var orders []st.Order
	if _, err := decodeDoc(s.orders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Storage) SaveOrders(orders []st.Order) error {
	s.orders.Add(docKey, orders)
	return nil
}
