package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/keshon/datastore"
)

// ErrNotFound is returned by lookups and deletes that miss their key.
var ErrNotFound = errors.New("storage: not found")

// Storage persists the four shop collections, one JSON document per file:
// orders.json, embeds.json, autoresponders.json, sticky.json. A missing file
// is created empty on first open.
type Storage struct {
	orders     *datastore.DataStore
	embeds     *datastore.DataStore
	responders *datastore.DataStore
	sticky     *datastore.DataStore
}

func New(dir string) (*Storage, error) {
	s := &Storage{}
	for _, c := range []struct {
		name string
		dst  **datastore.DataStore
	}{
		{"orders.json", &s.orders},
		{"embeds.json", &s.embeds},
		{"autoresponders.json", &s.responders},
		{"sticky.json", &s.sticky},
	} {
		ds, err := datastore.New(filepath.Join(dir, c.name))
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", c.name, err)
		}
		*c.dst = ds
	}
	return s, nil
}

func (s *Storage) Close() error {
	var firstErr error
	for _, ds := range []*datastore.DataStore{s.orders, s.embeds, s.responders, s.sticky} {
		if ds == nil {
			continue
		}
		if err := ds.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Each collection lives under a single document key inside its file.
const docKey = "doc"

// decodeDoc re-marshals the loosely typed value the datastore hands back
// into the collection's concrete type.
func decodeDoc(ds *datastore.DataStore, out any) (bool, error) {
	raw, exists := ds.Get(docKey)
	if !exists {
		return false, nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return false, fmt.Errorf("marshal document: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("unmarshal document: %w", err)
	}
	return true, nil
}
