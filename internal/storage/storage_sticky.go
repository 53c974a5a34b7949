package storage

import (
	st "shopfront/internal/storagetypes"
)

func (s *Storage) Stickies() (map[string]st.StickyConfig, error) {
	stickies := map[string]st.StickyConfig{}
	if _, err := decodeDoc(s.sticky, &stickies); err != nil {
		return nil, err
	}
	return stickies, nil
}

func (s *Storage) Sticky(channelID string) (*st.StickyConfig, error) {
	stickies, err := s.Stickies()
	if err != nil {
		return nil, err
	}
	cfg, ok := stickies[channelID]
	if !ok {
		return nil, ErrNotFound
	}
	return &cfg, nil
}

func (s *Storage) SetSticky(channelID string, cfg st.StickyConfig) error {
	stickies, err := s.Stickies()
	if err != nil {
		return err
	}
	stickies[channelID] = cfg
	s.sticky.Add(docKey, stickies)
	return nil
}

func (s *Storage) DeleteSticky(channelID string) error {
	stickies, err := s.Stickies()
	if err != nil {
		return err
	}
	if _, ok := stickies[channelID]; !ok {
		return ErrNotFound
	}
	delete(stickies, channelID)
	s.sticky.Add(docKey, stickies)
	return nil
}

// SetStickyMessageID records the freshly posted sticky copy for a channel.
func (s *Storage) SetStickyMessageID(channelID, messageID string) error {
	stickies, err := s.Stickies()
	if err != nil {
		return err
	}
	cfg, ok := stickies[channelID]
	if !ok {
		return ErrNotFound
	}
	cfg.LastMessageID = messageID
	stickies[channelID] = cfg
	s.sticky.Add(docKey, stickies)
	return nil
}
