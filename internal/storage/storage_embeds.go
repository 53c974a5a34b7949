package storage

import (
	st "shopfront/internal/storagetypes"
)

func (s *Storage) Embeds() (map[string]st.EmbedTemplate, error) {
	embeds := map[string]st.EmbedTemplate{}
	if _, err := decodeDoc(s.embeds, &embeds); err != nil {
		return nil, err
	}
	return embeds, nil
}

func (s *Storage) Embed(name string) (*st.EmbedTemplate, error) {
	embeds, err := s.Embeds()
	if err != nil {
		return nil, err
	}
	tpl, ok := embeds[name]
	if !ok {
		return nil, ErrNotFound
	}
	return &tpl, nil
}

// SetEmbed creates or overwrites the template under name.
func (s *Storage) SetEmbed(name string, tpl st.EmbedTemplate) error {
	embeds, err := s.Embeds()
	if err != nil {
		return err
	}
	embeds[name] = tpl
	s.embeds.Add(docKey, embeds)
	return nil
}

// DeleteEmbed reports ErrNotFound without touching the store when the name
// does not exist.
func (s *Storage) DeleteEmbed(name string) error {
	embeds, err := s.Embeds()
	if err != nil {
		return err
	}
	if _, ok := embeds[name]; !ok {
		return ErrNotFound
	}
	delete(embeds, name)
	s.embeds.Add(docKey, embeds)
	return nil
}
