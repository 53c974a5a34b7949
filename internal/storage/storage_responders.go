package storage

import (
	st "shopfront/internal/storagetypes"
)

// Autoresponders returns all rules in stored order. Match precedence depends
// on this order being stable.
func (s *Storage) Autoresponders() ([]st.AutoresponderRule, error) {
	var rules []st.AutoresponderRule
	if _, err := decodeDoc(s.responders, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (s *Storage) AddAutoresponder(rule st.AutoresponderRule) error {
	rules, err := s.Autoresponders()
	if err != nil {
		return err
	}
	rules = append(rules, rule)
	s.responders.Add(docKey, rules)
	return nil
}

func (s *Storage) DeleteAutoresponder(id string) error {
	rules, err := s.Autoresponders()
	if err != nil {
		return err
	}
	kept := rules[:0]
	for _, r := range rules {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(rules) {
		return ErrNotFound
	}
	s.responders.Add(docKey, kept)
	return nil
}
