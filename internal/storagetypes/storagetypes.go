package storagetypes

import (
	"time"
)

// Order is the durable record of a committed order, independent of the
// ticket channel's lifetime. MessageID is the natural key: it points at the
// rendered order card in the order-log channel.
type Order struct {
	User      string    `json:"user"`
	Item      string    `json:"item"`
	Amount    string    `json:"amount"`
	MOP       string    `json:"mop"`
	Status    string    `json:"status"` // "pending", "paid", "processing", "w4v", "done"
	MessageID string    `json:"message_id"`
	ChannelID string    `json:"channel_id"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type EmbedFooter struct {
	Text      string `json:"text,omitempty"`
	Icon      string `json:"icon,omitempty"`
	Timestamp bool   `json:"timestamp,omitempty"`
}

type EmbedAuthor struct {
	Name string `json:"name,omitempty"`
	Icon string `json:"icon,omitempty"`
}

// EmbedTemplate is a reusable rich-message template, keyed by name.
type EmbedTemplate struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Footer      EmbedFooter  `json:"footer,omitempty"`
	Author      EmbedAuthor  `json:"author,omitempty"`
	Image       string       `json:"image,omitempty"`
	Thumbnail   string       `json:"thumbnail,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

// AutoresponderRule fires when Trigger is a case-insensitive substring of an
// inbound message. ChannelID narrows the rule to one channel; empty = global.
type AutoresponderRule struct {
	ID        string `json:"id"`
	Trigger   string `json:"trigger"`
	Response  string `json:"response,omitempty"`
	EmbedName string `json:"embed_name,omitempty"`
	ChannelID string `json:"channel_id,omitempty"`
}

// StickyConfig describes the message that reappears at the bottom of a
// channel after activity. LastMessageID tracks the current rendered copy so
// it can be deleted before the repost.
type StickyConfig struct {
	Content       string    `json:"content,omitempty"`
	EmbedName     string    `json:"embed_name,omitempty"`
	LastMessageID string    `json:"last_message_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
