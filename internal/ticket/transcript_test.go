package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderTranscript(t *testing.T) {
	opened := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	closed := opened.Add(2 * time.Hour)
	sess := Session{
		TicketNumber:  7,
		CustomerID:    "123",
		CustomerTag:   "alice#0",
		ItemType:      "robux",
		Quantity:      "1000",
		PaymentMethod: "cashapp",
		CreatedAt:     opened,
		ClosedBy:      "staff#1",
	}
	msgs := []TranscriptMessage{
		{Author: "alice#0", Content: "hi, placing an order", Timestamp: opened.Add(time.Minute)},
		{Author: "shopbot", Bot: true, Content: "<script>alert(1)</script>", Timestamp: opened.Add(2 * time.Minute)},
		{
			Author:    "staff#1",
			Timestamp: opened.Add(3 * time.Minute),
			Attachments: []TranscriptAttachment{
				{Name: "proof.png", URL: "https://cdn.example/proof.png", Size: 4096, Image: true},
				{Name: "receipt.pdf", URL: "https://cdn.example/receipt.pdf", Size: 2048},
			},
		},
	}

	out := string(RenderTranscript("ticket-7-alice", sess, closed, msgs))

	assert.Contains(t, out, "<title>ticket-7-alice</title>")
	assert.Contains(t, out, "ticket #7")
	assert.Contains(t, out, "closed") // header carries closure metadata
	assert.Contains(t, out, "staff#1")

	// Content is escaped, never emitted raw.
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")

	// Oldest message renders before the newest.
	assert.Less(t, strings.Index(out, "placing an order"), strings.Index(out, "proof.png"))

	assert.Contains(t, out, `<img src="https://cdn.example/proof.png"`)
	assert.Contains(t, out, "receipt.pdf (2 KB)")
	assert.Contains(t, out, "<em>No text content</em>")
	assert.Contains(t, out, "[BOT]")
}
