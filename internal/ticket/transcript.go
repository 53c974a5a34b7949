package ticket

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// TranscriptAttachment is one file referenced from a transcript message.
type TranscriptAttachment struct {
	Name  string
	URL   string
	Size  int
	Image bool
}

// TranscriptMessage is one rendered channel message. Callers supply them
// oldest-first; RenderTranscript preserves that order (newest last).
type TranscriptMessage struct {
	Author      string
	Bot         bool
	Content     string
	Timestamp   time.Time
	Attachments []TranscriptAttachment
}

// RenderTranscript produces the self-contained HTML document delivered to
// the transcript channel when a ticket closes.
func RenderTranscript(channelName string, sess Session, closedAt time.Time, msgs []TranscriptMessage) []byte {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(channelName))
	b.WriteString("<style>body{font-family:sans-serif;background:#313338;color:#dbdee1;margin:2em}" +
		".msg{margin:0.75em 0;padding:0.5em;border-left:3px solid #5865f2}" +
		".bot{border-left-color:#23a55a}.author{font-weight:bold}" +
		".ts{color:#949ba4;font-size:0.85em;margin-left:0.5em}" +
		".att{color:#00a8fc;font-size:0.9em}.meta{color:#949ba4}</style>\n</head>\n<body>\n")

	fmt.Fprintf(&b, "<h1>%s</h1>\n<div class=\"meta\">\n", html.EscapeString(channelName))
	fmt.Fprintf(&b, "ticket #%d · customer %s (%s)<br>\n",
		sess.TicketNumber, html.EscapeString(sess.CustomerTag), html.EscapeString(sess.CustomerID))
	fmt.Fprintf(&b, "order: %s × %s, paid via %s<br>\n",
		html.EscapeString(sess.Quantity), html.EscapeString(sess.ItemType), html.EscapeString(sess.PaymentMethod))
	fmt.Fprintf(&b, "opened %s · closed %s by %s\n</div>\n",
		sess.CreatedAt.Format(time.RFC1123), closedAt.Format(time.RFC1123), html.EscapeString(sess.ClosedBy))

	for _, m := range msgs {
		cls := "msg"
		tag := ""
		if m.Bot {
			cls = "msg bot"
			tag = " [BOT]"
		}
		fmt.Fprintf(&b, "<div class=\"%s\"><span class=\"author\">%s%s</span><span class=\"ts\">%s</span><br>\n",
			cls, html.EscapeString(m.Author), tag, m.Timestamp.Format(time.RFC1123))
		if m.Content != "" {
			b.WriteString(html.EscapeString(m.Content))
		} else {
			b.WriteString("<em>No text content</em>")
		}
		for _, a := range m.Attachments {
			if a.Image {
				fmt.Fprintf(&b, "<br><img src=\"%s\" alt=\"%s\" style=\"max-width:400px\">",
					html.EscapeString(a.URL), html.EscapeString(a.Name))
			} else {
				fmt.Fprintf(&b, "<br><a class=\"att\" href=\"%s\">📎 %s (%d KB)</a>",
					html.EscapeString(a.URL), html.EscapeString(a.Name), a.Size/1024)
			}
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return []byte(b.String())
}
