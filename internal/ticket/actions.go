package ticket

import (
	"errors"
	"fmt"
)

// MenuAction is the closed set of admin select-menu actions. Unrecognized
// tokens are rejected with ErrUnknownAction instead of falling through.
type MenuAction int

const (
	ActionAddUser MenuAction = iota
	ActionBanUser
	ActionRemoveUser
	ActionReceipt
	ActionDeliver
	ActionLock
	ActionPriority
	ActionClaim
	ActionMarkPaid
	ActionSendTemplate
	ActionUserInfo
	ActionTranscript
)

var ErrUnknownAction = errors.New("ticket: unknown admin menu action")

var actionTokens = map[string]MenuAction{
	"add_user":            ActionAddUser,
	"ban_user":            ActionBanUser,
	"remove_user":         ActionRemoveUser,
	"receipt":             ActionReceipt,
	"deliver":             ActionDeliver,
	"lock_ticket":         ActionLock,
	"set_priority":        ActionPriority,
	"claim_ticket":        ActionClaim,
	"mark_paid":           ActionMarkPaid,
	"send_template":       ActionSendTemplate,
	"view_user_info":      ActionUserInfo,
	"generate_transcript": ActionTranscript,
}

func ParseMenuAction(token string) (MenuAction, error) {
	a, ok := actionTokens[token]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, token)
	}
	return a, nil
}

func (a MenuAction) Token() string {
	for tok, v := range actionTokens {
		if v == a {
			return tok
		}
	}
	return ""
}

// MenuOption pairs an action with the label shown in the select menu.
type MenuOption struct {
	Action      MenuAction
	Description string
}

// MenuOptions lists every admin action in display order.
func MenuOptions() []MenuOption {
	return []MenuOption{
		{ActionAddUser, "add user"},
		{ActionBanUser, "ban user"},
		{ActionRemoveUser, "remove user"},
		{ActionReceipt, "receipt"},
		{ActionDeliver, "deliver"},
		{ActionLock, "lock"},
		{ActionPriority, "priority"},
		{ActionClaim, "claim"},
		{ActionMarkPaid, "mark paid"},
		{ActionSendTemplate, "send template"},
		{ActionUserInfo, "user info"},
		{ActionTranscript, "transcript"},
	}
}

var ErrUnknownTemplate = errors.New("ticket: unknown reply template")

// canned staff replies, keyed by the token typed into the template modal
var replyTemplates = map[string]string{
	"processing": "⏳ Your order is currently being processed. Please wait patiently!",
	"ready":      "✅ Your order is ready! Please check your DMs for delivery.",
	"moreinfo":   "❓ We need more information about your order. Please provide additional details.",
	"thanks":     "💖 Thank you for shopping with us! Don't forget to vouch!",
}

func ReplyTemplate(name string) (string, error) {
	t, ok := replyTemplates[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return t, nil
}

// PriorityEmoji maps a priority level to its marker; unknown levels get a
// neutral marker.
func PriorityEmoji(level string) string {
	switch level {
	case "urgent":
		return "🔴"
	case "high":
		return "🟠"
	case "normal":
		return "🟢"
	case "low":
		return "🔵"
	}
	return "⚪"
}
