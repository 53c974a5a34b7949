package sticky

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/storage"
	st "shopfront/internal/storagetypes"
)

// recordingSender captures side effects instead of calling Discord.
type recordingSender struct {
	sent    []string // message IDs handed back, in order
	deleted []string
	next    int
}

func (s *recordingSender) DeleteSticky(channelID, messageID string) error {
	s.deleted = append(s.deleted, messageID)
	return nil
}

func (s *recordingSender) SendSticky(channelID string, cfg st.StickyConfig) (string, error) {
	s.next++
	id := "msg-" + string(rune('0'+s.next))
	s.sent = append(s.sent, id)
	return id, nil
}

func newTestReposter(t *testing.T) (*Reposter, *storage.Storage, *time.Time) {
	t.Helper()
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := NewReposter(store, zerolog.Nop())
	r.now = func() time.Time { return now }
	return r, store, &now
}

func TestOnMessageWithoutConfig(t *testing.T) {
	r, _, _ := newTestReposter(t)
	reposted, err := r.OnMessage("chan1", &recordingSender{})
	require.NoError(t, err)
	assert.False(t, reposted)
}

func TestSetPostsFirstCopy(t *testing.T) {
	r, store, _ := newTestReposter(t)
	sender := &recordingSender{}

	require.NoError(t, r.Set("chan1", st.StickyConfig{Content: "shop is open"}, sender))
	require.Len(t, sender.sent, 1)

	cfg, err := store.Sticky("chan1")
	require.NoError(t, err)
	assert.Equal(t, "shop is open", cfg.Content)
	assert.Equal(t, sender.sent[0], cfg.LastMessageID)
	assert.False(t, cfg.CreatedAt.IsZero())
}

func TestSetReplacesPreviousCopy(t *testing.T) {
	r, _, _ := newTestReposter(t)
	sender := &recordingSender{}

	require.NoError(t, r.Set("chan1", st.StickyConfig{Content: "v1"}, sender))
	first := sender.sent[0]
	require.NoError(t, r.Set("chan1", st.StickyConfig{Content: "v2"}, sender))

	assert.Equal(t, []string{first}, sender.deleted)
}

func TestOnMessageRepostsAndTracksCopy(t *testing.T) {
	r, store, _ := newTestReposter(t)
	sender := &recordingSender{}
	require.NoError(t, r.Set("chan1", st.StickyConfig{Content: "rules"}, sender))
	first := sender.sent[0]

	reposted, err := r.OnMessage("chan1", sender)
	require.NoError(t, err)
	assert.True(t, reposted)
	assert.Contains(t, sender.deleted, first)

	cfg, err := store.Sticky("chan1")
	require.NoError(t, err)
	assert.Equal(t, sender.sent[len(sender.sent)-1], cfg.LastMessageID)
}

func TestOnMessageCooldown(t *testing.T) {
	r, _, now := newTestReposter(t)
	sender := &recordingSender{}
	require.NoError(t, r.Set("chan1", st.StickyConfig{Content: "rules"}, sender))

	reposted, err := r.OnMessage("chan1", sender)
	require.NoError(t, err)
	require.True(t, reposted)

	// Inside the cooldown window nothing reposts.
	*now = now.Add(Cooldown / 2)
	reposted, err = r.OnMessage("chan1", sender)
	require.NoError(t, err)
	assert.False(t, reposted)

	// The next message after the window triggers the repost.
	*now = now.Add(Cooldown)
	reposted, err = r.OnMessage("chan1", sender)
	require.NoError(t, err)
	assert.True(t, reposted)
}

func TestRemove(t *testing.T) {
	r, store, _ := newTestReposter(t)
	sender := &recordingSender{}
	require.NoError(t, r.Set("chan1", st.StickyConfig{Content: "rules"}, sender))

	require.NoError(t, r.Remove("chan1", sender))
	assert.Equal(t, sender.sent, sender.deleted)

	_, err := store.Sticky("chan1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, r.Remove("chan1", sender), storage.ErrNotFound)
}

func TestView(t *testing.T) {
	r, _, _ := newTestReposter(t)
	_, err := r.View("chan1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, r.Set("chan1", st.StickyConfig{EmbedName: "welcome"}, &recordingSender{}))
	cfg, err := r.View("chan1")
	require.NoError(t, err)
	assert.Equal(t, "welcome", cfg.EmbedName)
}
