package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	st "shopfront/internal/storagetypes"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFreshStoreIsEmpty(t *testing.T) {
	s := newTestStorage(t)

	orders, err := s.Orders()
	require.NoError(t, err)
	assert.Empty(t, orders)

	embeds, err := s.Embeds()
	require.NoError(t, err)
	assert.Empty(t, embeds)

	rules, err := s.Autoresponders()
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestOrdersRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	in := []st.Order{{
		User:      "u1",
		Item:      "robux",
		Amount:    "1000",
		MOP:       "cashapp",
		Status:    "pending",
		MessageID: "m1",
		Note:      "rush",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}}

	require.NoError(t, s.SaveOrders(in))
	out, err := s.Orders()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEmbeds(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Embed("welcome")
	assert.ErrorIs(t, err, ErrNotFound)

	tpl := st.EmbedTemplate{Title: "welcome", Description: "rules", Color: 0x5865f2}
	require.NoError(t, s.SetEmbed("welcome", tpl))

	got, err := s.Embed("welcome")
	require.NoError(t, err)
	assert.Equal(t, tpl, *got)

	// Overwrite under the same name.
	tpl.Title = "welcome v2"
	require.NoError(t, s.SetEmbed("welcome", tpl))
	got, err = s.Embed("welcome")
	require.NoError(t, err)
	assert.Equal(t, "welcome v2", got.Title)

	require.NoError(t, s.DeleteEmbed("welcome"))
	_, err = s.Embed("welcome")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteEmbedMissingLeavesStoreUntouched(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.SetEmbed("keep", st.EmbedTemplate{Title: "keep"}))

	assert.ErrorIs(t, s.DeleteEmbed("missing"), ErrNotFound)

	embeds, err := s.Embeds()
	require.NoError(t, err)
	assert.Len(t, embeds, 1)
}

func TestAutoresponders(t *testing.T) {
	s := newTestStorage(t)
	r1 := st.AutoresponderRule{ID: "1", Trigger: "vouch", Response: "thanks"}
	r2 := st.AutoresponderRule{ID: "2", Trigger: "price", EmbedName: "prices", ChannelID: "chan1"}

	require.NoError(t, s.AddAutoresponder(r1))
	require.NoError(t, s.AddAutoresponder(r2))

	rules, err := s.Autoresponders()
	require.NoError(t, err)
	// Stored order is the match precedence and must be preserved.
	assert.Equal(t, []st.AutoresponderRule{r1, r2}, rules)

	require.NoError(t, s.DeleteAutoresponder("1"))
	rules, err = s.Autoresponders()
	require.NoError(t, err)
	assert.Equal(t, []st.AutoresponderRule{r2}, rules)

	assert.ErrorIs(t, s.DeleteAutoresponder("1"), ErrNotFound)
}

func TestSticky(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Sticky("chan1")
	assert.ErrorIs(t, err, ErrNotFound)

	cfg := st.StickyConfig{Content: "open!", CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, s.SetSticky("chan1", cfg))

	got, err := s.Sticky("chan1")
	require.NoError(t, err)
	assert.Equal(t, cfg, *got)

	require.NoError(t, s.SetStickyMessageID("chan1", "m99"))
	got, err = s.Sticky("chan1")
	require.NoError(t, err)
	assert.Equal(t, "m99", got.LastMessageID)

	assert.ErrorIs(t, s.SetStickyMessageID("chan2", "m1"), ErrNotFound)

	require.NoError(t, s.DeleteSticky("chan1"))
	assert.ErrorIs(t, s.DeleteSticky("chan1"), ErrNotFound)
}
