package responder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	st "shopfront/internal/storagetypes"
)

func TestMatchCaseInsensitiveSubstring(t *testing.T) {
	rules := []st.AutoresponderRule{
		{ID: "1", Trigger: "Vouch", Response: "thanks!"},
	}

	got := Match(rules, "can I VOUCH here?", "chan1")
	require.NotNil(t, got)
	assert.Equal(t, "1", got.ID)

	assert.Nil(t, Match(rules, "hello there", "chan1"))
}

func TestMatchFirstRuleWins(t *testing.T) {
	rules := []st.AutoresponderRule{
		{ID: "1", Trigger: "price", Response: "see the menu"},
		{ID: "2", Trigger: "price list", Response: "never reached"},
	}

	got := Match(rules, "where is the price list?", "chan1")
	require.NotNil(t, got)
	assert.Equal(t, "1", got.ID)
}

func TestMatchChannelScope(t *testing.T) {
	rules := []st.AutoresponderRule{
		{ID: "scoped", Trigger: "help", ChannelID: "chan1"},
		{ID: "global", Trigger: "help"},
	}

	got := Match(rules, "help me", "chan1")
	require.NotNil(t, got)
	assert.Equal(t, "scoped", got.ID)

	got = Match(rules, "help me", "chan2")
	require.NotNil(t, got)
	assert.Equal(t, "global", got.ID)
}

func TestMatchEmptyRules(t *testing.T) {
	assert.Nil(t, Match(nil, "anything", "chan1"))
}
