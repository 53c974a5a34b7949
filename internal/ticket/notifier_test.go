package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierStashAndReveal(t *testing.T) {
	n, err := NewNotifier(time.Minute)
	require.NoError(t, err)

	items := []DeliveryItem{
		{Name: "acc 1", Link: "https://example.com/1"},
		{Name: "acc 2", Link: "https://example.com/2"},
	}
	require.NoError(t, n.Stash("tok", items))

	got, err := n.Reveal("tok")
	require.NoError(t, err)
	assert.Equal(t, items, got)

	// Reveal does not consume the payload.
	again, err := n.Reveal("tok")
	require.NoError(t, err)
	assert.Equal(t, items, again)
}

func TestNotifierUnknownToken(t *testing.T) {
	n, err := NewNotifier(time.Minute)
	require.NoError(t, err)

	_, err = n.Reveal("missing")
	assert.ErrorIs(t, err, ErrDeliveryNotFound)
}

func TestNotifierStashLimits(t *testing.T) {
	n, err := NewNotifier(time.Minute)
	require.NoError(t, err)

	assert.Error(t, n.Stash("tok", nil))

	many := []DeliveryItem{{Name: "1"}, {Name: "2"}, {Name: "3"}, {Name: "4"}}
	require.NoError(t, n.Stash("tok", many))
	got, err := n.Reveal("tok")
	require.NoError(t, err)
	assert.Len(t, got, MaxDeliveryItems)
}

func TestParseDeliveryItem(t *testing.T) {
	assert.Nil(t, ParseDeliveryItem(""))

	item := ParseDeliveryItem("robux code | https://example.com/code")
	require.NotNil(t, item)
	assert.Equal(t, "robux code", item.Name)
	assert.Equal(t, "https://example.com/code", item.Link)

	nameOnly := ParseDeliveryItem("just a name")
	require.NotNil(t, nameOnly)
	assert.Equal(t, "just a name", nameOnly.Name)
	assert.Empty(t, nameOnly.Link)
}
