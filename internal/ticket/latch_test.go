package ticket

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatchFiresOnce(t *testing.T) {
	var l Latch
	assert.True(t, l.TryFire())
	assert.False(t, l.TryFire())
}

func TestLatchConcurrentSingleWinner(t *testing.T) {
	var l Latch
	var wins int32
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.TryFire() {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}

func TestCloseRequestCancelVsExpire(t *testing.T) {
	req := &CloseRequest{ChannelID: "chan1", RequestedBy: "user1"}
	assert.False(t, req.Cancel("intruder"))
	assert.True(t, req.Cancel("user1"))
	assert.False(t, req.Expire())

	req = &CloseRequest{ChannelID: "chan1", RequestedBy: "user1"}
	assert.True(t, req.Expire())
	assert.False(t, req.Cancel("user1"))
}
