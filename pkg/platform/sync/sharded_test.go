package sync

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestShardedMutex_LockReturnsUnlock(t *testing.T) {
	m := NewShardedMutex()

	unlock := m.Lock("view-1")
	unlock()

	// Relocking after release must not deadlock.
	m.Lock("view-1")()
	m.Lock("")()
}

func TestShardedMutex_SameKeySerializes(t *testing.T) {
	m := NewShardedMutex()
	counter := 0
	var wg sync.WaitGroup

	for range 100 {
		wg.Go(func() {
			defer m.Lock("same-view")()
			counter++
		})
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestShardedMutex_ShardDistribution(t *testing.T) {
	m := NewShardedMutex()

	shards := make(map[int]bool)
	for range 16 {
		shard := m.shardFor(uuid.NewString())
		assert.Less(t, shard, shardCount)
		shards[shard] = true
	}

	assert.GreaterOrEqual(t, len(shards), 4, "expected view IDs to spread across shards")
	assert.Equal(t, m.shardFor("stable"), m.shardFor("stable"))
	assert.Equal(t, 0, m.shardFor(""))
}
