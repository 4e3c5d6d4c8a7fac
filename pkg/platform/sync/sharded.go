package sync

import (
	"hash/fnv"
	"sync"
)

const shardCount = 32

// ShardedMutex serializes work per key without a global lock. Keys that hash
// to the same shard share a mutex, so holders must not lock a second key.
type ShardedMutex struct {
	shards [shardCount]sync.Mutex
}

func NewShardedMutex() *ShardedMutex {
	return &ShardedMutex{}
}

// Lock acquires the shard for key and returns its release func.
//
//	defer m.Lock(viewID.String())()
func (m *ShardedMutex) Lock(key string) (unlock func()) {
	mu := &m.shards[m.shardFor(key)]
	mu.Lock()
	return mu.Unlock
}

// shardFor maps key to a shard. Empty keys use shard 0.
func (m *ShardedMutex) shardFor(key string) int {
	if key == "" {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % shardCount)
}
