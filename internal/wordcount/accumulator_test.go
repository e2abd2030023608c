package wordcount

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAccumulator_Shards(t *testing.T) {
	assert.Len(t, NewAccumulator(0).shards, defaultShards)
	assert.Len(t, NewAccumulator(1).shards, 1)
	assert.Len(t, NewAccumulator(5).shards, 8)
	assert.Len(t, NewAccumulator(64).shards, 64)
}

func TestAccumulator_ConcurrentAdd(t *testing.T) {
	const (
		workers = 16
		rounds  = 1000
	)
	acc := NewAccumulator(4)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				acc.Add("hot", 1)
				acc.AddAll(Counts{"w" + strconv.Itoa(j%10): 1, "hot": 2})
			}
		}()
	}
	wg.Wait()

	got := acc.Counts()
	assert.Equal(t, workers*rounds*3, got["hot"])
	for j := 0; j < 10; j++ {
		assert.Equal(t, workers*rounds/10, got["w"+strconv.Itoa(j)])
	}
}

func TestAccumulator_CountsIsCopy(t *testing.T) {
	acc := NewAccumulator(2)
	acc.Add("a", 1)

	snap := acc.Counts()
	snap["a"] = 100
	acc.Add("a", 1)

	assert.Equal(t, Counts{"a": 2}, acc.Counts())
}
