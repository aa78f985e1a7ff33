package idgen

import (
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextID_UniqueAcrossGoroutines(t *testing.T) {
	const workers, perWorker = 8, 200

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id, err := NextID()
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*perWorker)
}

func TestNextID_Increasing(t *testing.T) {
	a, err := NextID()
	require.NoError(t, err)
	b, err := NextID()
	require.NoError(t, err)

	x, err := strconv.ParseUint(a, 10, 64)
	require.NoError(t, err)
	y, err := strconv.ParseUint(b, 10, 64)
	require.NoError(t, err)
	assert.Less(t, x, y)
}

func TestNextPropertyCode(t *testing.T) {
	code, err := NextPropertyCode()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "PROP-"))
	_, err = strconv.ParseUint(strings.TrimPrefix(code, "PROP-"), 10, 64)
	assert.NoError(t, err)
}

func TestNewDeviceId(t *testing.T) {
	id := NewDeviceId()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewDeviceId())
}

func TestNewTempPassword(t *testing.T) {
	pw := NewTempPassword()
	assert.Len(t, pw, 12)
	assert.NotContains(t, pw, "-")
}
