package concurrent

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {

	p := NewProgress("test", 100, 10)

	wg := new(sync.WaitGroup)
	wg.Add(100)
	for i := 0; i < 100; i++ {
		go func() {
			defer wg.Done()
			p.Track()
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, p.Get())
	assert.True(t, p.Done())
}

func TestProgress_ZeroStep(t *testing.T) {
	p := NewProgress("test", 2, 0)
	assert.Equal(t, 1, p.Track())
	assert.False(t, p.Done())
	assert.Equal(t, 2, p.Track())
	assert.True(t, p.Done())
}
