package concurrent

import (
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// Progress counts finished tasks out of a known total and reports every step.
type Progress struct {
	name  string
	total uint64
	step  uint64
	count uint64
}

// NewProgress creates a new progress counter for the given number of tasks.
func NewProgress(name string, total, step int) *Progress {
	if step < 1 {
		step = 1
	}
	return &Progress{
		name:  name,
		total: uint64(total),
		step:  uint64(step),
	}
}

// Track counts one more finished task and returns the count so far.
func (p *Progress) Track() int {
	c := atomic.AddUint64(&p.count, 1)
	if c%p.step == 0 || c == p.total {
		log.Info().
			Str("task", p.name).
			Uint64("done", c).
			Uint64("total", p.total).
			Msg("progress")
	}
	return int(c)
}

// Get returns the current count.
func (p *Progress) Get() int {
	return int(atomic.LoadUint64(&p.count))
}

// Done returns true if all tasks have finished.
func (p *Progress) Done() bool {
	return atomic.LoadUint64(&p.count) >= p.total
}
