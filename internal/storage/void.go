package storage

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Discard is the storage used when nothing should be kept.
// Every store succeeds and every load misses.
type Discard struct {
	name string
}

// NewDiscard creates a storage dropping everything it is given.
func NewDiscard(name string) *Discard {
	return &Discard{name: name}
}

func (d *Discard) Store(k Key, value interface{}) error {
	log.Debug().Str("storage", d.name).Str("key", k.Path()).Msg("discarded")
	return nil
}

func (d *Discard) Load(k Key, value interface{}) error {
	return fmt.Errorf("nothing kept in '%s' for '%s': %w", d.name, k.Path(), NotFoundErr)
}

// DiscardShard creates discarding storage for every shard.
func DiscardShard() Shard {
	return func(shard string) (Persistence, error) {
		return NewDiscard(shard), nil
	}
}
