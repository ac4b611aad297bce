package pattern

import (
	"time"

	"git.lost.host/meutraa/tapt/internal/trainer"
)

// Pattern is one parsed .tap file: the target set plus the options the
// file chose to pin. Zero Tolerance/PreRoll means the file left them to
// the surrounding configuration.
type Pattern struct {
	Name      string
	Targets   []trainer.Target
	Labels    map[int]string // optional per-target labels, keyed by id
	Tolerance time.Duration
	PreRoll   time.Duration
	Source    []byte // raw file content, for identity hashing
}

type Parser interface {
	Parse(file string) (*Pattern, error)
}
