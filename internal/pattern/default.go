package pattern

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/tapt/internal/trainer"
)

// ErrEmpty is returned for a pattern that parses but contains no targets.
// Rejecting it here keeps empty target sets out of the core entirely.
var ErrEmpty = errors.New("pattern has no targets")

type DefaultParser struct{}

// Parse reads a .tap file. One target per line: seconds, optionally
// followed by a label. Blank lines and # comments are ignored. Header
// directives @tolerance and @preroll take a Go duration and seed the
// run options.
//
//	# warm-up
//	@tolerance 80ms
//	@preroll 2s
//	0.5
//	1.0  downbeat
//	1.5
func (p *DefaultParser) Parse(file string) (*Pattern, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	pat, err := parse(data)
	if nil != err {
		return nil, fmt.Errorf("%v: %w", file, err)
	}
	pat.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return pat, nil
}

func parse(data []byte) (*Pattern, error) {
	pat := &Pattern{
		Labels: map[int]string{},
		Source: data,
	}

	str := strings.ReplaceAll(string(data), "\r", "")
	for i, line := range strings.Split(str, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "@") {
			if err := directive(pat, line); nil != err {
				return nil, fmt.Errorf("line %v: %w", i+1, err)
			}
			continue
		}

		fields := strings.Fields(line)
		seconds, err := strconv.ParseFloat(fields[0], 64)
		if nil != err {
			return nil, fmt.Errorf("line %v: bad target time %q: %w", i+1, fields[0], err)
		}
		if seconds < 0 {
			return nil, fmt.Errorf("line %v: negative target time %v", i+1, seconds)
		}
		id := len(pat.Targets)
		pat.Targets = append(pat.Targets, trainer.Target{
			ID:   id,
			Time: time.Duration(seconds * float64(time.Second)),
		})
		if len(fields) > 1 {
			pat.Labels[id] = strings.Join(fields[1:], " ")
		}
	}

	if len(pat.Targets) == 0 {
		return nil, ErrEmpty
	}
	return pat, nil
}

func directive(pat *Pattern, line string) error {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return fmt.Errorf("bad directive %q", line)
	}
	d, err := time.ParseDuration(fields[1])
	if nil != err {
		return fmt.Errorf("bad duration in %q: %w", line, err)
	}
	switch fields[0] {
	case "@tolerance":
		pat.Tolerance = d
	case "@preroll":
		pat.PreRoll = d
	default:
		return fmt.Errorf("unknown directive %q", fields[0])
	}
	return nil
}
