package config

import (
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"git.lost.host/meutraa/tapt/internal/pattern"
	"git.lost.host/meutraa/tapt/internal/trainer"
)

var (
	PatternFile = kingpin.Arg("pattern", "Pattern file (.tap)").Required().ExistingFile()
	Tolerance   = kingpin.Flag("tolerance", "Hit window around each target (0 = from pattern/config)").Short('t').Duration()
	PreRoll     = kingpin.Flag("preroll", "Countdown before the first target (negative = from pattern/config)").Short('p').Default("-1ms").Duration()
	FramePeriod = kingpin.Flag("frame-period", "Render frame period").Default("16ms").Duration()
	Database    = kingpin.Flag("db", "Score database path (empty = from config)").String()
	CueFreq     = kingpin.Flag("cue-freq", "Cue tone frequency in Hz (0 = from config)").Int()
	NoAudio     = kingpin.Flag("no-audio", "Disable audible cues").Bool()
	Midi        = kingpin.Flag("midi", "Also accept presses from a MIDI input").Bool()
	Export      = kingpin.Flag("export", "Write the session press log as CSV to this file").String()
)

func ParseFlags(version string) {
	kingpin.Version(version)
	kingpin.Parse()
}

// Options resolves the run options. Precedence, low to high: built-in
// defaults, file/env config, pattern directives, command line flags.
func Options(cfg *Config, pat *pattern.Pattern) trainer.Options {
	o := trainer.Options{
		Tolerance: time.Duration(cfg.ToleranceMS) * time.Millisecond,
		PreRoll:   time.Duration(cfg.PreRollMS) * time.Millisecond,
	}
	if pat.Tolerance > 0 {
		o.Tolerance = pat.Tolerance
	}
	if pat.PreRoll > 0 {
		o.PreRoll = pat.PreRoll
	}
	if *Tolerance > 0 {
		o.Tolerance = *Tolerance
	}
	if *PreRoll >= 0 {
		o.PreRoll = *PreRoll
	}
	return o
}

type Judgement struct {
	Time time.Duration
	Name string
}

// Judgements are the display grading bands. The second to last band is
// widened to the run tolerance by SetJudgements; the last entry is the
// miss bucket. The core matcher never sees these.
var Judgements = []Judgement{
	{Time: 5 * time.Millisecond, Name: "      \033[1;31mE\033[38;5;208mx\033[1;33ma\033[1;32mc\033[38;5;153mt\033[0m"},
	{Time: 10 * time.Millisecond, Name: " \033[1;35mRidiculous\033[0m"},
	{Time: 20 * time.Millisecond, Name: "  \033[38;5;153mMarvelous\033[0m"},
	{Time: 40 * time.Millisecond, Name: "      \033[1;36mGreat\033[0m"},
	{Time: 60 * time.Millisecond, Name: "       \033[1;32mGood\033[0m"},
	{Time: 100 * time.Millisecond, Name: "       \033[1;31mOkay\033[0m"},
	{Time: -1, Name: "       \033[1;31mMiss\033[0m"},
}

func SetJudgements(tolerance time.Duration) {
	Judgements[len(Judgements)-2].Time = tolerance
}

// Judge grades an absolute delta into a Judgements index. Deltas beyond
// the tolerance band land in the miss bucket.
func Judge(d time.Duration) int {
	for i := 0; i < len(Judgements)-1; i++ {
		if d <= Judgements[i].Time {
			return i
		}
	}
	return len(Judgements) - 1
}
