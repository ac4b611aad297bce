package audio

import (
	"log"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/generators"
	"github.com/faiface/beep/speaker"
)

// Player produces the audible cue and press feedback ticks. Tones are
// generated, not decoded from files, so a cue costs one short streamer.
type Player struct {
	sr           beep.SampleRate
	cueFreq      int
	feedbackFreq int
}

func NewPlayer(cueFreq, feedbackFreq int) (*Player, error) {
	sr := beep.SampleRate(44100)
	if err := speaker.Init(sr, sr.N(time.Second/60)); nil != err {
		return nil, err
	}
	return &Player{sr: sr, cueFreq: cueFreq, feedbackFreq: feedbackFreq}, nil
}

func (p *Player) Close() {
	speaker.Close()
}

// Cue plays the target tick.
func (p *Player) Cue() {
	p.play(p.cueFreq, 60*time.Millisecond)
}

// Feedback plays the lower press tick.
func (p *Player) Feedback() {
	p.play(p.feedbackFreq, 30*time.Millisecond)
}

func (p *Player) play(freq int, d time.Duration) {
	tone, err := generators.SinTone(p.sr, freq)
	if nil != err {
		log.Println("unable to generate tone", err)
		return
	}
	speaker.Play(beep.Take(p.sr.N(d), tone))
}
