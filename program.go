package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/eiannone/keyboard"
	"golang.org/x/term"

	"git.lost.host/meutraa/tapt/internal/audio"
	"git.lost.host/meutraa/tapt/internal/clock"
	"git.lost.host/meutraa/tapt/internal/config"
	"git.lost.host/meutraa/tapt/internal/input"
	"git.lost.host/meutraa/tapt/internal/pattern"
	"git.lost.host/meutraa/tapt/internal/render"
	"git.lost.host/meutraa/tapt/internal/score"
	"git.lost.host/meutraa/tapt/internal/theme"
	"git.lost.host/meutraa/tapt/internal/trainer"
)

// One terminal row per this much target distance in the lane.
const rowsPerSecond = 10.0

const clearWidth = 24

type Program struct {
	Scorer   *score.DefaultScorer
	Theme    *theme.DefaultTheme
	Renderer *render.DefaultRenderer

	clk  clock.Clock
	cfg  *config.Config
	pat  *pattern.Pattern
	opts trainer.Options
	run  *trainer.Run

	player *audio.Player
	midi   *input.MIDI

	rows, cols       int
	hitRow, laneCol  int
	sideCol          int
	prevRow          []int // last drawn lane row per target, -1 = none

	// Press log. Appended from whichever goroutine submitted the press,
	// consumed by the frame loop.
	mu      sync.Mutex
	presses []trainer.Press

	seen      int // presses already consumed by the frame loop
	counts    []int
	lastPress *trainer.Press
	session   string
	saved     bool
	quit      bool

	bestError time.Duration
	sessions  int
}

func (p *Program) Init(clk clock.Clock, cfg *config.Config, pat *pattern.Pattern, opts trainer.Options) error {
	p.Scorer = &score.DefaultScorer{}
	p.Theme = &theme.DefaultTheme{}
	p.Renderer = &render.DefaultRenderer{}

	p.clk = clk
	p.cfg = cfg
	p.pat = pat
	p.opts = opts
	p.counts = make([]int, len(config.Judgements))
	p.prevRow = make([]int, len(pat.Targets))
	for i := range p.prevRow {
		p.prevRow[i] = -1
	}

	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}
	p.rows, p.cols = rows, cols
	p.hitRow = rows - 8
	p.laneCol = cols >> 1
	p.sideCol = p.laneCol - 36
	if p.sideCol < 2 {
		p.sideCol = 2
	}

	dbPath := p.cfg.Database
	if *config.Database != "" {
		dbPath = *config.Database
	}
	if err := p.Scorer.Init(dbPath); nil != err {
		return fmt.Errorf("unable to open score database: %w", err)
	}
	p.loadHistory()

	if !*config.NoAudio {
		cueFreq := p.cfg.CueFreq
		if *config.CueFreq > 0 {
			cueFreq = *config.CueFreq
		}
		player, err := audio.NewPlayer(cueFreq, p.cfg.FeedbackFreq)
		if nil != err {
			return fmt.Errorf("unable to initialize audio: %w", err)
		}
		p.player = player
	}

	run, err := trainer.NewRun(clk, pat.Targets, opts, trainer.Callbacks{
		CueFired:    p.onCue,
		PressResult: p.onPress,
	})
	if nil != err {
		return err
	}
	p.run = run

	if *config.Midi {
		midi, err := input.OpenMIDI(func() {
			p.run.SubmitPress(p.clk.Now())
		})
		if nil != err {
			return fmt.Errorf("unable to open midi input: %w", err)
		}
		p.midi = midi
	}

	return p.Renderer.Init()
}

func (p *Program) Deinit() {
	if p.midi != nil {
		p.midi.Close()
	}
	if p.player != nil {
		p.player.Close()
	}
	if err := p.Renderer.Deinit(); nil != err {
		log.Println("unable to restore terminal", err)
	}
}

// loadHistory replays stored sessions for this pattern to show a best
// total error next to the live one.
func (p *Program) loadHistory() {
	histories, err := p.Scorer.Load(p.pat)
	if nil != err {
		log.Println("unable to load score history", err)
		return
	}
	p.sessions = len(histories)
	for i, h := range histories {
		opts := trainer.Options{Tolerance: h.Tolerance}
		presses, err := score.Replay(p.pat.Targets, opts, h.Times)
		if nil != err {
			continue
		}
		st := score.Calc(presses)
		if i == 0 || st.TotalError < p.bestError {
			p.bestError = st.TotalError
		}
	}
}

// Callbacks below run with the run lock held, possibly on the midi
// goroutine. They only touch the speaker and the locked press log.

func (p *Program) onCue(targetID int) {
	if p.player != nil {
		p.player.Cue()
	}
}

func (p *Program) onPress(pr trainer.Press) {
	if p.player != nil {
		p.player.Feedback()
	}
	p.mu.Lock()
	p.presses = append(p.presses, pr)
	p.mu.Unlock()
}

func (p *Program) pressLog() []trainer.Press {
	p.mu.Lock()
	defer p.mu.Unlock()
	presses := make([]trainer.Press, len(p.presses))
	copy(presses, p.presses)
	return presses
}

func (p *Program) restart() {
	p.run.Reset()
	p.mu.Lock()
	p.presses = p.presses[:0]
	p.mu.Unlock()
	p.seen = 0
	p.lastPress = nil
	p.session = ""
	p.saved = false
	for i := range p.counts {
		p.counts[i] = 0
	}
	for i := range p.prevRow {
		p.prevRow[i] = -1
	}
	p.Renderer.Clear()
	p.run.Start()
}

// Play drives the whole session: drain key events, tick the run, consume
// new press results, draw. Returns when the user quits.
func (p *Program) Play(keyChannel <-chan keyboard.KeyEvent) {
	p.run.Start()

	p.Renderer.RenderLoop(*config.FramePeriod, func() bool {
		// Key inputs that occured since the last frame
		for i := 0; i < len(keyChannel); i++ {
			key := <-keyChannel
			switch {
			case key.Key == keyboard.KeyEsc || key.Rune == 'q':
				p.quit = true
			case key.Rune == 'r':
				p.restart()
			default:
				if _, ok := p.run.SubmitPress(p.clk.Now()); !ok &&
					p.run.State() == trainer.StatePreRoll {
					p.Renderer.AddDecoration(uint16(p.hitRow-1), uint16(p.laneCol+4), "\033[1;33mearly\033[0m", 30)
				}
			}
		}
		if p.quit {
			return false
		}

		p.run.Tick(p.clk.Now())
		p.consumePresses()

		snap := p.run.Snapshot()
		if snap.State == trainer.StateStopped {
			p.saveOnce()
		}
		p.draw(snap)
		return true
	})
}

// consumePresses folds press results the callbacks logged since last
// frame into the display state, on the frame goroutine.
func (p *Program) consumePresses() {
	presses := p.pressLog()
	for _, pr := range presses[p.seen:] {
		pr := pr
		p.lastPress = &pr
		if pr.Matched {
			d := pr.Delta
			if d < 0 {
				d = -d
			}
			p.counts[config.Judge(d)]++
			p.Renderer.AddDecoration(uint16(p.hitRow), uint16(p.laneCol+4), p.Theme.RenderHitFlash(), 24)
		} else {
			p.counts[len(p.counts)-1]++
			p.Renderer.AddDecoration(uint16(p.hitRow), uint16(p.laneCol+4), p.Theme.RenderMissFlash(), 24)
		}
	}
	p.seen = len(presses)
}

func (p *Program) saveOnce() {
	if p.saved {
		return
	}
	p.saved = true
	presses := p.pressLog()
	if len(presses) == 0 {
		return
	}
	session, err := p.Scorer.Save(p.pat, p.opts, presses)
	if nil != err {
		log.Println("unable to save session", err)
		return
	}
	p.session = session
}

// Finish saves an interrupted run, writes the CSV export if asked, and
// closes the score database. Called after the terminal is restored so
// errors are visible.
func (p *Program) Finish() error {
	p.saveOnce()
	p.Scorer.Deinit()
	if *config.Export == "" {
		return nil
	}
	presses := p.pressLog()
	if len(presses) == 0 {
		return nil
	}
	f, err := os.Create(*config.Export)
	if nil != err {
		return fmt.Errorf("unable to create export file: %w", err)
	}
	defer f.Close()
	if err := score.ExportCSV(f, p.session, presses); nil != err {
		return fmt.Errorf("unable to export csv: %w", err)
	}
	return nil
}

func (p *Program) draw(snap trainer.Snapshot) {
	r := p.Renderer

	// Hit bar
	r.Fill(uint16(p.hitRow), uint16(p.laneCol-2), p.Theme.RenderHitBar())

	// Lane
	for i, tgt := range p.run.Targets() {
		if row := p.prevRow[i]; row >= 1 {
			r.Fill(uint16(row), uint16(p.laneCol), strings.Repeat(" ", clearWidth))
			p.prevRow[i] = -1
		}
		if snap.Matched[i] {
			continue
		}
		until := tgt.Time - snap.Elapsed
		row := p.hitRow - int(math.Round(until.Seconds()*rowsPerSecond))
		if row < 1 || row > p.hitRow {
			continue
		}
		r.Fill(uint16(row), uint16(p.laneCol), p.Theme.RenderTarget(p.pat.Labels[tgt.ID]))
		p.prevRow[i] = row
	}

	// Pre-roll countdown
	cen := p.rows >> 1
	if snap.State == trainer.StatePreRoll {
		r.Fill(uint16(cen), uint16(p.laneCol-2), p.Theme.RenderCountdown(-snap.Elapsed))
	} else {
		r.Fill(uint16(cen), uint16(p.laneCol-2), "    ")
	}

	p.drawSidebar(snap)

	if snap.State == trainer.StateStopped {
		msg := "run complete  -  r restart, q quit"
		if p.session != "" {
			msg = fmt.Sprintf("run complete (%v)  -  r restart, q quit", p.session[:8])
		}
		r.Fill(uint16(cen+2), uint16(p.laneCol-len(msg)/2), msg)
	}
}

func (p *Program) drawSidebar(snap trainer.Snapshot) {
	r := p.Renderer
	side := uint16(p.sideCol)
	st := score.Calc(p.pressLog())

	r.Fill(2, side, fmt.Sprintf("    Pattern:  %v", p.pat.Name))
	r.Fill(3, side, fmt.Sprintf("  Tolerance:  ±%v", p.opts.Tolerance))
	r.Fill(4, side, fmt.Sprintf("      State:  %-8v", snap.State))
	r.Fill(5, side, fmt.Sprintf("    Elapsed:  %6.1fs", snap.Elapsed.Seconds()))

	r.Fill(7, side, fmt.Sprintf("    Targets:  %6v", len(p.pat.Targets)))
	r.Fill(8, side, fmt.Sprintf("       Hits:  %6v", st.Hits))
	r.Fill(9, side, fmt.Sprintf("     Misses:  %6v", st.Misses))
	r.Fill(10, side, fmt.Sprintf("   Error dt:  %6.0f ms", float64(st.TotalError)/float64(time.Millisecond)))
	r.Fill(11, side, fmt.Sprintf("      Stdev:  %6.2f ms", float64(st.Stdev)/float64(time.Millisecond)))
	r.Fill(12, side, fmt.Sprintf("       Mean:  %6.2f ms", float64(st.Mean)/float64(time.Millisecond)))
	if p.sessions > 0 {
		r.Fill(13, side, fmt.Sprintf("       Best:  %6.0f ms over %v runs", float64(p.bestError)/float64(time.Millisecond), p.sessions))
	}

	if p.lastPress != nil {
		pr := p.lastPress
		if pr.TargetID == trainer.NoTarget {
			r.Fill(15, side, "       Last:  no target left      ")
		} else {
			r.Fill(15, side, fmt.Sprintf("       Last:  %+5.0f ms (target %v) ", float64(pr.Delta)/float64(time.Millisecond), pr.TargetID))
		}
	}

	for i, judgement := range config.Judgements {
		r.Fill(uint16(18+i), side, fmt.Sprintf("%v:  %6v", judgement.Name, p.counts[i]))
	}
}
