package input

import (
	"fmt"
	"log"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// Virtual/system ports that are never auto-connected.
var excludedPatterns = []string{"Midi Through", "Through Port", "Dummy"}

// MIDI feeds presses from a hardware pad or keyboard. Every NoteOn on the
// first usable input invokes onPress from the driver's listener goroutine,
// so onPress must be safe to call off the main loop.
type MIDI struct {
	drv  *rtmididrv.Driver
	in   drivers.In
	stop func()
}

func OpenMIDI(onPress func()) (*MIDI, error) {
	drv, err := rtmididrv.New()
	if nil != err {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}

	ins, err := drv.Ins()
	if nil != err {
		drv.Close()
		return nil, fmt.Errorf("unable to list midi inputs: %w", err)
	}
	var in drivers.In
	for _, candidate := range ins {
		if excluded(candidate.String()) {
			continue
		}
		in = candidate
		break
	}
	if in == nil {
		drv.Close()
		return nil, fmt.Errorf("no usable midi input found")
	}

	if err := in.Open(); nil != err {
		drv.Close()
		return nil, fmt.Errorf("open %q: %w", in.String(), err)
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, _ int32) {
		var ch, key, vel uint8
		if msg.GetNoteStart(&ch, &key, &vel) {
			onPress()
		}
	}, midi.HandleError(func(listenErr error) {
		log.Println("midi listener error:", listenErr)
	}))
	if nil != err {
		in.Close()
		drv.Close()
		return nil, fmt.Errorf("listen %q: %w", in.String(), err)
	}

	log.Println("midi connected:", in.String())
	return &MIDI{drv: drv, in: in, stop: stop}, nil
}

func (m *MIDI) Close() {
	if m.stop != nil {
		m.stop()
	}
	if m.in != nil {
		_ = m.in.Close()
	}
	if m.drv != nil {
		m.drv.Close()
	}
}

func excluded(name string) bool {
	for _, pat := range excludedPatterns {
		if strings.Contains(strings.ToLower(name), strings.ToLower(pat)) {
			return true
		}
	}
	return false
}
