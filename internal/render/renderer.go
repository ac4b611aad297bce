package render

import (
	"time"
)

type Renderer interface {
	Init() error
	Deinit() error
	AddDecoration(row, col uint16, content string, frames int)
	RenderLoop(framePeriod time.Duration, frame func() bool)
	Fill(row, column uint16, message string)
	Clear()
}
