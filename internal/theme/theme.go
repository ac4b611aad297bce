package theme

import (
	"time"
)

type Theme interface {
	RenderTarget(label string) string
	RenderHitBar() string
	RenderCountdown(remaining time.Duration) string
	RenderHitFlash() string
	RenderMissFlash() string
}
