package theme

import (
	"fmt"
	"time"
)

type DefaultTheme struct {
}

const (
	targetSym = "⬤"
	barSym    = "━━━━━"
	hitSym    = "\033[1;32m◎\033[0m"
	missSym   = "\033[1;31m⨯\033[0m"
)

func (t *DefaultTheme) RenderTarget(label string) string {
	if label != "" {
		return fmt.Sprintf("\033[38;2;0;118;236m%v\033[0m \033[2m%v\033[0m", targetSym, label)
	}
	return fmt.Sprintf("\033[38;2;0;118;236m%v\033[0m", targetSym)
}

func (t *DefaultTheme) RenderHitBar() string {
	return fmt.Sprintf("\033[2m%v\033[0m", barSym)
}

func (t *DefaultTheme) RenderCountdown(remaining time.Duration) string {
	return fmt.Sprintf("\033[1;33m%4.1f\033[0m", remaining.Seconds())
}

func (t *DefaultTheme) RenderHitFlash() string {
	return hitSym
}

func (t *DefaultTheme) RenderMissFlash() string {
	return missSym
}
