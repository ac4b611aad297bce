package score

import (
	"encoding/csv"
	"io"
	"strconv"

	"git.lost.host/meutraa/tapt/internal/trainer"
)

// ExportCSV writes one row per press. Presses that matched nothing and
// had no target left to report leave the target column empty.
func ExportCSV(w io.Writer, session string, presses []trainer.Press) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"session", "press_s", "target_id", "delta_ms", "matched"}); nil != err {
		return err
	}
	for _, p := range presses {
		target := ""
		if p.TargetID != trainer.NoTarget {
			target = strconv.Itoa(p.TargetID)
		}
		row := []string{
			session,
			strconv.FormatFloat(p.Time.Seconds(), 'f', 3, 64),
			target,
			strconv.FormatFloat(float64(p.Delta.Microseconds())/1000.0, 'f', 1, 64),
			strconv.FormatBool(p.Matched),
		}
		if err := cw.Write(row); nil != err {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
