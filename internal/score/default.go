package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"git.lost.host/meutraa/tapt/internal/clock"
	"git.lost.host/meutraa/tapt/internal/pattern"
	"git.lost.host/meutraa/tapt/internal/trainer"
)

type DefaultScorer struct {
	db *sql.DB
}

func (s *DefaultScorer) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	initStatement := `
	create table if not exists sessions
	  (
		  id integer not null primary key,
		  session text,
		  sum text,
		  pattern text,
		  tolerance_ms integer,
		  created integer,
		  presses bytearray
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		return err
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func hashPattern(p *pattern.Pattern) string {
	sum := sha256.Sum256(p.Source)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func pressTimes(presses []trainer.Press) []time.Duration {
	times := make([]time.Duration, len(presses))
	for i, p := range presses {
		times[i] = p.Time
	}
	return times
}

func (s *DefaultScorer) Save(pat *pattern.Pattern, opts trainer.Options, presses []trainer.Press) (string, error) {
	data, err := json.Marshal(pressTimes(presses))
	if nil != err {
		return "", err
	}
	session := uuid.NewString()
	_, err = s.db.Exec(
		"insert into sessions(session, sum, pattern, tolerance_ms, created, presses) values(?, ?, ?, ?, ?, ?)",
		session, hashPattern(pat), pat.Name, opts.Tolerance.Milliseconds(), time.Now().Unix(), data,
	)
	if nil != err {
		return "", err
	}
	return session, nil
}

func (s *DefaultScorer) Load(pat *pattern.Pattern) ([]History, error) {
	histories := []History{}
	rows, err := s.db.Query(
		"select session, sum, tolerance_ms, presses from sessions where sum = ? order by created",
		hashPattern(pat),
	)
	if nil != err {
		if err == sql.ErrNoRows {
			return histories, nil
		}
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var session, sum string
		var toleranceMs int64
		var blob []byte
		if err := rows.Scan(&session, &sum, &toleranceMs, &blob); nil != err {
			return nil, err
		}
		var times []time.Duration
		if err := json.Unmarshal(blob, &times); nil != err {
			log.Println("unable to unmarshal press history", err)
			continue
		}
		histories = append(histories, History{
			Session:   session,
			Sum:       sum,
			Tolerance: time.Duration(toleranceMs) * time.Millisecond,
			Times:     times,
		})
	}
	return histories, rows.Err()
}

// Replay re-judges a stored press log against a fresh run of the pattern.
// Given the same targets, options and press times the verdicts come out
// identical to the live run they were recorded from.
func Replay(targets []trainer.Target, opts trainer.Options, times []time.Duration) ([]trainer.Press, error) {
	m := clock.NewManual()
	r, err := trainer.NewRun(m, targets, opts, trainer.Callbacks{})
	if nil != err {
		return nil, err
	}
	start := m.Now()
	r.Start()
	r.Tick(start.Add(opts.PreRoll))
	presses := make([]trainer.Press, 0, len(times))
	for _, t := range times {
		if p, ok := r.SubmitPress(start.Add(opts.PreRoll + t)); ok {
			presses = append(presses, p)
		}
	}
	return presses, nil
}
