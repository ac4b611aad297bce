package main

import (
	"log"

	"github.com/eiannone/keyboard"

	"git.lost.host/meutraa/tapt/internal/clock"
	"git.lost.host/meutraa/tapt/internal/config"
	"git.lost.host/meutraa/tapt/internal/pattern"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func run() error {
	config.ParseFlags("0.1.0")

	cfg, err := config.Load()
	if nil != err {
		return err
	}

	clk, err := clock.New()
	if nil != err {
		return err
	}

	var psr pattern.Parser = &pattern.DefaultParser{}
	pat, err := psr.Parse(*config.PatternFile)
	if nil != err {
		return err
	}

	opts := config.Options(cfg, pat)
	config.SetJudgements(opts.Tolerance)

	keyChannel, err := keyboard.GetKeys(128)
	if nil != err {
		return err
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Println("unable to close keyboard", err)
		}
	}()

	p := &Program{}
	if err := p.Init(clk, cfg, pat, opts); nil != err {
		return err
	}

	p.Play(keyChannel)
	p.Deinit()

	return p.Finish()
}
