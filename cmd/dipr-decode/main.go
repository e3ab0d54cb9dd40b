package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/jddeal/go-dipr/dipr"
	"github.com/jddeal/go-dipr/internal/logging"
)

var cli struct {
	Args struct {
		Filename string
	} `positional-args:"yes" required:"yes"`
	LogLevel   string `short:"l" long:"log-level" description:"logging level" choice:"error" choice:"warn" choice:"info" choice:"debug" choice:"trace" default:"info"`
	CPUProfile string `long:"cpuprofile" description:"write a CPU profile of the decode to this file"`
	Bins       bool   `long:"bins" description:"also print every non-zero bin"`
}

func main() {

	// parse the input args
	_, err := flags.Parse(&cli)
	if err != nil {
		os.Exit(1)
	}

	// set the logging level
	if err := logging.SetLevel(cli.LogLevel); err != nil {
		logrus.Fatal(err)
	}

	if err := decode(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func decode() error {
	// run `go tool pprof <file>` and `top10` in the pprof prompt
	if cli.CPUProfile != "" {
		f, err := os.Create(cli.CPUProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	logrus.Info(color.CyanString("decoding ", cli.Args.Filename))
	p, err := dipr.DecodeFile(cli.Args.Filename)
	if err != nil {
		return err
	}
	fmt.Println(p)

	if cli.Bins {
		for b := range p.Bins(true) {
			fmt.Printf("%3d %4d %7.3f %v\n", b.Radial, b.Index, b.Rate, b.Ring)
		}
	}
	return nil
}
