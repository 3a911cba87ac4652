// This file is part of axisim.
//
// axisim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// axisim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with axisim.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/axisim/curated"
	"github.com/jetsetilly/axisim/govern"
	"github.com/jetsetilly/axisim/hardware"
	"github.com/jetsetilly/axisim/hardware/aggregator"
	"github.com/jetsetilly/axisim/hardware/pattern"
	"github.com/jetsetilly/axisim/logger"
	"github.com/jetsetilly/axisim/modalflag"
	"github.com/jetsetilly/axisim/monitor"
	"github.com/jetsetilly/axisim/paths"
	"github.com/jetsetilly/axisim/performance"
	"github.com/jetsetilly/axisim/regression"
	"github.com/jetsetilly/axisim/screenshot"
	"github.com/jetsetilly/axisim/setup"
	"github.com/jetsetilly/axisim/statsview"
	"github.com/jetsetilly/axisim/testbench"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// interrupt signals are to be forwarded to the running simulation rather
	// than ending the program.
	//
	// takes no arguments.
	reqForwardIntSig stateReq = "FORWARDINTSIG"
)

type stateRequest struct {
	req  stateReq
	args any
}

// communication between the main() function and the launch() function.
type mainSync struct {
	state chan stateRequest

	// interrupt signals are sent on this channel after a reqForwardIntSig
	// request
	interrupt chan os.Signal
}

func main() {
	sync := &mainSync{
		state:     make(chan stateRequest),
		interrupt: make(chan os.Signal, 1),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	exitVal := 0

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	forward := false

	go launch(sync)

	done := false
	for !done {
		select {
		case sig := <-intChan:
			if forward {
				select {
				case sync.interrupt <- sig:
				default:
				}
			} else {
				fmt.Println("\r")
				done = true
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqForwardIntSig:
				forward = true
			}
		}
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("TPG", "AGGREGATE", "REGRESS", "PERFORMANCE")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server on %s (statsview builds only)", statsview.Address))

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(md.Output)
		} else {
			fmt.Println("* statsview not available in this build")
		}
	}

	switch md.Mode() {
	case "TPG":
		err = tpg(md, sync)

	case "AGGREGATE":
		err = aggregate(md, sync)

	case "REGRESS":
		err = regress(md)

	case "PERFORMANCE":
		err = perform(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// continueCheck returns a function suitable for the RunForFrameCount()
// function. The run ends when an interrupt signal is received.
func continueCheck(sync *mainSync) func(int) (govern.State, error) {
	sync.state <- stateRequest{req: reqForwardIntSig}

	return func(_ int) (govern.State, error) {
		select {
		case <-sync.interrupt:
			return govern.Ending, nil
		default:
		}
		return govern.Running, nil
	}
}

// tpgFlags adds the flags that configure the TPG bench. The returned function
// should be called after Parse().
func tpgFlags(md *modalflag.Modes) func() (setup.TPG, error) {
	def := setup.DefaultTPG

	width := md.AddInt("width", def.Width, "width of frame in pixels")
	height := md.AddInt("height", def.Height, "height of frame in rows")
	dataWidth := md.AddInt("datawidth", def.DataWidth, "width of pixel data in bits")
	pat := md.AddChoice("pattern", def.Pattern.String(), pattern.Kinds(), "test pattern")
	bars := md.AddInt("bars", def.Bars, "number of color bars")
	policy := md.AddChoice("barpolicy", def.BarPolicy.String(),
		[]string{pattern.Proportional.String(), pattern.RemainderLast.String()}, "color bar remainder policy")
	bp := md.AddChoice("backpressure", def.Mode.String(), testbench.Backpressures(), "backpressure applied by the sink")
	prob := md.AddFloat64("probability", def.Probability, "probability of random backpressure")
	seed := md.AddInt64("seed", 0, "random seed (0 for time based seed)")

	return func() (setup.TPG, error) {
		cfg := def
		cfg.Width = *width
		cfg.Height = *height
		cfg.DataWidth = *dataWidth
		cfg.Bars = *bars
		cfg.Probability = *prob
		cfg.Seed = *seed

		var err error
		if cfg.Pattern, err = pattern.KindFromString(*pat); err != nil {
			return cfg, err
		}
		if cfg.BarPolicy, err = pattern.BarPolicyFromString(*policy); err != nil {
			return cfg, err
		}
		if cfg.Mode, err = testbench.BackpressureFromString(*bp); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
}

// aggregateFlags adds the flags that configure the aggregator bench. The
// returned function should be called after Parse().
func aggregateFlags(md *modalflag.Modes) func() (setup.Aggregate, error) {
	def := setup.DefaultAggregate

	width := md.AddInt("width", def.Width, "width of output frame in pixels")
	height := md.AddInt("height", def.Height, "height of output frame in rows")
	dataWidth := md.AddInt("datawidth", def.DataWidth, "width of pixel data in bits")
	tiling := md.AddChoice("tiling", def.Tiling.String(),
		[]string{aggregator.RowMajor.String(), aggregator.ColumnMajor.String()}, "placement of inputs in the output frame")
	images := md.AddChoice("images", def.Images.String(),
		[]string{setup.OffsetCounters.String(), setup.Mixed.String()}, "images sent by the sources")
	skew := md.AddInt("skew", def.Skew, "delay of the first source in cycles")
	resync := md.AddBool("resync", def.Resync, "drain inputs that are not at the start of a frame")
	bp := md.AddChoice("backpressure", def.Mode.String(), testbench.Backpressures(), "backpressure applied by the sink")
	prob := md.AddFloat64("probability", def.Probability, "probability of random backpressure")
	seed := md.AddInt64("seed", 0, "random seed (0 for time based seed)")

	return func() (setup.Aggregate, error) {
		cfg := def
		cfg.Width = *width
		cfg.Height = *height
		cfg.DataWidth = *dataWidth
		cfg.Skew = *skew
		cfg.Resync = *resync
		cfg.Probability = *prob
		cfg.Seed = *seed

		var err error
		if cfg.Tiling, err = aggregator.TilingFromString(*tiling); err != nil {
			return cfg, err
		}
		if cfg.Images, err = setup.ImagesFromString(*images); err != nil {
			return cfg, err
		}
		if cfg.Mode, err = testbench.BackpressureFromString(*bp); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
}

// outputFlags are the flags common to the TPG and AGGREGATE modes
type outputFlags struct {
	frames *int
	png    *string
	scale  *int
	log    *bool
	memviz *string
}

func addOutputFlags(md *modalflag.Modes, scale int) outputFlags {
	return outputFlags{
		frames: md.AddInt("frames", 1, "number of frames to run"),
		png:    md.AddString("png", "", "save last frame as PNG (use 'auto' for a generated filename)"),
		scale:  md.AddInt("scale", scale, "scaling of PNG image"),
		log:    md.AddBool("log", false, "echo log to stdout"),
		memviz: md.AddString("memviz", "", "write graphviz description of the hardware to file"),
	}
}

// permission sets up logging according to the -log flag.
func (of outputFlags) permission() logger.Permission {
	if *of.log {
		logger.SetEcho(logger.EchoWriter(os.Stdout))
		return logger.Allow
	}
	return logger.Deny
}

// finish writes the PNG and memviz files if requested.
func (of outputFlags) finish(output io.Writer, name string, f monitor.Frame, hw any) error {
	if *of.png != "" {
		fn := *of.png
		if fn == "auto" {
			fn = paths.UniqueFilename(name, "") + ".png"
		}
		if err := screenshot.Save(fn, f, *of.scale); err != nil {
			return err
		}
		fmt.Fprintf(output, "frame saved to %s\n", fn)
	}

	if *of.memviz != "" {
		fh, err := os.Create(*of.memviz)
		if err != nil {
			return curated.Errorf("memviz: %v", err)
		}
		defer fh.Close()
		memviz.Map(fh, hw)
		fmt.Fprintf(output, "memviz written to %s\n", *of.memviz)
	}

	return nil
}

func report(output io.Writer, b hardware.Bench, out *hardware.Output) (monitor.Frame, error) {
	f, ok := out.Capture.Last()
	if !ok {
		return f, curated.Errorf("no complete frame after %d cycles", b.Cycle())
	}

	fmt.Fprintf(output, "cycles: %d\n", b.Cycle())
	fmt.Fprintf(output, "frames: %d\n", b.Frames())
	if short, long := out.Monitor.Irregular(); short+long > 0 {
		fmt.Fprintf(output, "irregular rows: %d short, %d long\n", short, long)
	}
	if n := out.Monitor.Unsynced(); n > 0 {
		fmt.Fprintf(output, "ignored before first frame: %d\n", n)
	}
	fmt.Fprint(output, monitor.Analyse(f))
	fmt.Fprintf(output, "digest: %s\n", out.Digest.Hash())

	return f, nil
}

func tpg(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	cfgFn := tpgFlags(md)
	of := addOutputFlags(md, 2)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	cfg, err := cfgFn()
	if err != nil {
		return err
	}

	b, err := setup.NewTPGBench(cfg, of.permission())
	if err != nil {
		return err
	}

	if err := hardware.RunForFrameCount(b, *of.frames, continueCheck(sync)); err != nil {
		return err
	}

	f, err := report(md.Output, b, &b.Output)
	if err != nil {
		return err
	}

	return of.finish(md.Output, fmt.Sprintf("tpg_%s", cfg.Pattern), f, b.TPG)
}

func aggregate(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	cfgFn := aggregateFlags(md)
	of := addOutputFlags(md, 1)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	cfg, err := cfgFn()
	if err != nil {
		return err
	}

	b, err := setup.NewAggregatorBench(cfg, of.permission())
	if err != nil {
		return err
	}

	if err := hardware.RunForFrameCount(b, *of.frames, continueCheck(sync)); err != nil {
		return err
	}

	f, err := report(md.Output, b, &b.Output)
	if err != nil {
		return err
	}

	for _, f := range b.Capture.Frames() {
		if err := b.Verify(f); err != nil {
			return err
		}
	}
	fmt.Fprintf(md.Output, "composite: ok (%d frames verified)\n", len(b.Capture.Frames()))
	fmt.Fprintf(md.Output, "input marker mismatches: %d\n", b.Aggregator.Mismatches())
	if n := b.Aggregator.Abandoned(); n > 0 {
		fmt.Fprintf(md.Output, "abandoned frames: %d\n", n)
	}
	if cfg.Resync {
		for i := range aggregator.NumInputs {
			fmt.Fprintf(md.Output, "input %d: %d dropped\n", i, b.Aggregator.Dropped(i))
		}
	}

	return of.finish(md.Output, "aggregate", f, b.Aggregator)
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	bench := md.AddChoice("bench", "tpg", []string{"tpg", "aggregate"}, "bench to measure")
	duration := md.AddString("duration", "5s", "run duration (after a two second leadtime)")
	profile := md.AddString("profile", "none", "create profiling data: cpu, mem, trace (or a comma separated combination)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prof, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	var b hardware.Bench

	switch *bench {
	case "tpg":
		tb, err := setup.NewTPGBench(setup.DefaultTPG, logger.Deny)
		if err != nil {
			return err
		}
		b = tb
	case "aggregate":
		ab, err := setup.NewAggregatorBench(setup.DefaultAggregate, logger.Deny)
		if err != nil {
			return err
		}
		b = ab
	}

	_, err = performance.Check(md.Output, b, prof, *duration)
	return err
}

type yesReader struct{}

func (*yesReader) Read(p []byte) (n int, err error) {
	p[0] = 'y'
	return 1, nil
}

func regress(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "DELETE", "ADD")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()
		verbose := md.AddBool("verbose", false, "output more detail (eg. error messages)")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		res, err := regression.RegressRun(md.Output, *verbose, md.RemainingArgs())
		if err != nil {
			return err
		}
		if res.Fail > 0 || res.Error > 0 {
			return fmt.Errorf("%s", res)
		}

	case "LIST":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		if len(md.RemainingArgs()) > 0 {
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}

		return regression.RegressList(md.Output)

	case "DELETE":
		md.NewMode()
		answerYes := md.AddBool("yes", false, "answer yes to confirmation")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return fmt.Errorf("database key required for %s mode", md)
		case 1:
			var confirmation io.Reader
			if *answerYes {
				confirmation = &yesReader{}
			} else {
				confirmation = os.Stdin
			}
			return regression.RegressDelete(md.Output, confirmation, md.GetArg(0))
		default:
			return fmt.Errorf("only one entry can be deleted at at time")
		}

	case "ADD":
		return regressAdd(md)
	}

	return nil
}

func regressAdd(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("TPG", "AGGREGATE")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	md.NewMode()
	frames := md.AddInt("frames", 2, "number of frames to run")
	md.AdditionalHelp("The seed must be non-zero if the entry uses random images or random backpressure.")

	switch md.Mode() {
	case "TPG":
		cfgFn := tpgFlags(md)
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		cfg, err := cfgFn()
		if err != nil {
			return err
		}
		return regression.RegressAdd(md.Output, regression.NewTPGRegression(cfg, *frames))

	case "AGGREGATE":
		cfgFn := aggregateFlags(md)
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		cfg, err := cfgFn()
		if err != nil {
			return err
		}
		return regression.RegressAdd(md.Output, regression.NewAggregateRegression(cfg, *frames))
	}

	return nil
}
