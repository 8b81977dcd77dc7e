// miwumon watches the wake-report stream of a wake-up firmware and
// prints every wake with its source line, either from a serial console
// or from a built-in simulated device.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"gonpcx/host/board"
	"gonpcx/host/monitor"
	"gonpcx/host/serial"
	"gonpcx/miwu"
	"gonpcx/protocol"
	"gonpcx/sim"
)

var (
	device    = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud      = flag.Int("baud", 115200, "Baud rate")
	boardPath = flag.String("board", "", "Board description YAML for signal names")
	simMode   = flag.Bool("sim", false, "Watch a simulated device instead of hardware")
	count     = flag.Int("count", 0, "Exit after this many wake events (0 = run until interrupted)")
	verbose   = flag.Bool("verbose", false, "Log link diagnostics")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var brd *board.Board
	if *boardPath != "" {
		b, err := board.Load(*boardPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		brd = b
		logger.Info("board loaded", slog.String("name", b.Name), slog.Int("signals", len(b.Signals())))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		link      io.ReadCloser
		closeLink func()
	)
	if *simMode {
		pr, pw := io.Pipe()
		go runSimDevice(pw, *count, logger)
		link = pr
		closeLink = func() { pr.Close() }
	} else {
		cfg := serial.DefaultConfig(*device)
		cfg.Baud = *baud
		port, err := serial.Open(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		link = port
		closeLink = func() { port.Close() }
	}
	// Unblock the pending read when the context ends.
	go func() {
		<-ctx.Done()
		closeLink()
	}()

	seen := 0
	mon := monitor.New(monitor.Config{
		OnHello: func(h protocol.Hello) {
			fmt.Printf("connected: %s %s\n", h.Chip, h.Version)
		},
		OnWakeEvent: func(ev protocol.WakeEvent) {
			fmt.Printf("wake %4d  %-16s level=%-5v%s tick=%d\n",
				ev.Seq, lineName(brd, ev.Line), ev.Level, signalState(brd, ev.Line, ev.Level), ev.Tick)
			seen++
			if *count > 0 && seen >= *count {
				stop()
			}
		},
		OnGroupStatus: func(gs protocol.GroupStatus) {
			logger.Debug("group status",
				slog.Int("controller", int(gs.Controller)),
				slog.Int("group", int(gs.Group)),
				slog.String("pending", fmt.Sprintf("%#02x", gs.Pending)),
				slog.String("enabled", fmt.Sprintf("%#02x", gs.Enabled)),
			)
		},
	})

	err := mon.Run(ctx, link)
	if err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stats := mon.Stats()
	fmt.Printf("frames %d, wakes %d, dropped %d, resyncs %d, bad %d\n",
		stats.Frames, stats.WakeCount, stats.Dropped, stats.Resyncs, stats.BadFrames)
}

// lineName renders a reported line index through the board bindings.
func lineName(brd *board.Board, raw uint8) string {
	if int(raw) >= miwu.LineCount {
		return fmt.Sprintf("line-%d", raw)
	}
	line := miwu.Line(raw)
	if brd != nil {
		return brd.SignalName(line)
	}
	return line.String()
}

// signalState renders a level against the signal's active polarity,
// when the board defines one.
func signalState(brd *board.Board, raw uint8, level bool) string {
	if brd == nil || int(raw) >= miwu.LineCount {
		return ""
	}
	sig, ok := brd.SignalFor(miwu.Line(raw))
	if !ok {
		return ""
	}
	if level != sig.ActiveLow {
		return " state=asserted"
	}
	return " state=idle"
}

// runSimDevice plays the firmware side on the write end of a pipe: a
// simulated wake-up array with one edge-detecting line that a pretend
// button toggles. Every dispatched wake goes out as a wake event
// frame, with a group status snapshot after each one.
func runSimDevice(w io.WriteCloser, count int, logger *slog.Logger) {
	defer w.Close()

	a := sim.New()
	miwu.SetRegisterBanks(a.Banks())
	a.OnInterrupt(miwu.ServiceGroup)

	enc := protocol.NewEncoder(w)
	start := time.Now()
	tick := func() uint32 { return uint32(time.Since(start).Microseconds()) }

	if err := enc.SendHello(protocol.Hello{Version: protocol.Version, Chip: "sim"}); err != nil {
		logger.Debug("sim device stopped", slog.String("err", err.Error()))
		return
	}

	// The hook runs in dispatch context and must not block, so it only
	// stages the report; the stimulus loop below writes the frames.
	staged := make(chan protocol.WakeEvent, 16)
	miwu.SetEventFunc(func(ev miwu.Event) {
		select {
		case staged <- protocol.WakeEvent{
			Seq:   ev.Seq,
			Line:  uint8(ev.Line),
			Level: a.Level(ev.Line),
			Tick:  tick(),
		}:
		default:
		}
	})
	defer miwu.SetEventFunc(nil)

	button := miwu.New(miwu.MIWU1_73)
	defer button.Close()
	co := miwu.MIWU1_73.Coord()

	pressed := false
	for i := 0; count == 0 || i < count; i++ {
		if pressed {
			button.Enable(miwu.FallingEdge)
		} else {
			button.Enable(miwu.RisingEdge)
		}
		pressed = !pressed
		a.SetLevel(miwu.MIWU1_73, pressed)

	drain:
		for {
			select {
			case ev := <-staged:
				if err := enc.SendWakeEvent(ev); err != nil {
					logger.Debug("sim device stopped", slog.String("err", err.Error()))
					return
				}
			default:
				break drain
			}
		}

		gs := a.Group(co.Controller, co.Group)
		err := enc.SendGroupStatus(protocol.GroupStatus{
			Controller: co.Controller,
			Group:      co.Group,
			Pending:    gs.Pending,
			Enabled:    gs.Enable,
			Tick:       tick(),
		})
		if err != nil {
			logger.Debug("sim device stopped", slog.String("err", err.Error()))
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}
