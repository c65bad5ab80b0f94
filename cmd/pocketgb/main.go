package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/hollow-byte/pocketgb/gb"
	"github.com/hollow-byte/pocketgb/gb/backend"
	"github.com/hollow-byte/pocketgb/gb/input"
	"github.com/hollow-byte/pocketgb/gb/input/action"
	"github.com/hollow-byte/pocketgb/gb/input/event"
	"github.com/hollow-byte/pocketgb/gb/timing"
)

func main() {
	app := cli.NewApp()
	app.Name = "pocketgb"
	app.Usage = "pocketgb [options] <ROM file>"
	app.Description = "An 8-bit handheld console emulator"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "headless",
			Usage: "run without a window, for scripted/batch runs",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "number of frames to run in headless mode (required with --headless)",
		},
		cli.StringFlag{
			Name:  "boot",
			Usage: "path to a boot ROM image to run before the cartridge entry point",
		},
		cli.BoolFlag{
			Name:  "no-boot",
			Usage: "skip the boot ROM and jump straight to the cartridge entry point",
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "pixel scale for the terminal/SDL backend",
			Value: 1,
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "raise log verbosity to debug",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("pocketgb exited with an error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	setUpLogging(c.Bool("debug"))

	romPath := c.Args().Get(0)
	if romPath == "" {
		cli.ShowAppHelp(c)
		return errors.New("no ROM path provided")
	}

	console, err := gb.NewWithROM(romPath)
	if err != nil {
		return err
	}

	if err := loadBootROM(console, c.String("boot"), c.Bool("no-boot")); err != nil {
		return err
	}

	if c.Bool("headless") {
		return runHeadless(console, c.Int("frames"))
	}
	return runInteractive(console, c.Int("scale"))
}

func setUpLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// loadBootROM wires the --boot/--no-boot flags into the console's boot
// sequence. Nintendo's boot ROM is copyrighted and isn't shipped with this
// tool, so with neither flag given the console falls back to the same
// post-boot reset --no-boot requests rather than embedding a placeholder.
func loadBootROM(console *gb.Console, bootPath string, noBoot bool) error {
	if bootPath != "" {
		image, err := os.ReadFile(bootPath)
		if err != nil {
			return fmt.Errorf("reading boot ROM: %w", err)
		}
		if err := console.LoadBootROM(image); err != nil {
			return fmt.Errorf("loading boot ROM: %w", err)
		}
		return nil
	}

	if !noBoot {
		slog.Warn("no --boot image given, skipping boot sequence (use --boot <path> to run one)")
	}
	console.ResetSkipBoot()
	return nil
}

func runHeadless(console *gb.Console, frames int) error {
	if frames <= 0 {
		return errors.New("headless mode requires --frames with a positive value")
	}

	b := backend.NewHeadless(frames)
	if err := b.Init(backend.Config{Title: "pocketgb"}); err != nil {
		return err
	}
	defer b.Cleanup()

	for i := 0; i < frames; i++ {
		console.RunUntilFrame()
		if _, err := b.Update(console.GetCurrentFrame()); err != nil {
			return err
		}
	}

	slog.Info("headless run completed", "frames", frames, "instructions", console.InstructionCount())
	return console.FlushSave()
}

func runInteractive(console *gb.Console, scale int) error {
	b := newVideoBackend()

	if err := b.Init(backend.Config{Title: "pocketgb", Scale: scale}); err != nil {
		return err
	}
	defer b.Cleanup()

	mgr := input.NewManager(console.MMU())
	limiter := timing.NewAdaptiveLimiter()

	running := true
	mgr.On(action.EmulatorQuit, event.Press, func() { running = false })
	mgr.On(action.EmulatorPauseToggle, event.Press, func() {
		if console.GetDebuggerState() == gb.DebuggerPaused {
			console.Resume()
			limiter.Reset()
		} else {
			console.Pause()
		}
	})

	for running {
		console.RunUntilFrame()
		limiter.WaitForNextFrame()

		events, err := b.Update(console.GetCurrentFrame())
		if err != nil {
			return err
		}
		for _, ev := range events {
			mgr.Trigger(ev.Action, ev.Type)
		}
	}

	slog.Info("interactive run completed", "frames", console.FrameCount())
	return console.FlushSave()
}
