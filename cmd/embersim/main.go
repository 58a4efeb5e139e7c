// Command embersim runs the Ember engine headlessly against the software
// framebuffer, standing in for a bare-metal main loop. It loads ember.yaml
// and theme.toml from the project root, builds a small demo UI, feeds the
// engine a scripted gesture and writes the resulting frame to a PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/go-ember/ember/pkg/config"
	"github.com/go-ember/ember/pkg/display"
	"github.com/go-ember/ember/pkg/engine"
	"github.com/go-ember/ember/pkg/graphics"
	"github.com/go-ember/ember/pkg/theme"
	"github.com/go-ember/ember/pkg/timer"
	"github.com/go-ember/ember/pkg/widgets"
)

func main() {
	out := flag.String("o", "embersim.png", "output frame path")
	dir := flag.String("C", "", "project root (defaults to the enclosing module)")
	flag.Parse()

	if err := run(*dir, *out); err != nil {
		fmt.Fprintf(os.Stderr, "embersim: %v\n", err)
		os.Exit(1)
	}
}

func run(dir, out string) error {
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			return err
		}
		dir = root
	}

	cfg, err := config.Resolve(dir)
	if err != nil {
		return err
	}
	palette, err := theme.Load(filepath.Join(dir, "theme.toml"))
	if err != nil {
		return err
	}

	fb, err := display.NewFramebuffer(cfg.DisplayWidth, cfg.DisplayHeight)
	if err != nil {
		return err
	}
	eng, err := engine.New(engine.Options{
		Display:        fb,
		WidgetCapacity: cfg.WidgetCapacity,
		TimerCapacity:  cfg.TimerCapacity,
	})
	if err != nil {
		return err
	}

	win, err := eng.CreateWindow(&widgets.Panel{Color: palette.Background},
		graphics.RectFromLTWH(0, 0, cfg.DisplayWidth, cfg.DisplayHeight))
	if err != nil {
		return err
	}
	taps := 0
	button := &widgets.Button{Theme: palette, OnTap: func() { taps++ }}
	if _, err := eng.CreateWidget(win, button, graphics.RectFromLTWH(40, 40, 120, 36)); err != nil {
		return err
	}
	label, err := eng.CreateWidget(win, &widgets.Label{Theme: palette},
		graphics.RectFromLTWH(40, 96, 200, 24))
	if err != nil {
		return err
	}

	// Repaint the label once a second, as a status line would.
	if _, err := eng.Timers().New(1000, true, func(*timer.Timer) {
		eng.Invalidate(label)
	}); err != nil {
		return err
	}

	// Scripted main loop: tick time, tap the button, drain to idle.
	eng.ReportPointerSample(100, 58, true)
	for i := 0; i < 50; i++ {
		eng.ReportTimeAdvance(16)
		if i == 2 {
			eng.ReportPointerSample(100, 58, false)
		}
		if eng.RunPass() == 0 {
			time.Sleep(time.Millisecond)
		}
	}

	fmt.Printf("%s: %d taps, %d flushes\n", cfg.AppName, taps, fb.Flushes())

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.Front())
}
