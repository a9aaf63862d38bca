// Command sketchdemo runs the sketch examples on a chosen driver.
//
//	sketchdemo -example filter -driver window
//	sketchdemo -example layers -driver headless -frames 120 -out layers.png
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sort"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/driver/fbdev"
	"github.com/gogpu/sketch/driver/headless"
	"github.com/gogpu/sketch/driver/window"
)

func main() {
	var (
		example = flag.String("example", "time", "example to run: "+exampleNames())
		driver  = flag.String("driver", "headless", "driver: headless, window or fbdev")
		frames  = flag.Int("frames", 60, "frames to render (headless, fbdev; 0 runs until interrupted)")
		out     = flag.String("out", "sketch.png", "output file of the headless driver")
		config  = flag.String("config", "", "TOML config file")
		res     = flag.String("res", "", "resources directory (overrides the config)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	build, ok := examples[*example]
	if !ok {
		log.Fatalf("unknown example %q, want one of %s", *example, exampleNames())
	}

	var cfg *sketch.Config
	level := slog.LevelInfo
	if *config != "" {
		c, err := sketch.LoadConfig(*config)
		if err != nil {
			log.Fatal(err)
		}
		cfg = c
		level = c.Level()
	}
	opts := sketchOptions(cfg, *res)
	if *verbose {
		level = slog.LevelDebug
	}
	sketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	d, err := newDriver(*driver, *example, *frames, *out)
	if err != nil {
		log.Fatal(err)
	}

	s, err := sketch.New(opts...)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()
	if err := build(s); err != nil {
		log.Fatalf("%s: %v", *example, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := s.Start(ctx, d); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
	log.Printf("%s: %d frames, %.0f ms of sketch time", *example, s.FrameCount(), s.Millis())
}

// sketchOptions builds the sketch options from the config and the -res
// flag. Without a resources directory the default font is not loaded.
func sketchOptions(c *sketch.Config, res string) []sketch.Option {
	var opts []sketch.Option
	if res == "" && (c == nil || c.Resources == "") {
		opts = append(opts, sketch.WithDefaultFont(""))
	}
	if c != nil {
		opts = append(opts, c.Options()...)
	}
	if res != "" {
		opts = append(opts, sketch.WithResources(res))
	}
	return opts
}

func newDriver(name, example string, frames int, out string) (sketch.Driver, error) {
	switch name {
	case "headless":
		return headless.New(headless.Frames(frames), headless.SavePNG(out)), nil
	case "window":
		return window.New(window.Title("sketch: " + example)), nil
	case "fbdev":
		return fbdev.New(fbdev.Frames(frames)), nil
	}
	return nil, fmt.Errorf("unknown driver %q", name)
}

func exampleNames() string {
	names := make([]string, 0, len(examples))
	for name := range examples {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprint(names)
}
