package main

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/shader"
)

var examples = map[string]func(*sketch.Sketch) error{
	"time":   timeExample,
	"filter": filterExample,
	"layers": layersExample,
}

// timeExample orbits a dot on virtual time. Space pauses, + and - change
// the time scale, r reverses it.
func timeExample(s *sketch.Sketch) error {
	clock := s.Clock()
	_ = s.Input().On(sketch.KeyPressed, func(e sketch.Event) {
		switch e.Key {
		case " ":
			if clock.TimeScale() == 0 {
				clock.SetTimeScale(1)
			} else {
				clock.SetTimeScale(0)
			}
		case "+", "=":
			clock.SetTimeScale(clock.TimeScale() * 2)
		case "-":
			clock.SetTimeScale(clock.TimeScale() / 2)
		case "r":
			clock.SetTimeScale(-clock.TimeScale())
		}
	})

	s.OnDraw(func(s *sketch.Sketch) {
		w, h := float64(s.Width()), float64(s.Height())
		dc := s.Content()
		dc.ClearWithColor(gg.RGB(0.08, 0.08, 0.12))

		t := s.Millis() / 1000
		r := math.Min(w, h) / 3
		dc.SetRGB(0.9, 0.5, 0.2)
		dc.DrawCircle(w/2+r*math.Cos(t), h/2+r*math.Sin(t), 20)
		_ = dc.Fill()

		hud(s, fmt.Sprintf("t = %.2fs  scale = %.2f", t, clock.TimeScale()))
	})
	return nil
}

// filterExample blurs the content layer by an animated radius and turns the
// whole frame gray while g is held.
func filterExample(s *sketch.Sketch) error {
	blur, err := s.NewFilterShader(sketch.LayerContent, sketch.FromText(shader.PassthroughFragment),
		sketch.Named("blur"), sketch.WithFilter(shader.Blur(0)))
	if err != nil {
		return err
	}
	gray, err := s.NewFilterShader(sketch.LayerPrimary, sketch.FromText(shader.PassthroughFragment),
		sketch.Named("grayscale"), sketch.WithFilter(shader.Grayscale()))
	if err != nil {
		return err
	}
	gray.SetAutoApply(false)

	s.OnDraw(func(s *sketch.Sketch) {
		w, h := float64(s.Width()), float64(s.Height())
		dc := s.Content()
		dc.ClearWithColor(gg.RGB(1, 1, 1))
		for i := range 6 {
			a := float64(i) * math.Pi / 3
			dc.SetRGB(0.5+0.5*math.Cos(a), 0.5+0.5*math.Sin(a), 0.6)
			dc.DrawCircle(w/2+w/4*math.Cos(a), h/2+h/4*math.Sin(a), 40)
			_ = dc.Fill()
		}
		blur.SetUniform("uRadius", 4+3*math.Sin(s.Millis()/400))
		gray.SetAutoApply(s.Input().KeyDown("g"))

		hud(s, "hold g for grayscale")
	})
	return nil
}

// layersExample paints under the pointer on content, keeps a HUD on the
// overlay and inverts the final frame while a mouse button is held.
func layersExample(s *sketch.Sketch) error {
	invert, err := s.NewFilterShader(sketch.LayerPrimary, sketch.FromText(shader.PassthroughFragment),
		sketch.Named("invert"), sketch.WithFilter(shader.Invert()), sketch.Manual())
	if err != nil {
		return err
	}
	s.SetDrawSettings(sketch.DrawSettings{DrawContent: true, DrawOverlay: true, AutoClear: true})

	_ = s.OnSetup(func(s *sketch.Sketch) {
		s.Content().ClearWithColor(gg.RGB(0.95, 0.95, 0.9))
	})
	s.OnDraw(func(s *sketch.Sketch) {
		in := s.Input()
		dc := s.Content()
		dc.SetRGBA(0.2, 0.6, 1, 0.5)
		dc.DrawCircle(in.MouseX(), in.MouseY(), 12)
		_ = dc.Fill()
		invert.SetAutoApply(in.MouseIsPressed())

		hud(s, fmt.Sprintf("frame %d  mouse %.0f,%.0f", s.FrameCount(), in.MouseX(), in.MouseY()))
	})
	return nil
}

// hud draws a status line on the overlay.
func hud(s *sketch.Sketch, msg string) {
	dc := s.Overlay()
	dc.Clear()
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, 0, float64(s.Width()), 28)
	_ = dc.Fill()
	if f := s.Font(); f != nil && f.Use(dc, 14) {
		dc.SetRGB(1, 1, 1)
		dc.DrawString(msg, 8, 19)
	}
}
