// Package sketch provides a structured lifecycle over the gg 2D graphics
// library: preload, setup and per-frame draw hooks, two offscreen layers,
// layer-scoped shaders, input fan-out and a scaled virtual clock.
//
// # Quick Start
//
//	s, err := sketch.New(
//	    sketch.WithSize(640, 480),
//	    sketch.WithDraw(func(s *sketch.Sketch) {
//	        dc := s.Content()
//	        dc.SetRGB(1, 0, 0)
//	        dc.DrawCircle(320+100*math.Sin(s.Millis()/500), 240, 40)
//	        dc.Fill()
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	err = s.Start(ctx, headless.New(headless.Frames(60)))
//
// # Lifecycle
//
// A sketch moves through Constructed, Preloading, Setup and Running, in
// that order and once each:
//
//   - Preload starts every registered load (fonts, images, shader files),
//     runs the preload callbacks and, unless async preload is enabled,
//     waits for all loads to finish.
//   - Setup creates the content and overlay layers, synchronizes the clock,
//     runs the setup callbacks, compiles shaders in registration order and
//     routes them to their layers.
//   - Frame renders one frame.
//
// Shaders must be registered before Setup; file-backed resources before
// the end of Preload. Late registrations are refused with ErrAfterSetup or
// ErrAfterPreload and logged.
//
// # Frame
//
// Each frame:
//
//  1. advances the clock by the real delta times the time scale;
//  2. restores the canonical origin on both offscreen layers;
//  3. calls the draw callback;
//  4. clears the primary surface if AutoClear is set;
//  5. fills a full-surface quad with the primary fill if any primary shader
//     is registered;
//  6. resets the primary transform;
//  7. applies content shaders, then overlay shaders, to their layers;
//  8. composites content, then overlay, onto the primary surface;
//  9. applies primary (global) shaders, which see the composited frame.
//
// Overlay always lands above content, and global shaders post-process the
// final image. Shader failures are logged and skipped; they never abort a
// frame.
//
// # Drivers
//
// A [Driver] feeds frames and input to a sketch. See driver/headless,
// driver/window and driver/fbdev.
package sketch
