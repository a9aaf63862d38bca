package sketch

import "context"

// Driver runs a sketch on a rendering engine.
//
// A driver calls Preload and Setup once, then Frame (or Tick) once per
// frame, feeds input through Input().Dispatch and presents Primary().
// Run returns when ctx is done, the engine stops, or a lifecycle call
// fails.
type Driver interface {
	Run(ctx context.Context, s *Sketch) error
}

// DriverFunc adapts a function to Driver.
type DriverFunc func(ctx context.Context, s *Sketch) error

// Run calls f.
func (f DriverFunc) Run(ctx context.Context, s *Sketch) error { return f(ctx, s) }
