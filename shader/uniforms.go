// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import "maps"

// Uniforms is a named set of values passed to a program's CPU stage.
// The zero value is ready to use.
type Uniforms struct {
	values map[string]any
}

// Set stores a uniform value, replacing any previous value of that name.
func (u *Uniforms) Set(name string, value any) {
	if u.values == nil {
		u.values = make(map[string]any)
	}
	u.values[name] = value
}

// Get returns the raw value of a uniform.
func (u *Uniforms) Get(name string) (any, bool) {
	if u == nil {
		return nil, false
	}
	v, ok := u.values[name]
	return v, ok
}

// Float returns a numeric uniform as float64, or 0 if it is unset or not
// numeric.
func (u *Uniforms) Float(name string) float64 {
	v, _ := u.Get(name)
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint32:
		return float64(n)
	default:
		return 0
	}
}

// Vec2 returns a [2]float64 uniform, or the zero vector.
func (u *Uniforms) Vec2(name string) [2]float64 {
	v, _ := u.Get(name)
	vec, _ := v.([2]float64)
	return vec
}

// Vec4 returns a [4]float64 uniform, or the zero vector.
func (u *Uniforms) Vec4(name string) [4]float64 {
	v, _ := u.Get(name)
	vec, _ := v.([4]float64)
	return vec
}

// Bool returns a boolean uniform, or false.
func (u *Uniforms) Bool(name string) bool {
	v, _ := u.Get(name)
	b, _ := v.(bool)
	return b
}

// Len returns the number of uniforms set.
func (u *Uniforms) Len() int {
	if u == nil {
		return 0
	}
	return len(u.values)
}

// Clone returns a snapshot of u that later Set calls do not affect.
func (u *Uniforms) Clone() *Uniforms {
	if u == nil {
		return &Uniforms{}
	}
	return &Uniforms{values: maps.Clone(u.values)}
}
