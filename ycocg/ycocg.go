// Package ycocg converts YCoCg colours to RGB and to HSL.
//
// All functions are pure and clamp out-of-range channels instead of
// rejecting them. HSL lightness is the input luminance, not the
// (max+min)/2 of the reconstructed RGB.
package ycocg

import (
	"image/color"
	"math"
)

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Clamp01 bounds v to the unit interval.
func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }

// ToRGB reconstructs unit-range RGB from luminance y and chrominance co, cg.
func ToRGB(y, co, cg float64) (r, g, b float64) {
	r = Clamp01(y + co - cg)
	g = Clamp01(y + cg)
	b = Clamp01(y - co - cg)
	return r, g, b
}

// ToHSL converts to hue, saturation and lightness, each in [0, 1]. Hue is a
// fraction of a full turn.
func ToHSL(y, co, cg float64) (h, s, l float64) {
	r, g, b := ToRGB(y, co, cg)
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	delta := maxC - minC

	// Ties resolve red, then green, then blue.
	switch {
	case delta == 0:
		h = 0
	case maxC == r:
		h = mod((g-b)/delta, 6)
	case maxC == g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h /= 6

	l = Clamp01(y)
	denom := 1 - math.Abs(2*l-1)
	if delta == 0 || denom == 0 {
		s = 0
	} else {
		s = Clamp01(delta / denom)
	}
	return h, s, l
}

// mod is the floored modulo: the result has the sign of m.
func mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// YCoCg is a colour in luminance/chrominance form. It implements color.Color.
type YCoCg struct {
	Y, Co, Cg float64
}

// RGB returns the unit-range RGB reconstruction.
func (c YCoCg) RGB() (r, g, b float64) { return ToRGB(c.Y, c.Co, c.Cg) }

// HSL returns the luminance-preserving HSL form.
func (c YCoCg) HSL() (h, s, l float64) { return ToHSL(c.Y, c.Co, c.Cg) }

// RGBA implements color.Color. The colour is fully opaque.
func (c YCoCg) RGBA() (r, g, b, a uint32) {
	fr, fg, fb := c.RGB()
	return to16(fr), to16(fg), to16(fb), 0xffff
}

func to16(v float64) uint32 { return uint32(math.Round(v * 0xffff)) }

var _ color.Color = YCoCg{}

// Model converts any color.Color to YCoCg using the forward transform
// Y = R/4 + G/2 + B/4, Co = (R-B)/2, Cg = G/2 - R/4 - B/4.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	if y, ok := c.(YCoCg); ok {
		return y
	}
	r, g, b, _ := c.RGBA()
	fr, fg, fb := float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff
	return YCoCg{
		Y:  fr/4 + fg/2 + fb/4,
		Co: (fr - fb) / 2,
		Cg: fg/2 - fr/4 - fb/4,
	}
})
