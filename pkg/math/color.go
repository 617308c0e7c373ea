package math

import "github.com/x448/float16"

// Color types are distinct from the vector types of the same layout so that
// vertex format inference can tell them apart: 8- and 16-bit integer colors
// are stored normalized.

// Color3 is a floating-point RGB color.
type Color3 struct {
	R, G, B float32
}

// Color4 is a floating-point RGBA color.
type Color4 struct {
	R, G, B, A float32
}

// Color3h is a half-float RGB color.
type Color3h struct {
	R, G, B float16.Float16
}

// Color4h is a half-float RGBA color.
type Color4h struct {
	R, G, B, A float16.Float16
}

// Color3ub is an 8-bit RGB color, stored normalized.
type Color3ub struct {
	R, G, B uint8
}

// Color4ub is an 8-bit RGBA color, stored normalized.
type Color4ub struct {
	R, G, B, A uint8
}

// Color3us is a 16-bit RGB color, stored normalized.
type Color3us struct {
	R, G, B uint16
}

// Color4us is a 16-bit RGBA color, stored normalized.
type Color4us struct {
	R, G, B, A uint16
}

// RGBA extends the color with the given alpha.
func (c Color3) RGBA(alpha float32) Color4 {
	return Color4{c.R, c.G, c.B, alpha}
}

// RGB drops the alpha channel.
func (c Color4) RGB() Color3 {
	return Color3{c.R, c.G, c.B}
}

// Vec4 returns the color as a vector.
func (c Color4) Vec4() Vec4 {
	return Vec4{c.R, c.G, c.B, c.A}
}

// Color4 converts the color to floating point, expanding 0..255 to 0..1.
func (c Color4ub) Color4() Color4 {
	return Color4{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}
