package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Background is the field color trails fade into
var Background = colorful.Color{R: 26.0 / 255, G: 27.0 / 255, B: 38.0 / 255}

// goldenAngle spreads consecutive hues evenly around the wheel
const goldenAngle = 137.50776405003785

// BodyColor returns the body's configured color, or a palette color by index when hex is empty or invalid
func BodyColor(index int, hex string) colorful.Color {
	if hex != "" {
		if c, err := colorful.Hex(hex); err == nil {
			return c
		}
	}
	hue := math.Mod(float64(index)*goldenAngle, 360)
	return colorful.Hsv(hue, 0.65, 1.0)
}

// Fade blends c toward Background, t=0 keeps c and t=1 is background
func Fade(c colorful.Color, t float64) colorful.Color {
	return c.BlendLab(Background, min(max(t, 0), 1)).Clamped()
}

// ToTcell converts a colorful color to a 24-bit tcell color
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
