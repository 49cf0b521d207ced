package core

// Color is a foreground color for a screen cell as an ANSI 256-color index.
// The zero value means the terminal default.
type Color uint8

// Named palette entries.
const (
	ColorDefault       Color = 0
	ColorRed           Color = 1
	ColorGreen         Color = 2
	ColorYellow        Color = 3
	ColorBlue          Color = 4
	ColorMagenta       Color = 5
	ColorCyan          Color = 6
	ColorWhite         Color = 7
	ColorGray          Color = 245
	ColorBrightRed     Color = 9
	ColorBrightGreen   Color = 10
	ColorBrightYellow  Color = 11
	ColorBrightBlue    Color = 12
	ColorBrightMagenta Color = 13
	ColorBrightCyan    Color = 14
	ColorBrightWhite   Color = 15
	ColorOrange        Color = 208
)

// RGB quantizes 0-255 channels onto the 6x6x6 color cube.
func RGB(r, g, b float64) Color {
	q := func(v float64) int {
		return Clamp(int(ClampF(v, 0, 255)*5/255+0.5), 0, 5)
	}
	return Color(16 + 36*q(r) + 6*q(g) + q(b)) //#nosec G115 -- bounded to 16..231
}

// Dim returns c for alpha at or above one half and gray otherwise. The
// terminal has no blending, so translucent cells are drawn gray.
func Dim(c Color, alpha float64) Color {
	if alpha >= 0.5 {
		return c
	}
	return ColorGray
}
