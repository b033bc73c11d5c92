package outline

import (
	"github.com/itsmostafa/pdfoutline/internal/pdf"
)

const (
	// grayTolerance is the largest pairwise channel difference that still
	// counts as a shade of gray.
	grayTolerance = 10
	// darkRed is the red channel value at and above which a gray stops
	// counting as black.
	darkRed = 60
)

// IsBold reports whether the bold bit (value 4) is set in flags.
func IsBold(flags int) bool {
	return flags&pdf.FlagBold != 0
}

// IsColored reports whether a packed 0xRRGGBB colour is anything other than
// a dark gray. Light grays count as colored.
func IsColored(color int) bool {
	r := (color >> 16) & 0xff
	g := (color >> 8) & 0xff
	b := color & 0xff

	nearGray := abs(r-g) < grayTolerance && abs(r-b) < grayTolerance && abs(g-b) < grayTolerance
	return !(nearGray && r < darkRed)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
