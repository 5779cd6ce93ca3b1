package xy

import (
	"fmt"
	"strings"
)

// Layout renders the grid as a table of LED indices. Cells that are not part
// of the heart are drawn as dots.
func Layout() string {
	var b strings.Builder

	b.WriteString("XY   ")
	for x := uint(0); x < Width; x++ {
		fmt.Fprintf(&b, "%4d", x)
	}
	b.WriteString("\n    +")
	b.WriteString(strings.Repeat("-", 4*Width))
	b.WriteByte('\n')

	for y := uint(0); y < Height; y++ {
		fmt.Fprintf(&b, "%2d  |", y)
		for x := uint(0); x < Width; x++ {
			if i := XY(x, y); IsVisible(i) {
				fmt.Fprintf(&b, "%4d", i)
			} else {
				b.WriteString("   .")
			}
		}
		b.WriteByte('\n')
	}

	return b.String()
}
