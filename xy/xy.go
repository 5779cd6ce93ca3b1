// Package xy maps coordinates on the 13x13 heart grid to indices in the physical
// LED chain.
//
// The heart is programmed as a plain rectangular matrix. Cells that have no LED
// ("holes") map to indices past LastVisibleLED, so writing to them is harmless
// as long as the LED buffer holds NumLEDs entries. To test whether a coordinate
// lies on the heart:
//
//	if xy.XY(x, y) > xy.LastVisibleLED {
//		// off the heart
//	}
package xy

const (
	// Width is the number of columns in the grid.
	Width = 13
	// Height is the number of rows in the grid.
	Height = 13
	// NumLEDs is the number of cells in the grid. LED buffers indexed by XY must
	// hold at least this many entries.
	NumLEDs = Width * Height
	// LastVisibleLED is the highest index of an LED that is part of the heart.
	LastVisibleLED = 106
	// OffGrid is returned by XY for coordinates outside the grid. It is also
	// the index of the first hidden LED.
	OffGrid = LastVisibleLED + 1
)

// Pixel layout:
//
//	XY    0   1   2   3   4   5   6   7   8   9  10  11  12
//	  +----------------------------------------------------
//	0 |   .   .  20  19  18   .   .   .  14  13  12   .   .
//	1 |   .  21  50  49  48  17   .  15  44  43  42  11   .
//	2 |  22  51  76  75  74  47  16  45  70  69  68  41  10
//	3 |  23  52  77  98  97  73  46  71  91  90  67  40   9
//	4 |  24  53  78  99  96  95  72  93  92  89  66  39   8
//	5 |   .  25  54  79 100   .  94 105  88  65  38   7   .
//	6 |   .  26  55  80 101   . 106 104  87  64  37   6   .
//	7 |   .   .  27  56  81 102 103  86  63  36   5   .   .
//	8 |   .   .   .  28  57  82  85  62  35   4   .   .   .
//	9 |   .   .   .  29  58  83  84  61  34   3   .   .   .
//	10|   .   .   .   .  30  59  60  33   2   .   .   .   .
//	11|   .   .   .   .   .  31  32   1   .   .   .   .   .
//	12|   .   .   .   .   .   .   0   .   .   .   .   .   .
var table = [NumLEDs]uint8{
	162, 163, 20, 19, 18, 164, 165, 166, 14, 13, 12, 167, 168,
	159, 21, 50, 49, 48, 17, 160, 15, 44, 43, 42, 11, 161,
	22, 51, 76, 75, 74, 47, 16, 45, 70, 69, 68, 41, 10,
	23, 52, 77, 98, 97, 73, 46, 71, 91, 90, 67, 40, 9,
	24, 53, 78, 99, 96, 95, 72, 93, 92, 89, 66, 39, 8,
	157, 25, 54, 79, 100, 108, 94, 105, 88, 65, 38, 7, 158,
	155, 26, 55, 80, 101, 107, 106, 104, 87, 64, 37, 6, 156,
	151, 152, 27, 56, 81, 102, 103, 86, 63, 36, 5, 153, 154,
	145, 146, 147, 28, 57, 82, 85, 62, 35, 4, 148, 149, 150,
	139, 140, 141, 29, 58, 83, 84, 61, 34, 3, 142, 143, 144,
	131, 132, 133, 134, 30, 59, 60, 33, 2, 135, 136, 137, 138,
	121, 122, 123, 124, 125, 31, 32, 1, 126, 127, 128, 129, 130,
	109, 110, 111, 112, 113, 114, 0, 115, 116, 117, 118, 119, 120,
}

// XY returns the index of the LED at the given grid coordinate. Coordinates
// outside the grid return OffGrid. It is safe to call with arbitrary values.
func XY(x, y uint) uint8 {
	if x >= Width || y >= Height {
		return OffGrid
	}
	return table[y*Width+x]
}

// IsVisible returns true if the LED index is part of the heart.
func IsVisible(i uint8) bool {
	return i <= LastVisibleLED
}

type coord struct{ x, y uint8 }

var coords [NumLEDs]coord

func init() {
	for i, led := range table {
		coords[led] = coord{
			x: uint8(i % Width),
			y: uint8(i / Width),
		}
	}
}

// Coord returns the grid coordinate of the LED at index i. ok is false if i is
// not an index of the grid.
func Coord(i uint8) (x, y uint, ok bool) {
	if int(i) >= NumLEDs {
		return 0, 0, false
	}
	c := coords[i]
	return uint(c.x), uint(c.y), true
}
