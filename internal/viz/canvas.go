package viz

import "strings"

// Each braille rune packs a 2x4 dot grid; dotBits[subY][subX] is the
// bit for one dot, added to the block offset 0x2800.
var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blankBraille = 0x2800

// Canvas is a braille pixel grid. A canvas of w x h cells addresses
// (2w) x (4h) dots, with (0,0) the top-left dot.
type Canvas struct {
	width  int
	height int
	grid   [][]rune
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{width: width, height: height, grid: make([][]rune, height)}
	for i := range c.grid {
		c.grid[i] = make([]rune, width)
		for j := range c.grid[i] {
			c.grid[i][j] = blankBraille
		}
	}
	return c
}

// Set lights the dot at (x, y). Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.width || row >= c.height {
		return
	}
	c.grid[row][col] |= dotBits[y%4][x%2]
}

// Clear blanks every dot so the canvas can be reused.
func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = blankBraille
		}
	}
}

// Line draws the Bresenham segment from (x0, y0) to (x1, y1) in dot
// coordinates.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
