package backend

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/inkwell/internal/engine/buffer"
)

// TabWidth is the tab stop interval.
const TabWidth = 4

// Cell is one rune placed on screen.
type Cell struct {
	X, Y     int
	Rune     rune
	Width    int
	Selected bool
}

// Frame is the laid-out text area.
type Frame struct {
	Cells []Cell

	// CaretX and CaretY are the screen position of the selection end.
	CaretX, CaretY int

	// Top and Left are the first visible line and display column.
	Top, Left int
}

// cellWidth returns the display width of r at display column col.
func cellWidth(r rune, col int) int {
	if r == '\t' {
		return TabWidth - col%TabWidth
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// DisplayColumn returns the display column of the rune offset col within
// line, counting tabs and wide runes.
func DisplayColumn(line []rune, col int) int {
	x := 0
	for i := 0; i < col && i < len(line); i++ {
		x += cellWidth(line[i], x)
	}
	return x
}

// Layout places text in a width by height area, scrolling so the caret
// (the selection end) is visible. Lines are not wrapped.
func Layout(text string, sel buffer.Selection, width, height int) Frame {
	var f Frame
	if width <= 0 || height <= 0 {
		return f
	}

	sel = sel.Clamp(buffer.RuneLen(text))
	lines := strings.Split(text, "\n")
	caretLine, caretCol := 0, sel.End
	for i, line := range lines {
		n := len([]rune(line))
		if caretCol <= n {
			caretLine = i
			break
		}
		caretCol -= n + 1
	}
	caretX := DisplayColumn([]rune(lines[caretLine]), caretCol)

	if caretLine >= height {
		f.Top = caretLine - height + 1
	}
	if caretX >= width {
		f.Left = caretX - width + 1
	}
	f.CaretX = caretX - f.Left
	f.CaretY = caretLine - f.Top

	offset := 0
	for i := 0; i < f.Top; i++ {
		offset += len([]rune(lines[i])) + 1
	}
	for y := 0; y < height && f.Top+y < len(lines); y++ {
		line := []rune(lines[f.Top+y])
		x := 0
		for i, r := range line {
			w := cellWidth(r, x)
			sx := x - f.Left
			x += w
			if sx < 0 {
				continue
			}
			if sx+w > width {
				break
			}
			pos := offset + i
			glyph := r
			if r == '\t' {
				glyph = ' '
			}
			f.Cells = append(f.Cells, Cell{
				X:        sx,
				Y:        y,
				Rune:     glyph,
				Width:    w,
				Selected: pos >= sel.Start && pos < sel.End,
			})
		}
		offset += len(line) + 1
	}
	return f
}
