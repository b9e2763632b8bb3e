package render

import (
	"github.com/jypelle/roomsign/internal/schedule"
	"golang.org/x/image/font"
)

const (
	marginLeft    = 50
	marginTop     = 20
	headerSpacing = 20
	lineSpacing   = 10
)

// Line is a piece of text placed on the canvas, X and Y being its top left corner
type Line struct {
	Text   string
	Face   font.Face
	X      int
	Y      int
	Width  int
	Height int
}

// Baseline is the y coordinate to draw Text at
func (l Line) Baseline() int {
	return l.Y + l.Face.Metrics().Ascent.Ceil()
}

func newLine(face font.Face, text string, x int, y int) Line {
	return Line{
		Text:   text,
		Face:   face,
		X:      x,
		Y:      y,
		Width:  font.MeasureString(face, text).Ceil(),
		Height: face.Metrics().Height.Ceil(),
	}
}

// Layout places the class details from top to bottom: centered header, class name,
// then title, instructor and time range.
func Layout(slot schedule.Slot, header string, faces *Faces, width int) []Line {
	var lines []Line

	headerLine := newLine(faces.Medium, header, 0, marginTop)
	headerLine.X = (width - headerLine.Width) / 2
	if headerLine.X < 0 {
		headerLine.X = 0
	}
	lines = append(lines, headerLine)
	y := headerLine.Y + headerLine.Height + headerSpacing

	classLine := newLine(faces.Large, slot.Class, marginLeft, y)
	lines = append(lines, classLine)
	y += classLine.Height + lineSpacing

	for _, text := range []string{
		"Title: " + slot.Title,
		"Instructor: " + slot.Teacher,
		"Time: " + slot.TimeRange(),
	} {
		line := newLine(faces.Medium, text, marginLeft, y)
		lines = append(lines, line)
		y += line.Height + lineSpacing
	}

	return lines
}

// FallbackLayout is the single line shown when there is nothing else to display
func FallbackLayout(text string, faces *Faces, height int) []Line {
	return []Line{newLine(faces.Medium, text, marginLeft, height/2)}
}
