package main

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"nifri2/ghost-lantern/cmd"
)

// Terminal layout: faces side by side, two pixel rows per cell using the
// upper half block.
const (
	originX  = 1
	originY  = 1
	faceCols = cmd.PanelWidth
	faceRows = cmd.PanelHeight / 2
	faceGap  = 3
	statusY  = originY + faceRows + 2
)

var errShortFrame = errors.New("frame shorter than one panel")

// TerminalFaces draws the four faces into a tcell screen.
type TerminalFaces struct {
	screen tcell.Screen
	order  cmd.ChannelOrder
}

func NewTerminalFaces(screen tcell.Screen, order cmd.ChannelOrder) *TerminalFaces {
	t := &TerminalFaces{screen: screen, order: order}
	t.drawLabels()
	return t
}

// Strips returns one cmd.Strip per face.
func (t *TerminalFaces) Strips() [cmd.FaceCount]cmd.Strip {
	var strips [cmd.FaceCount]cmd.Strip
	for i := range strips {
		strips[i] = &faceStrip{faces: t, face: cmd.Face(i)}
	}
	return strips
}

func faceOriginX(face cmd.Face) int {
	return originX + int(face)*(faceCols+faceGap)
}

func (t *TerminalFaces) drawLabels() {
	for face := cmd.Face(0); face < cmd.FaceCount; face++ {
		t.drawText(faceOriginX(face), originY-1, face.String(), tcell.StyleDefault.Bold(true))
	}
}

// DrawStatus replaces the status line.
func (t *TerminalFaces) DrawStatus(line string) {
	w, _ := t.screen.Size()
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, statusY, ' ', nil, tcell.StyleDefault)
	}
	t.drawText(0, statusY, line, tcell.StyleDefault)
}

// DrawHelp writes the key legend under the status line.
func (t *TerminalFaces) DrawHelp(line string) {
	t.drawText(0, statusY+1, line, tcell.StyleDefault.Dim(true))
}

func (t *TerminalFaces) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

type faceStrip struct {
	faces *TerminalFaces
	face  cmd.Face
}

func (s *faceStrip) Write(buf []byte) (int, error) {
	if len(buf) < cmd.PixelCount*3 {
		return 0, errShortFrame
	}
	x0 := faceOriginX(s.face)
	for row := 0; row < faceRows; row++ {
		for col := 0; col < faceCols; col++ {
			top := s.faces.order.Unpack(buf[((2*row)*cmd.PanelWidth+col)*3:])
			bottom := s.faces.order.Unpack(buf[((2*row+1)*cmd.PanelWidth+col)*3:])
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			s.faces.screen.SetContent(x0+col, originY+row, '▀', nil, style)
		}
	}
	return len(buf), nil
}

func toTcell(c cmd.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
