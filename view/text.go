package view

import (
	"bytes"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/wickgo/wick"
)

// Every text path is drawn with Go Regular; FontFamily is kept for the
// project file only.
var (
	faceSourceOnce sync.Once
	faceSource     *text.GoTextFaceSource
	faceSourceErr  error
)

func goRegular() (*text.GoTextFaceSource, error) {
	faceSourceOnce.Do(func() {
		faceSource, faceSourceErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	})
	return faceSource, faceSourceErr
}

func textFace(size float64) (*text.GoTextFace, float64, error) {
	src, err := goRegular()
	if err != nil {
		return nil, 0, err
	}
	face := &text.GoTextFace{Source: src, Size: size}
	m := face.Metrics()
	return face, m.HAscent + m.HDescent + m.HLineGap, nil
}

// NewTextPath creates a text path whose bounds are the measured size of
// content at fontSize.
func NewTextPath(content string, fontSize float64) (*wick.Path, error) {
	face, lh, err := textFace(fontSize)
	if err != nil {
		return nil, err
	}
	w, h := text.Measure(content, face, lh)
	return wick.NewTextPath(content, fontSize, wick.Rect{Width: w, Height: h}), nil
}

func (r *Renderer) drawText(screen *ebiten.Image, view wick.Matrix, cmd *Command) {
	path := cmd.Path
	face, lh, err := textFace(path.FontSize)
	if err != nil {
		wick.Logger().Warn("load font", "err", err)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(path.Bounds.X, path.Bounds.Y)
	op.GeoM.Concat(geoM(view.Multiply(cmd.Transform)))
	c := path.FillColor
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	op.ColorScale.ScaleAlpha(float32(cmd.Alpha))
	op.LineSpacing = lh
	text.Draw(screen, path.Text(), face, op)
}
