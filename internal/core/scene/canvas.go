package scene

import (
	"image"
	"image/color"
	"slices"

	"github.com/zeusync/zeuphys/internal/core/geom"
	"github.com/zeusync/zeuphys/internal/core/shape"
)

// Canvas is the drawing surface supplied by a renderer. Transforms map the
// unit frame of the drawn item into world coordinates. Higher depth is drawn
// on top; alpha is the opacity in [0,1].
type Canvas interface {
	Image(name string) (image.Image, error)
	DrawImage(img image.Image, t geom.Transform, alpha, depth float64)
	DrawShape(s shape.Shape, t geom.Transform, style ShapeStyle, alpha, depth float64)
	DrawText(text string, t geom.Transform, style TextStyle, alpha, depth float64)
}

type ShapeStyle struct {
	Fill      color.Color
	Outline   color.Color
	Thickness float64
}

type TextStyle struct {
	FontSize  float64
	Fill      color.Color
	Outline   color.Color
	Thickness float64
	Bold      bool
	Italics   bool
	// Anchor is the point of the text box placed at the origin, relative to
	// its size: (0,0) bottom-left, (0.5,0.5) center.
	Anchor geom.Vector
}

// Graphics is anything that can draw itself.
type Graphics interface {
	Draw(c Canvas) error
	Depth() float64
}

// DrawAll draws items back to front. Items at equal depth keep their order.
func DrawAll(c Canvas, items ...Graphics) error {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Graphics) int {
		switch {
		case a.Depth() < b.Depth():
			return -1
		case a.Depth() > b.Depth():
			return 1
		}
		return 0
	})
	for _, g := range sorted {
		if err := g.Draw(c); err != nil {
			return err
		}
	}
	return nil
}
