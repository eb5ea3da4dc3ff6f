package scene

import (
	"fmt"
	"image/color"

	"github.com/zeusync/zeuphys/internal/core/geom"
	"github.com/zeusync/zeuphys/internal/core/shape"
)

// appearance is the opacity and depth shared by every drawable.
type appearance struct {
	alpha float64
	depth float64
}

func (a *appearance) Alpha() float64         { return a.alpha }
func (a *appearance) SetAlpha(alpha float64) { a.alpha = alpha }
func (a *appearance) Depth() float64         { return a.depth }
func (a *appearance) SetDepth(depth float64) { a.depth = depth }

type ShapeGraphics struct {
	*Node
	appearance

	shape shape.Shape
	style ShapeStyle
}

func NewShapeGraphics(r Resolver, s shape.Shape, style ShapeStyle) *ShapeGraphics {
	return &ShapeGraphics{
		Node:       NewNode(r),
		appearance: appearance{alpha: 1},
		shape:      s,
		style:      style,
	}
}

func (g *ShapeGraphics) Shape() shape.Shape        { return g.shape }
func (g *ShapeGraphics) SetShape(s shape.Shape)    { g.shape = s }
func (g *ShapeGraphics) Style() ShapeStyle         { return g.style }
func (g *ShapeGraphics) SetStyle(style ShapeStyle) { g.style = style }

func (g *ShapeGraphics) Draw(c Canvas) error {
	if g.shape == nil {
		return nil
	}
	t, err := g.Resolve()
	if err != nil {
		return err
	}
	c.DrawShape(g.shape, t, g.style, g.alpha, g.depth)
	return nil
}

// ImageGraphics draws a named image stretched over a width x height box. The
// anchor, in unit image coordinates, is the point placed at the node origin.
type ImageGraphics struct {
	*Node
	appearance

	name   string
	width  float64
	height float64
	anchor geom.Vector
}

func NewImageGraphics(r Resolver, name string, width, height float64) *ImageGraphics {
	return &ImageGraphics{
		Node:       NewNode(r),
		appearance: appearance{alpha: 1},
		name:       name,
		width:      width,
		height:     height,
	}
}

func (g *ImageGraphics) Name() string                  { return g.name }
func (g *ImageGraphics) SetName(name string)           { g.name = name }
func (g *ImageGraphics) Size() (float64, float64)      { return g.width, g.height }
func (g *ImageGraphics) SetSize(width, height float64) { g.width, g.height = width, height }
func (g *ImageGraphics) Anchor() geom.Vector           { return g.anchor }
func (g *ImageGraphics) SetAnchor(anchor geom.Vector)  { g.anchor = anchor }

// ImageTransform maps the unit square of the image into world space.
func (g *ImageGraphics) ImageTransform() (geom.Transform, error) {
	abs, err := g.Resolve()
	if err != nil {
		return abs, err
	}
	return geom.NewTranslation(g.anchor.Opposite()).Scaled(g.width, g.height).Transformed(abs), nil
}

func (g *ImageGraphics) Draw(c Canvas) error {
	if g.name == "" {
		return nil
	}
	img, err := c.Image(g.name)
	if err != nil {
		return fmt.Errorf("image %q: %w", g.name, err)
	}
	t, err := g.ImageTransform()
	if err != nil {
		return err
	}
	c.DrawImage(img, t, g.alpha, g.depth)
	return nil
}

type TextGraphics struct {
	*Node
	appearance

	text  string
	style TextStyle
}

func NewTextGraphics(r Resolver, text string, fontSize float64, fill color.Color) *TextGraphics {
	return &TextGraphics{
		Node:       NewNode(r),
		appearance: appearance{alpha: 1},
		text:       text,
		style:      TextStyle{FontSize: fontSize, Fill: fill},
	}
}

func (g *TextGraphics) Text() string             { return g.text }
func (g *TextGraphics) SetText(text string)      { g.text = text }
func (g *TextGraphics) Style() TextStyle         { return g.style }
func (g *TextGraphics) SetStyle(style TextStyle) { g.style = style }

func (g *TextGraphics) Draw(c Canvas) error {
	if g.text == "" {
		return nil
	}
	t, err := g.Resolve()
	if err != nil {
		return err
	}
	c.DrawText(g.text, t, g.style, g.alpha, g.depth)
	return nil
}
