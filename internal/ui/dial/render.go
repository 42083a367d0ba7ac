package dial

import (
	"image"
	"math"
	"strconv"

	"realpomo/internal/core/angle"

	"github.com/fogleman/gg"
)

// Renderer rasterizes dial views.
type Renderer struct {
	Theme Theme
}

// Draw renders view into a width×height image.
func (renderer *Renderer) Draw(view View, width, height int) image.Image {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	c := gg.NewContext(width, height)
	bounds := Bounds{Width: float64(width), Height: float64(height)}
	center := bounds.Center()
	size := bounds.Size()
	theme := renderer.Theme

	c.SetColor(theme.Case)
	c.DrawCircle(center.X, center.Y, caseRadiusFrac*size)
	c.Fill()

	c.SetColor(theme.face())
	c.DrawCircle(center.X, center.Y, faceRadiusFrac*size)
	c.Fill()

	c.SetColor(theme.Sector)
	drawSector(c, view.Sector, center, sectorRadiusFrac*size)

	drawTicks(c, theme, view.MaxSeconds, center, size)

	if view.HandVisible {
		drawHand(c, theme, center, size, view.Hover == HoverHand)
	}

	c.SetColor(theme.knobColor(view.Hover == HoverKnob))
	c.DrawCircle(center.X, center.Y, knobRadiusFrac*size)
	c.Fill()

	return c.Image()
}

func drawSector(c *gg.Context, sector Sector, center angle.Point, radius float64) {
	switch {
	case sector.Empty():
		return
	case sector.Full():
		c.DrawCircle(center.X, center.Y, radius)
	default:
		start := -math.Pi / 2
		c.MoveTo(center.X, center.Y)
		c.DrawArc(center.X, center.Y, radius, start, start+sector.Angle)
		c.ClosePath()
	}
	c.Fill()
}

func drawTicks(c *gg.Context, theme Theme, maxSeconds int, center angle.Point, size float64) {
	c.SetColor(theme.ink())
	outer := tickOuterFrac * size
	for index := 0; index < angle.Steps; index++ {
		value := float64(index) * angle.StepRad
		inner := tickMinorFrac * size
		c.SetLineWidth(math.Max(1, size*0.004))
		if index%5 == 0 {
			inner = tickMajorFrac * size
			c.SetLineWidth(math.Max(1.5, size*0.009))
		}
		sin, cos := math.Sincos(value)
		c.DrawLine(center.X+inner*sin, center.Y-inner*cos, center.X+outer*sin, center.Y-outer*cos)
		c.Stroke()

		if index%5 == 0 {
			label := minuteLabel(index, maxSeconds)
			radius := numeralFrac * size
			c.DrawStringAnchored(label, center.X+radius*sin, center.Y-radius*cos, 0.5, 0.5)
		}
	}
}

func drawHand(c *gg.Context, theme Theme, center angle.Point, size float64, hover bool) {
	width := handWidthFrac * size
	if hover {
		width *= 1.6
	}
	c.SetColor(theme.Sector)
	c.SetLineWidth(math.Max(1, width))
	c.SetLineCapRound()
	c.DrawLine(center.X, center.Y, center.X, center.Y-handLengthFrac*size)
	c.Stroke()
}

// minuteLabel names the minute shown at a detent on a dial of maxSeconds.
func minuteLabel(index, maxSeconds int) string {
	if maxSeconds <= 0 {
		maxSeconds = angle.Steps * 60
	}
	minutes := float64(index) * float64(maxSeconds) / float64(angle.Steps) / 60
	return strconv.Itoa(int(math.Round(minutes)))
}
