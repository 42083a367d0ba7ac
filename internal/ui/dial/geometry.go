package dial

import (
	"math"

	"realpomo/internal/core/angle"
)

// Proportions of the dial relative to the smaller widget dimension.
const (
	caseRadiusFrac   = 0.48
	faceRadiusFrac   = 0.42
	sectorRadiusFrac = 0.40
	tickOuterFrac    = 0.41
	tickMinorFrac    = 0.385
	tickMajorFrac    = 0.36
	numeralFrac      = 0.31
	knobRadiusFrac   = 0.085
	handLengthFrac   = 0.36
	handWidthFrac    = 0.012

	// Pointer hit zones.
	knobHitFrac = 0.12
	handHitFrac = 0.025

	fullTurnEpsilon = 1e-9
)

// Bounds is the widget size in pointer units.
type Bounds struct {
	Width  float64
	Height float64
}

// Center returns the middle of the widget.
func (bounds Bounds) Center() angle.Point {
	return angle.Point{X: bounds.Width / 2, Y: bounds.Height / 2}
}

// Size returns the smaller dimension, never negative.
func (bounds Bounds) Size() float64 {
	return math.Max(0, math.Min(bounds.Width, bounds.Height))
}

// Sector is the pie wedge drawn from 12 o'clock clockwise by Angle.
type Sector struct {
	Angle float64
}

// Empty reports whether no wedge is drawn.
func (sector Sector) Empty() bool {
	return sector.Angle <= 0
}

// Full reports whether the wedge is a complete disc.
func (sector Sector) Full() bool {
	return sector.Angle >= angle.FullTurn-fullTurnEpsilon
}

// Tip returns the end of the wedge's arc.
func (sector Sector) Tip(center angle.Point, radius float64) angle.Point {
	return angle.Point{
		X: center.X + radius*math.Sin(sector.Angle),
		Y: center.Y - radius*math.Cos(sector.Angle),
	}
}

// Hover identifies what the pointer is over.
type Hover int

const (
	HoverNone Hover = iota
	HoverKnob
	HoverHand
)

func knobHit(bounds Bounds, pointer angle.Point) bool {
	return pointer.Distance(bounds.Center()) <= knobHitFrac*bounds.Size()
}

func handHit(bounds Bounds, pointer angle.Point) bool {
	size := bounds.Size()
	center := bounds.Center()
	top := angle.Point{X: center.X, Y: center.Y - handLengthFrac*size}
	return distanceToSegment(pointer, center, top) <= handHitFrac*size
}

func distanceToSegment(point, from, to angle.Point) float64 {
	dx := to.X - from.X
	dy := to.Y - from.Y
	lengthSquared := dx*dx + dy*dy
	if lengthSquared == 0 {
		return point.Distance(from)
	}
	t := angle.Clamp01(((point.X-from.X)*dx + (point.Y-from.Y)*dy) / lengthSquared)
	return point.Distance(angle.Point{X: from.X + t*dx, Y: from.Y + t*dy})
}
