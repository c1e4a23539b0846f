package types

import (
	"fmt"

	"github.com/specialistvlad/protocatalog/internal/value"
)

// Vector is a 2D vector in tiles, written {x, y} or {x = , y = }.
type Vector struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (vec *Vector) DecodeValue(v value.Value) error {
	t, ok := v.AsTable()
	if !ok {
		return value.Mismatch("vector table", v)
	}

	xv, hasX := t.Field("x")
	yv, hasY := t.Field("y")
	if !hasX && !hasY {
		vals := t.Values()
		if !t.IsSequence() || len(vals) != 2 {
			return fmt.Errorf("vector needs exactly 2 numbers, got %d values", t.Len())
		}
		xv, yv = vals[0], vals[1]
	}

	x, okX := xv.AsFloat()
	y, okY := yv.AsFloat()
	if !okX {
		return fmt.Errorf("vector x: %w", value.Mismatch("number", xv))
	}
	if !okY {
		return fmt.Errorf("vector y: %w", value.Mismatch("number", yv))
	}
	vec.X, vec.Y = x, y
	return nil
}

// BoundingBox is an axis aligned box written {{left, top}, {right, bottom}}.
type BoundingBox struct {
	LeftTop     Vector `yaml:"left_top"`
	RightBottom Vector `yaml:"right_bottom"`
}

func (bb *BoundingBox) DecodeValue(v value.Value) error {
	t, ok := v.AsTable()
	if !ok {
		return value.Mismatch("bounding box table", v)
	}

	lt, hasLT := t.Field("left_top")
	rb, hasRB := t.Field("right_bottom")
	if !hasLT && !hasRB {
		vals := t.Values()
		if !t.IsSequence() || len(vals) < 2 {
			return fmt.Errorf("bounding box needs 2 corners, got %d values", t.Len())
		}
		lt, rb = vals[0], vals[1]
	}
	if err := bb.LeftTop.DecodeValue(lt); err != nil {
		return fmt.Errorf("left top corner: %w", err)
	}
	if err := bb.RightBottom.DecodeValue(rb); err != nil {
		return fmt.Errorf("right bottom corner: %w", err)
	}
	if bb.LeftTop.X > bb.RightBottom.X || bb.LeftTop.Y > bb.RightBottom.Y {
		return fmt.Errorf("bounding box corners are inverted: {%g, %g} is below or right of {%g, %g}",
			bb.LeftTop.X, bb.LeftTop.Y, bb.RightBottom.X, bb.RightBottom.Y)
	}
	return nil
}

// Width returns the horizontal extent of the box.
func (bb BoundingBox) Width() float64 { return bb.RightBottom.X - bb.LeftTop.X }

// Height returns the vertical extent of the box.
func (bb BoundingBox) Height() float64 { return bb.RightBottom.Y - bb.LeftTop.Y }
