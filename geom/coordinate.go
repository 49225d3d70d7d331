// Package geom holds the in-memory vector geometry model: coordinates,
// the closed set of geometry variants, envelopes and a spatial index.
package geom

import "fmt"

// Coordinate is a position with an optional Z ordinate.
type Coordinate struct {
	X    float64
	Y    float64
	Z    float64
	HasZ bool
}

// XY returns a 2D coordinate.
func XY(x, y float64) Coordinate {
	return Coordinate{X: x, Y: y}
}

// XYZ returns a 3D coordinate.
func XYZ(x, y, z float64) Coordinate {
	return Coordinate{X: x, Y: y, Z: z, HasZ: true}
}

// Equal reports whether both coordinates have the same ordinates and the
// same dimensionality.
func (c Coordinate) Equal(o Coordinate) bool {
	if c.HasZ != o.HasZ {
		return false
	}
	if c.HasZ && c.Z != o.Z {
		return false
	}
	return c.X == o.X && c.Y == o.Y
}

// Equal2D compares X and Y only.
func (c Coordinate) Equal2D(o Coordinate) bool {
	return c.X == o.X && c.Y == o.Y
}

func (c Coordinate) String() string {
	if c.HasZ {
		return fmt.Sprintf("(%g %g %g)", c.X, c.Y, c.Z)
	}
	return fmt.Sprintf("(%g %g)", c.X, c.Y)
}

// Sequence is an ordered list of coordinates.
type Sequence []Coordinate

// Len returns the number of coordinates.
func (s Sequence) Len() int { return len(s) }

// At returns the i-th coordinate.
func (s Sequence) At(i int) Coordinate { return s[i] }

// IsClosed reports whether the first and last coordinates coincide in 2D.
func (s Sequence) IsClosed() bool {
	if len(s) == 0 {
		return false
	}
	return s[0].Equal2D(s[len(s)-1])
}

// Equal compares two sequences element-wise.
func (s Sequence) Equal(o Sequence) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

func (s Sequence) clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}
