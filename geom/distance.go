package geom

import "math"

const EarthRadiusMeters = 6371000.0

func toRad(deg float64) float64 { return deg * math.Pi / 180.0 }

// GreatCircleDistance returns the haversine distance in meters between two
// lon/lat coordinates.
func GreatCircleDistance(a, b Coordinate) float64 {
	dLat := toRad(b.Y - a.Y)
	dLon := toRad(b.X - a.X)
	lat1 := toRad(a.Y)
	lat2 := toRad(b.Y)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// PointToSegmentDistance returns the shortest distance in meters from p to
// the segment ab. Uses an equirectangular projection around a, so it is
// only accurate for short distances.
func PointToSegmentDistance(p, a, b Coordinate) float64 {
	cosLat := math.Cos(toRad(a.Y))
	project := func(c Coordinate) (float64, float64) {
		return toRad(c.X) * cosLat * EarthRadiusMeters, toRad(c.Y) * EarthRadiusMeters
	}
	ax, ay := project(a)
	bx, by := project(b)
	px, py := project(p)

	dx := bx - ax
	dy := by - ay
	if dx == 0 && dy == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / (dx*dx + dy*dy)
	if t < 0 {
		return math.Hypot(px-ax, py-ay)
	} else if t > 1 {
		return math.Hypot(px-bx, py-by)
	}
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}

// DistanceToLineString returns the minimum distance in meters from p to
// any segment of seq, or -1 when seq has fewer than two coordinates.
func DistanceToLineString(p Coordinate, seq Sequence) float64 {
	if len(seq) < 2 {
		return -1
	}
	best := -1.0
	for i := 0; i < len(seq)-1; i++ {
		d := PointToSegmentDistance(p, seq[i], seq[i+1])
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

// metersToDegrees converts a distance around c into lon/lat deltas.
func metersToDegrees(c Coordinate, meters float64) (dLon, dLat float64) {
	perDegLat := EarthRadiusMeters * math.Pi / 180.0
	perDegLon := perDegLat * math.Cos(toRad(c.Y))
	return meters / perDegLon, meters / perDegLat
}
