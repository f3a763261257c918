package geoplot

import (
	"cmp"
	"slices"
)

// convexHull returns the convex hull of points in counter-clockwise order
// (clockwise on screen, where Y grows downward), starting from the point
// with the lowest X. Collinear points on the hull are dropped. Fewer than
// three distinct points yield those points.
func convexHull(points []Vec2) []Vec2 {
	pts := slices.Clone(points)
	slices.SortFunc(pts, func(a, b Vec2) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	pts = slices.Compact(pts)
	if len(pts) < 3 {
		return pts
	}

	// Monotone chain: lower hull, then upper hull.
	hull := make([]Vec2, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// cross returns the z component of (a-o) x (b-o).
func cross(o, a, b Vec2) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
