package geom

// Ray is a half-line. Dir need not be normalized; distances reported by
// intersection routines are in units of Dir's length.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// RayBetween returns the ray from a towards b, with Dir = b - a so that the
// segment a..b spans parameters 0..1.
func RayBetween(a, b Vec3) Ray {
	return Ray{Origin: a, Dir: b.Sub(a)}
}

// At returns the point at parameter t.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}
