package pick

import (
	"math"
	"sort"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

// Selector finds the point hit by a ray.
//
// A point is a candidate if its perpendicular distance to the ray is at most
// Threshold and its distance along the ray is in [Near, Far].
// Far of zero means no upper bound. Points behind the ray origin are never
// candidates.
//
// If Scaled is set, Threshold is multiplied by the distance along the ray,
// making it an angular tolerance (tangent of the cone half angle) that
// keeps a constant on-screen size at any camera distance.
type Selector struct {
	Threshold float32
	Near, Far float32
	Scaled    bool
}

// Hit is a point hit by a ray.
type Hit struct {
	Position      mat.Vec3
	Distance      float32 // along the ray from its origin
	DistanceToRay float32
	Index         int
}

// Select returns the candidate nearest to the ray origin.
// Candidates at the same distance are resolved to the lowest index.
// A miss is reported by false, not by an error.
func (s Selector) Select(r Ray, points pc.Vec3RandomAccessor) (Hit, bool) {
	if points == nil || !(s.Threshold >= 0) {
		return Hit{}, false
	}
	var selected Hit
	var found bool
	for i, n := 0, points.Len(); i < n; i++ {
		h, ok := s.test(r, points.Vec3At(i), i)
		if !ok {
			continue
		}
		// Strict comparison keeps the lowest index on ties.
		if !found || h.Distance < selected.Distance {
			selected, found = h, true
		}
	}
	return selected, found
}

// Hits returns all candidates ordered by distance along the ray, then by index.
func (s Selector) Hits(r Ray, points pc.Vec3RandomAccessor) []Hit {
	if points == nil || !(s.Threshold >= 0) {
		return nil
	}
	var hits []Hit
	for i, n := 0, points.Len(); i < n; i++ {
		if h, ok := s.test(r, points.Vec3At(i), i); ok {
			hits = append(hits, h)
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Index < hits[j].Index
	})
	return hits
}

func (s Selector) test(r Ray, p mat.Vec3, i int) (Hit, bool) {
	rel := p.Sub(r.Origin)
	t := rel.Dot(r.Direction)
	// Negated comparisons reject NaN.
	if !(t >= 0) || t < s.Near || (s.Far > 0 && t > s.Far) {
		return Hit{}, false
	}
	th := s.Threshold
	if s.Scaled {
		th *= t
	}
	dSq := rel.Sub(r.Direction.Mul(t)).NormSq()
	if !(dSq <= th*th) {
		return Hit{}, false
	}
	return Hit{
		Position:      p,
		Distance:      t,
		DistanceToRay: float32(math.Sqrt(float64(dSq))),
		Index:         i,
	}, true
}
