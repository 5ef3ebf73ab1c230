package material

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// fixedSampler always returns the same sample
type fixedSampler struct {
	value core.Vec3
}

func (f fixedSampler) Get1D() float64   { return f.value.X }
func (f fixedSampler) Get3D() core.Vec3 { return f.value }

// upHit is a front-face hit at the origin on a surface facing +Z
func upHit(m Material) HitRecord {
	return HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		T:         1.0,
		FrontFace: true,
		Material:  m,
	}
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}
