package projector

// UnitPatch carries the fields of a partial unit update. Nil fields are left
// unchanged.
type UnitPatch struct {
	ThrowRatio    *float64  `json:"throwRatio,omitempty"`
	ThrowRatioMin *float64  `json:"throwRatioMin,omitempty"`
	ThrowRatioMax *float64  `json:"throwRatioMax,omitempty"`
	Lens          *LensType `json:"lensType,omitempty"`
	ShiftH        *float64  `json:"lensShiftHorizontal,omitempty"`
	ShiftV        *float64  `json:"lensShiftVertical,omitempty"`
	Lumens        *float64  `json:"lumens,omitempty"`
	Brand         *string   `json:"brand,omitempty"`
	Model         *string   `json:"model,omitempty"`
	YawDegrees    *float64  `json:"screenYaw,omitempty"`
	Aspect        *Aspect   `json:"aspectRatio,omitempty"`
}

// Apply merges the patch into u and re-normalizes it
func (p UnitPatch) Apply(u *Unit) {
	setFloat(&u.ThrowRatio, p.ThrowRatio)
	setFloat(&u.ThrowRatioMin, p.ThrowRatioMin)
	setFloat(&u.ThrowRatioMax, p.ThrowRatioMax)
	setFloat(&u.ShiftH, p.ShiftH)
	setFloat(&u.ShiftV, p.ShiftV)
	setFloat(&u.Lumens, p.Lumens)
	setFloat(&u.YawDegrees, p.YawDegrees)
	if p.Lens != nil {
		u.Lens = *p.Lens
		if u.Lens == LensZoom && p.ThrowRatioMin == nil && p.ThrowRatioMax == nil && u.ThrowRatioMin == u.ThrowRatioMax {
			// Switching a fixed lens to zoom starts with a usable range
			u.ThrowRatioMin = u.ThrowRatio * 0.8
			u.ThrowRatioMax = u.ThrowRatio * 1.2
		}
	}
	if p.Brand != nil {
		u.Brand = *p.Brand
	}
	if p.Model != nil {
		u.Model = *p.Model
	}
	if p.Aspect != nil {
		u.Aspect = *p.Aspect
	}
	u.Normalize()
}

// IsEmpty reports whether the patch changes nothing
func (p UnitPatch) IsEmpty() bool {
	return p == UnitPatch{}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// Float returns a pointer to v, for building patches
func Float(v float64) *float64 {
	return &v
}
