package cosmology

// Over evaluates an exact (non-failing) scalar quantity at every redshift
// in zs. The cosmology methods are scalar by design; Over is the slice
// adapter for callers that work with redshift grids.
//
//	ez := cosmology.Over(zs, model.Efunc)
func Over(zs []float64, fn func(float64) float64) []float64 {
	out := make([]float64, len(zs))
	for i, z := range zs {
		out[i] = fn(z)
	}
	return out
}

// OverErr evaluates a failing quantity at every redshift in zs, stopping
// at the first error.
//
//	ages, err := cosmology.OverErr(zs, model.Age)
func OverErr(zs []float64, fn func(float64) (float64, error)) ([]float64, error) {
	out := make([]float64, len(zs))
	for i, z := range zs {
		v, err := fn(z)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
