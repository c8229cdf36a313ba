package cosmology

import "math"

// setupNeutrinos derives the photon and neutrino densities from Tcmb0,
// Neff and the mass spectrum. Tcmb0 = 0 switches radiation off entirely:
// photons and neutrinos contribute nothing regardless of Neff or masses.
func (c *FLRW) setupNeutrinos() {
	if c.tcmb0 == 0 {
		c.nNu = 0
		c.nMasslessNu = 0
		c.massiveNu = false
		c.ogamma0 = 0
		c.onu0 = 0
		c.tnu0 = 0
		return
	}

	c.ogamma0 = aBc2 * math.Pow(c.tcmb0, 4) / c.criticalDensity0
	c.tnu0 = tnuToTcmb * c.tcmb0
	c.nNu = int(math.Floor(c.neff))

	if c.nNu == 0 {
		c.onu0 = nuDensityPrefac * c.neff * c.ogamma0
		return
	}
	c.neffPerNu = c.neff / float64(c.nNu)

	masses := c.params.MNu
	if len(masses) == 1 {
		broadcast := make([]float64, c.nNu)
		for i := range broadcast {
			broadcast[i] = masses[0]
		}
		masses = broadcast
	}

	for _, m := range masses {
		if m > 0 {
			c.massiveNu = true
			c.nuMasses = append(c.nuMasses, m)
		} else {
			c.nMasslessNu++
		}
	}
	if !c.massiveNu {
		c.nMasslessNu = c.nNu
		c.onu0 = nuDensityPrefac * c.neff * c.ogamma0
		return
	}

	c.nuY = make([]float64, len(c.nuMasses))
	for i, m := range c.nuMasses {
		c.nuY[i] = m / (kBoltzEvK * c.tnu0)
	}
	c.onu0 = c.ogamma0 * c.NuRelativeDensity(0)
}

// NuRelativeDensity returns the neutrino energy density at redshift z
// relative to the photon density at the same redshift.
//
// For purely massless species this is the constant 7/8 (4/11)^(4/3) Neff.
// With massive species the transition from relativistic to non-relativistic
// behavior is captured by the Komatsu et al. (2011) fitting formula
//
//	rho_nu / rho_gamma = prefac Neff/N [ Nmassless + sum_i (1 + (k y_i/(1+z))^p)^(1/p) ]
//
// accurate to better than one percent across the transition.
func (c *FLRW) NuRelativeDensity(z float64) float64 {
	if !c.massiveNu {
		return nuDensityPrefac * c.neff
	}
	sum := float64(c.nMasslessNu)
	opz := 1 + z
	for _, y := range c.nuY {
		sum += math.Pow(1+math.Pow(nuFitK*y/opz, nuFitP), nuFitInvP)
	}
	return nuDensityPrefac * c.neffPerNu * sum
}
