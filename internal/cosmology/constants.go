package cosmology

import "math"

// Physical constants. CGS values follow CODATA 2018; the speed of light in
// km/s is exact by definition.
const (
	// CLight is the speed of light in km/s.
	CLight = 299792.458

	cCmPerS     = 2.99792458e10          // speed of light [cm/s]
	gravConst   = 6.67430e-8             // Newtonian constant [cm^3 g^-1 s^-2]
	sigmaSB     = 5.670374419e-5         // Stefan-Boltzmann [erg cm^-2 s^-1 K^-4]
	kBoltzEvK   = 8.617333262e-5         // Boltzmann constant [eV/K]
	mpcInCm     = 3.0856775814913673e24  // one megaparsec [cm]
	gyrInSec    = 3.15576e16             // one gigayear (Julian) [s]
	arcsecInRad = math.Pi / (180 * 3600) // one arcsecond [rad]
	arcminInRad = math.Pi / (180 * 60)   // one arcminute [rad]

	// tnuToTcmb is the neutrino-to-photon temperature ratio (4/11)^(1/3)
	// adjusted for QED effects and neutrino heating during e+e-
	// annihilation, matching Neff = 3.046 conventions.
	tnuToTcmb = 0.7137658555036082

	// nuDensityPrefac is 7/8 (4/11)^(4/3), the density of a single
	// massless neutrino species relative to the photon density.
	nuDensityPrefac = 0.22710731766

	// Komatsu et al. 2011 fitting formula constants for the density of
	// massive neutrinos relative to a massless species.
	nuFitP    = 1.83
	nuFitInvP = 0.54644808743 // 1/1.83
	nuFitK    = 0.3173
)

var (
	// h0ToInvSec converts a Hubble constant in km/s/Mpc to 1/s.
	h0ToInvSec = 1.0e5 / mpcInCm

	// critdensConst is 3/(8 pi G); multiplied by H^2 in 1/s^2 it gives the
	// critical density in g/cm^3.
	critdensConst = 3.0 / (8 * math.Pi * gravConst)

	// aBc2 is 4 sigma_sb / c^3, the radiation constant over c^2; multiplied
	// by T^4 it gives the photon mass density in g/cm^3.
	aBc2 = 4 * sigmaSB / (cCmPerS * cCmPerS * cCmPerS)
)
