package orrery

import (
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/planetelements"
	"github.com/soniakeys/meeus/v3/solar"
)

// meanElementIndex maps the catalog names to the Meeus planet numbering.
// Earth is absent: its table has no node row, see MeanAnomalyAt.
var meanElementIndex = map[string]int{
	"mercury": planetelements.Mercury,
	"venus":   planetelements.Venus,
	"mars":    planetelements.Mars,
	"jupiter": planetelements.Jupiter,
	"saturn":  planetelements.Saturn,
	"uranus":  planetelements.Uranus,
	"neptune": planetelements.Neptune,
}

// MeanAnomalyAt returns the mean anomaly of the named planet at the provided
// date from the mean orbital elements of the equinox of date (Meeus, chapter 31).
// The second return is false for bodies without published mean elements (e.g. Pluto).
func MeanAnomalyAt(name string, dt time.Time) (float64, bool) {
	jde := julian.TimeToJD(dt.UTC())
	name = strings.ToLower(name)
	if name == "earth" {
		// The Sun's geocentric mean anomaly is the Earth's heliocentric one (Meeus, chapter 25).
		return normalizeAngle(solar.MeanAnomaly(base.J2000Century(jde)).Rad()), true
	}
	p, found := meanElementIndex[name]
	if !found {
		return 0, false
	}
	var elts planetelements.Elements
	planetelements.Mean(p, jde, &elts)
	// M = L - ϖ
	return normalizeAngle(elts.Lon.Rad() - elts.Peri.Rad()), true
}
