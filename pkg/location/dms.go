package location

import "strings"

// DMS is an angle as stored in GPS tags: degrees, minutes, seconds.
type DMS struct {
	Degrees float64
	Minutes float64
	Seconds float64
}

// Decimal converts d to decimal degrees, negated for the southern and
// western hemispheres ("S", "W").
func (d DMS) Decimal(ref string) float64 {
	v := d.Degrees + d.Minutes/60 + d.Seconds/3600
	switch strings.ToUpper(strings.TrimSpace(ref)) {
	case "S", "W":
		return -v
	}
	return v
}
