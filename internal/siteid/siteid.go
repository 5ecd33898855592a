// Package siteid builds USGS groundwater site identifiers from decimal-degree coordinates.
//
// A site id has the layout DDMMSSDDDMMSSNN: latitude degrees/minutes/seconds,
// longitude degrees/minutes/seconds and a two digit sequence number.
// See https://help.waterdata.usgs.gov/faq/sites/do-station-numbers-have-any-particular-meaning.
package siteid

import (
	"errors"
	"fmt"
	"math"

	"github.com/UnknownOlympus/hydrosite/internal/models"
)

const (
	secondsPerMinute = 60
	secondsPerDegree = 3600
	maxDegrees       = 180

	latDegreeWidth = 2
	lonDegreeWidth = 3

	// DefaultSequence is the suffix used when a location holds a single site.
	DefaultSequence = 1
	maxSequence     = 99
)

// ErrInvalidSequence is returned for sequence numbers outside 1..99.
var ErrInvalidSequence = errors.New("site sequence must be between 1 and 99")

// Angle is the magnitude of a decimal-degree value split into whole
// degrees, minutes and seconds.
type Angle struct {
	Degrees int
	Minutes int // 0..59
	Seconds int // 0..59
}

// Split rounds |dec| to the nearest arc second, halves going to the even
// second, and splits it. The sign is dropped. dec must be a coordinate
// component in [-180, 180]; any other value yields the zero Angle.
func Split(dec float64) Angle {
	mag := math.Abs(dec)
	if math.IsNaN(mag) || mag > maxDegrees {
		return Angle{}
	}
	total := int(math.RoundToEven(mag * secondsPerDegree))

	return Angle{
		Degrees: total / secondsPerDegree,
		Minutes: (total % secondsPerDegree) / secondsPerMinute,
		Seconds: total % secondsPerMinute,
	}
}

// format renders the angle with degrees padded to at least width digits.
func (a Angle) format(width int) string {
	return fmt.Sprintf("%0*d%02d%02d", width, a.Degrees, a.Minutes, a.Seconds)
}

// String renders the angle as DDMMSS.
func (a Angle) String() string {
	return a.format(latDegreeWidth)
}

// DMS converts one decimal-degree component into DDMMSS. Degrees take more
// than two digits only when the magnitude is 100 or more. Callers validate
// the component first; out-of-range input is rendered as "000000".
func DMS(dec float64) string {
	return Split(dec).String()
}

// SiteID returns the site id for a single site at c.
func SiteID(c models.Coordinates) (string, error) {
	return SiteIDWithSequence(c, DefaultSequence)
}

// SiteIDWithSequence returns the site id for the seq-th site at c.
// Latitude comes first; longitude degrees are always three digits wide.
func SiteIDWithSequence(c models.Coordinates, seq int) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	if seq < 1 || seq > maxSequence {
		return "", fmt.Errorf("%w: got %d", ErrInvalidSequence, seq)
	}

	return Split(c.Latitude).format(latDegreeWidth) + Split(c.Longitude).format(lonDegreeWidth) +
		fmt.Sprintf("%02d", seq), nil
}
