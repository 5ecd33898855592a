package models

// Site represents a monitoring site awaiting enrichment.
type Site struct {
	ID        int     // ID is the primary key of the site row.
	Longitude float64 // Longitude of the site in decimal degrees.
	Latitude  float64 // Latitude of the site in decimal degrees.
}

// Coordinates returns the site location.
func (s Site) Coordinates() Coordinates {
	return Coordinates{Longitude: s.Longitude, Latitude: s.Latitude}
}

// SiteMetadata is everything resolved for a site. Nil members mean the
// corresponding service had no data for the point.
type SiteMetadata struct {
	SiteID    string
	Elevation *Elevation
	HUC       *HUC
	County    *County
}
