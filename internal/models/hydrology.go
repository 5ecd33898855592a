package models

// HUC identifies the watershed (hydrologic unit) containing a point.
type HUC struct {
	Code string // Code is the hydrologic unit code, 12 digits at the HUC12 level.
	Name string // Name is the descriptive name of the unit.
}

// County identifies the US county containing a point.
type County struct {
	FIPS       string // FIPS is the 5-digit state+county code as served.
	CountyCode string // CountyCode is FIPS without its 2-character state prefix.
	Name       string
	StateCode  string
}
