package utils

// UTMZone returns the UTM zone number covering a longitude.
func UTMZone(lon float64) int {
	zone := int((lon+180)/6) + 1
	if zone < 1 {
		zone = 1
	}
	if zone > 60 {
		zone = 60
	}
	return zone
}

// UTMCentralMeridian returns the central meridian of a UTM zone in degrees.
func UTMCentralMeridian(zone int) float64 {
	return float64((zone-1)*6 - 180 + 3)
}

// NAD83UTMEPSG returns the EPSG code of the NAD83 / UTM northern-hemisphere
// system for a zone (zone 14 -> 26914). Used to default a wellbore CRS from
// its surface longitude; it never replaces an explicitly loaded CRS, and the
// grid coordinates themselves stay supplied metadata.
func NAD83UTMEPSG(zone int) int {
	return 26900 + zone
}
