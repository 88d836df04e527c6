package domain

import "strings"

// UnknownDistrict is used for jobs without a recognised service zone.
const UnknownDistrict = "Unknown"

// Districts are the fixed service zones of the business.
var Districts = []string{
	"Śródmieście",
	"Mokotów",
	"Wola",
	"Ochota",
	"Żoliborz",
	"Praga-Północ",
	"Praga-Południe",
	"Ursynów",
}

var districtIndex = func() map[string]string {
	m := make(map[string]string, len(Districts))
	for _, d := range Districts {
		m[strings.ToLower(d)] = d
	}
	return m
}()

// CanonicalDistrict returns the canonical zone name, or UnknownDistrict.
func CanonicalDistrict(name string) string {
	if d, ok := districtIndex[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d
	}
	return UnknownDistrict
}
