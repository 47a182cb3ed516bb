// Package catalog is a small built-in list of named fixed objects (bright
// stars and well-known deep-sky objects) with J2000 coordinates.
package catalog

import (
	"sort"
	"strings"
)

// Entry is one catalogued object.
type Entry struct {
	Name string  // canonical lower-case name
	RA   float64 // J2000 right ascension, degrees
	Dec  float64 // J2000 declination, degrees
}

var entries = []Entry{
	{Name: "sirius", RA: 101.2872, Dec: -16.7161},
	{Name: "canopus", RA: 95.9880, Dec: -52.6957},
	{Name: "arcturus", RA: 213.9153, Dec: 19.1824},
	{Name: "vega", RA: 279.2347, Dec: 38.7837},
	{Name: "capella", RA: 79.1723, Dec: 45.9980},
	{Name: "rigel", RA: 78.6345, Dec: -8.2016},
	{Name: "procyon", RA: 114.8255, Dec: 5.2250},
	{Name: "betelgeuse", RA: 88.7929, Dec: 7.4071},
	{Name: "achernar", RA: 24.4285, Dec: -57.2368},
	{Name: "altair", RA: 297.6958, Dec: 8.8683},
	{Name: "aldebaran", RA: 68.9802, Dec: 16.5093},
	{Name: "antares", RA: 247.3519, Dec: -26.4320},
	{Name: "spica", RA: 201.2983, Dec: -11.1613},
	{Name: "pollux", RA: 116.3290, Dec: 28.0262},
	{Name: "fomalhaut", RA: 344.4127, Dec: -29.6222},
	{Name: "deneb", RA: 310.3580, Dec: 45.2803},
	{Name: "regulus", RA: 152.0930, Dec: 11.9672},
	{Name: "polaris", RA: 37.9546, Dec: 89.2641},
	{Name: "acrux", RA: 186.6496, Dec: -63.0991},
	{Name: "m31", RA: 10.6847, Dec: 41.2690},
	{Name: "m42", RA: 83.8221, Dec: -5.3911},
	{Name: "m45", RA: 56.7500, Dec: 24.1167},
	{Name: "m13", RA: 250.4235, Dec: 36.4613},
	{Name: "omega centauri", RA: 201.6970, Dec: -47.4795},
}

var aliases = map[string]string{
	"andromeda galaxy": "m31",
	"andromeda":        "m31",
	"orion nebula":     "m42",
	"pleiades":         "m45",
	"seven sisters":    "m45",
	"hercules cluster": "m13",
	"ngc 5139":         "omega centauri",
	"north star":       "polaris",
	"alpha lyrae":      "vega",
}

var byName = func() map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Name] = e
	}
	return m
}()

// Normalize lower-cases name and collapses runs of whitespace, so that
// "Omega  Centauri" and "omega centauri" match.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Lookup returns the entry for name or one of its aliases.
func Lookup(name string) (Entry, bool) {
	key := Normalize(name)
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	e, ok := byName[key]
	return e, ok
}

// Names returns every canonical name, sorted.
func Names() []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}
