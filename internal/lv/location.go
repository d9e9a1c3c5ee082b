package lv

import (
	"regexp"
	"strings"
)

// clusterMarker matches the "(Gewerkecluster ...)" tag the estimating system
// embeds into position descriptions. Everything after the tag is treated as
// a free-text enumeration of installation locations.
var clusterMarker = regexp.MustCompile(`(?i)\(gewerkecluster[^)]*\)`)

// fragmentSeparator splits the location tail into candidate fragments.
// Commas, semicolons and the word "und" all occur in upstream data.
var fragmentSeparator = regexp.MustCompile(`(?i)[,;]|\bund\b`)

// locationKeywords is the fixed room/location vocabulary. Order matters:
// more specific keywords come before their substrings (Badezimmer before
// Bad, Gäste-WC before WC) so a fragment records its most specific match.
var locationKeywords = []string{
	"Badezimmer",
	"Gäste-WC",
	"WC",
	"Bad",
	"Küche",
	"Wohnzimmer",
	"Schlafzimmer",
	"Kinderzimmer",
	"Flur",
	"Diele",
	"Balkon",
	"Terrasse",
	"Keller",
	"Dachgeschoss",
	"Abstellraum",
	"Hauswirtschaftsraum",
	"Treppenhaus",
	"Garage",
}

// ExtractLocations separates a position description into a clean description
// and the distinct installation locations listed after the Gewerkecluster
// marker. Descriptions are free text produced by an external system, so this
// is a best-effort heuristic: it never fails, it only degrades to returning
// the input unchanged with no locations.
//
// The clean description is everything up to and including the marker, which
// makes the function idempotent: re-running it on its own output finds an
// empty tail and extracts nothing further.
func ExtractLocations(description string) (string, []string) {
	loc := clusterMarker.FindStringIndex(description)
	if loc == nil {
		return description, nil
	}

	clean := strings.TrimRight(description[:loc[1]], " \t")
	tail := description[loc[1]:]

	var locations []string
	seen := make(map[string]bool)
	for _, fragment := range fragmentSeparator.Split(tail, -1) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		// One keyword per fragment: the first vocabulary entry found wins.
		for _, keyword := range locationKeywords {
			if strings.Contains(strings.ToLower(fragment), strings.ToLower(keyword)) {
				if !seen[keyword] {
					seen[keyword] = true
					locations = append(locations, keyword)
				}
				break
			}
		}
	}

	return clean, locations
}
