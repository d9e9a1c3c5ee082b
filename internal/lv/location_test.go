package lv_test

import (
	"testing"

	"github.com/hauptbau/fieldops-api/internal/lv"
	"github.com/stretchr/testify/assert"
)

func TestExtractLocations(t *testing.T) {
	tests := []struct {
		name          string
		description   string
		wantClean     string
		wantLocations []string
	}{
		{
			name:          "marker with two locations",
			description:   "Steckdose installieren (Gewerkecluster Elektro), Küche, Bad",
			wantClean:     "Steckdose installieren (Gewerkecluster Elektro)",
			wantLocations: []string{"Küche", "Bad"},
		},
		{
			name:          "no marker returns input unchanged",
			description:   "Steckdose installieren, Küche",
			wantClean:     "Steckdose installieren, Küche",
			wantLocations: nil,
		},
		{
			name:          "und separator",
			description:   "Fliesen legen (Gewerkecluster Fliesen) Badezimmer und Küche",
			wantClean:     "Fliesen legen (Gewerkecluster Fliesen)",
			wantLocations: []string{"Badezimmer", "Küche"},
		},
		{
			name:          "case-insensitive marker and keywords",
			description:   "Leitung verlegen (GEWERKECLUSTER elektro); KÜCHE; flur",
			wantClean:     "Leitung verlegen (GEWERKECLUSTER elektro)",
			wantLocations: []string{"Küche", "Flur"},
		},
		{
			name:          "duplicate locations deduplicated",
			description:   "Malern (Gewerkecluster Maler), Flur, Flur, Keller",
			wantClean:     "Malern (Gewerkecluster Maler)",
			wantLocations: []string{"Flur", "Keller"},
		},
		{
			name:          "fragments without known keywords ignored",
			description:   "Abdichten (Gewerkecluster Dach), Pultdach, Balkon",
			wantClean:     "Abdichten (Gewerkecluster Dach)",
			wantLocations: []string{"Balkon"},
		},
		{
			name:          "specific keyword beats its substring",
			description:   "Armatur setzen (Gewerkecluster Sanitär), Gäste-WC",
			wantClean:     "Armatur setzen (Gewerkecluster Sanitär)",
			wantLocations: []string{"Gäste-WC"},
		},
		{
			name:          "empty description",
			description:   "",
			wantClean:     "",
			wantLocations: nil,
		},
		{
			name:          "marker with empty tail",
			description:   "Dose setzen (Gewerkecluster Elektro)",
			wantClean:     "Dose setzen (Gewerkecluster Elektro)",
			wantLocations: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, locations := lv.ExtractLocations(tt.description)
			assert.Equal(t, tt.wantClean, clean)
			assert.Equal(t, tt.wantLocations, locations)
		})
	}
}

func TestExtractLocationsIdempotent(t *testing.T) {
	descriptions := []string{
		"Steckdose installieren (Gewerkecluster Elektro), Küche, Bad",
		"Fliesen legen (Gewerkecluster Fliesen) Badezimmer und Küche",
		"Freitext ohne Marker",
	}

	for _, desc := range descriptions {
		clean, _ := lv.ExtractLocations(desc)
		again, locations := lv.ExtractLocations(clean)
		assert.Equal(t, clean, again)
		assert.Empty(t, locations)
	}
}
