package analyses

import "testing"

func TestExtractSections(t *testing.T) {
	cases := []struct {
		name           string
		raw            string
		wantLocation   string
		wantHistorical string
	}{
		{
			name:           "well formed",
			raw:            "## Location\nParis\n## Historical & Cultural Context\nOld city",
			wantLocation:   "Paris",
			wantHistorical: "Old city",
		},
		{
			name:           "no markers keeps full text as location",
			raw:            "A nice photo of a beach at sunset.",
			wantLocation:   "A nice photo of a beach at sunset.",
			wantHistorical: "",
		},
		{
			name:           "location only",
			raw:            "## Location\nKyoto, Japan",
			wantLocation:   "Kyoto, Japan",
			wantHistorical: "",
		},
		{
			name:           "empty response",
			raw:            "",
			wantLocation:   "",
			wantHistorical: "",
		},
		{
			name:           "extra whitespace trimmed",
			raw:            "## Location\n\n  Rome  \n\n## Historical & Cultural Context\n\n  Ancient capital.  \n",
			wantLocation:   "Rome",
			wantHistorical: "Ancient capital.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			location, historical := extractSections(tc.raw)
			if location != tc.wantLocation {
				t.Errorf("location = %q, want %q", location, tc.wantLocation)
			}
			if historical != tc.wantHistorical {
				t.Errorf("historical = %q, want %q", historical, tc.wantHistorical)
			}
		})
	}
}
