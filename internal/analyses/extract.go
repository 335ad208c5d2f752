package analyses

import "strings"

const (
	locationMarker   = "## Location"
	historicalMarker = "## Historical"
	culturalSuffix   = "& Cultural Context"
)

// extractSections splits a model response into its location and
// historical parts. The prompt asks for "## Location" and
// "## Historical & Cultural Context" headings; when the model ignores
// the format, the whole response is kept as the location section so
// nothing is lost.
func extractSections(raw string) (locationInfo, historicalContext string) {
	if !strings.Contains(raw, locationMarker) {
		return raw, ""
	}

	parts := strings.SplitN(raw, historicalMarker, 2)

	locationInfo = strings.TrimSpace(strings.ReplaceAll(parts[0], locationMarker, ""))
	if len(parts) > 1 {
		historicalContext = strings.TrimSpace(strings.ReplaceAll(parts[1], culturalSuffix, ""))
	}
	return locationInfo, historicalContext
}
