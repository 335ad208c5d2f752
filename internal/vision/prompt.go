package vision

import "fmt"

// BuildPrompt composes the analysis instruction sent with every photo. It is a
// pure function: the same userContext always yields a byte-identical prompt.
// An empty userContext omits the context paragraph entirely.
func BuildPrompt(userContext string) string {
	contextSection := ""
	if userContext != "" {
		contextSection = fmt.Sprintf(`
The user has provided this additional context about the photo:
"%s"

Use this context to help inform your analysis, but verify what you can see in the image.
`, userContext)
	}

	return fmt.Sprintf(`Analyze this travel photo and provide helpful information for someone trying to remember where it was taken and what they were looking at.
%s
Please provide your analysis in the following format:

## Location
Identify the location shown in this photo. Include:
- Specific landmark, building, or place name (if identifiable)
- City and country
- Any notable geographic features
- If you cannot identify the exact location, describe what you can see and suggest possible locations

## Historical & Cultural Context
Provide interesting historical and cultural information about this location:
- Brief history of the landmark or area
- Cultural significance
- Interesting facts a visitor might want to know
- Any notable events that occurred here

If you cannot identify the location with certainty, be honest about that and provide your best assessment based on visual clues like architecture style, landscape, signage, or other contextual elements.`, contextSection)
}
