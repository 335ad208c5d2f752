package vision

import (
	"strings"
	"testing"
)

func TestBuildPromptDeterministic(t *testing.T) {
	for _, userContext := range []string{"", "sunset over the old town", "多言語 context"} {
		a := BuildPrompt(userContext)
		b := BuildPrompt(userContext)
		if a != b {
			t.Fatalf("prompt not deterministic for context %q", userContext)
		}
	}
}

func TestBuildPromptSections(t *testing.T) {
	prompt := BuildPrompt("")
	if !strings.Contains(prompt, "## Location") {
		t.Fatal("missing Location section")
	}
	if !strings.Contains(prompt, "## Historical & Cultural Context") {
		t.Fatal("missing Historical & Cultural Context section")
	}
}

func TestBuildPromptEmbedsUserContext(t *testing.T) {
	prompt := BuildPrompt("taken near the Eiffel Tower")
	if !strings.Contains(prompt, `"taken near the Eiffel Tower"`) {
		t.Fatal("user context not embedded")
	}
	if !strings.Contains(prompt, "verify what you can see in the image") {
		t.Fatal("missing verification instruction")
	}
}

func TestBuildPromptOmitsContextParagraphWhenEmpty(t *testing.T) {
	prompt := BuildPrompt("")
	if strings.Contains(prompt, "additional context about the photo") {
		t.Fatal("context paragraph present for empty context")
	}
}
