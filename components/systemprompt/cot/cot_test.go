package cot

import (
	"strings"
	"testing"
)

type staticProvider struct {
	title string
	info  string
}

func (p staticProvider) Title() string {
	return p.title
}

func (p staticProvider) Info() string {
	return p.info
}

func TestGenerateSections(t *testing.T) {
	g := New(
		WithBackground([]string{"You are a travel assistant."}),
		WithSteps([]string{"Pick the right tools."}),
	)
	prompt := g.Generate()
	for _, want := range []string{
		"# IDENTITY and PURPOSE",
		"You are a travel assistant.",
		"# INTERNAL ASSISTANT STEPS",
		"Pick the right tools.",
		"# OUTPUT INSTRUCTIONS",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestGenerateContextProviders(t *testing.T) {
	g := New(WithContextProviders(staticProvider{title: "last places", info: "Taj Mahal, Agra Fort"}))
	prompt := g.Generate()
	if !strings.Contains(prompt, "# EXTRA INFORMATION AND CONTEXT") || !strings.Contains(prompt, "## last places") {
		t.Errorf("prompt missing provider section:\n%s", prompt)
	}
	g.RemoveContextProviders("last places")
	if strings.Contains(g.Generate(), "last places") {
		t.Error("removed provider must not render")
	}
}
