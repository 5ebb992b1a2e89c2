package ftml

import "testing"

func TestParse_UsesDefaultCatalogueWhenNil(t *testing.T) {
	tree, diags, err := Parse("**bold**", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %d", len(diags))
	}
	if len(tree.Root.Children) == 0 {
		t.Fatalf("expected at least one top-level node")
	}
}

func TestParse_HonorsSuppliedSettings(t *testing.T) {
	s := DefaultSettings()
	s.RecursionLimit = 1

	cat, err := DefaultCatalogue()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	source := "[[div]][[div]]x[[/div]][[/div]]"
	_, diags, err := Parse(source, cat, &s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diags) == 0 {
		t.Fatalf("expected a recursion-limit diagnostic with RecursionLimit=1")
	}
}

func TestTokenize_ConsolidatesOtherRuns(t *testing.T) {
	tokens := Tokenize("plain text")
	for _, tok := range tokens {
		if tok.Kind.String() == "OTHER" {
			t.Fatalf("expected Other tokens to be consolidated into Text")
		}
	}
}
