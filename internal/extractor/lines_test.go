package extractor

import (
	"reflect"
	"testing"
)

func TestReconstructLines(t *testing.T) {
	// PDF Y coordinates run bottom-up: larger Y is higher on the page.
	fragments := []Fragment{
		{X: 200, Y: 700, Text: "Statement"},
		{X: 50, Y: 700, Text: "Bank"},
		{X: 50, Y: 650, Text: "04-11-25"},
		{X: 120, Y: 650, Text: "UPI/DR/530549342075/Arulpand"},
		{X: 400, Y: 650, Text: "150.00"},
		{X: 480, Y: 650, Text: "4820.00"},
		{X: 50, Y: 600, Text: "Page 1"},
	}

	got := ReconstructLines(fragments)
	want := []string{
		"Bank Statement",
		"04-11-25 UPI/DR/530549342075/Arulpand 150.00 4820.00",
		"Page 1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReconstructLines = %q, want %q", got, want)
	}
}

func TestReconstructLines_BaselineJitter(t *testing.T) {
	// Sub-pixel jitter from font rendering rounds onto one baseline.
	fragments := []Fragment{
		{X: 10, Y: 650.3, Text: "left"},
		{X: 90, Y: 649.8, Text: "right"},
	}

	got := ReconstructLines(fragments)
	if len(got) != 1 || got[0] != "left right" {
		t.Errorf("jittered fragments should form one line, got %q", got)
	}
}

func TestReconstructLines_EmptyFragmentsDropped(t *testing.T) {
	fragments := []Fragment{
		{X: 10, Y: 100, Text: "   "},
		{X: 20, Y: 100, Text: "only"},
	}

	got := ReconstructLines(fragments)
	if len(got) != 1 || got[0] != "only" {
		t.Errorf("got %q, want [only]", got)
	}
}

func TestReconstructLines_NoFragments(t *testing.T) {
	if got := ReconstructLines(nil); len(got) != 0 {
		t.Errorf("got %q, want empty", got)
	}
}
