package extractor

import (
	"strings"
	"testing"
)

func TestIsReadableText(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  bool
	}{
		{
			"statement text",
			[]string{"HDFC Bank account statement\n04-11-25 UPI/DR/530549342075/Arulpand 150.00 4820.00\nclosing balance 4820.00"},
			true,
		},
		{
			"too short",
			[]string{"bank"},
			false,
		},
		{
			"binary garbage",
			[]string{strings.Repeat("\x01\x02ÿþ\x7f", 40)},
			false,
		},
		{
			"readable but not a statement",
			[]string{strings.Repeat("lorem ipsum dolor sit amet consectetur ", 5)},
			false,
		},
		{
			"empty",
			nil,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isReadableText(tt.pages); got != tt.want {
				t.Errorf("isReadableText = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextQuality(t *testing.T) {
	if q := textQuality([]string{"plain ascii statement text 123.45"}); q < 0.95 {
		t.Errorf("clean text quality = %f, want near 1.0", q)
	}
	if q := textQuality([]string{strings.Repeat("\x01ÿ", 50)}); q > 0.2 {
		t.Errorf("garbage quality = %f, want near 0", q)
	}
	if q := textQuality(nil); q != 0 {
		t.Errorf("empty quality = %f, want 0", q)
	}
}
