package extractor

import "testing"

func TestUnescapePDFString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, "plain"},
		{`a\(b\)c`, "a(b)c"},
		{`tab\there`, "tab\there"},
		{`back\\slash`, `back\slash`},
		{`octal\101`, "octalA"},
	}
	for _, tt := range tests {
		if got := unescapePDFString(tt.in); got != tt.want {
			t.Errorf("unescapePDFString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeContentStream(t *testing.T) {
	stream := []byte(`BT
1 0 0 1 50 700 Td
(04-11-25 UPI payment) Tj
1 0 0 1 50 650 Td
(150.00) Tj
ET`)

	got := decodeContentStream(stream, nil)
	want := "04-11-25 UPI payment\n150.00"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDecodeContentStream_NoTextOperators(t *testing.T) {
	if got := decodeContentStream([]byte("q 1 0 0 1 0 0 cm Q"), nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestBuildCMapAndDecode(t *testing.T) {
	stream := []byte(`/CIDInit /ProcSet findresource begin
begincmap
beginbfchar
<01> <0042>
<02> <0061>
<03> <006E>
<04> <006B>
endbfchar
endcmap`)

	cmap := buildCMap([][]byte{stream})
	if len(cmap) != 4 {
		t.Fatalf("cmap entries: got %d, want 4", len(cmap))
	}

	got := decodeWithCMap([]byte{0x01, 0x02, 0x03, 0x04}, cmap)
	if got != "Bank" {
		t.Errorf("decoded %q, want %q", got, "Bank")
	}
}

func TestHexToUnicode(t *testing.T) {
	if got := hexToUnicode("0042"); got != "B" {
		t.Errorf("hexToUnicode(0042) = %q, want B", got)
	}
	if got := hexToUnicode("20B9"); got != "₹" {
		t.Errorf("hexToUnicode(20B9) = %q, want ₹", got)
	}
	if got := hexToUnicode("zz"); got != "" {
		t.Errorf("hexToUnicode(zz) = %q, want empty", got)
	}
}
