package extractor

import (
	"bytes"
	"compress/zlib"
	"encoding/hex"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
)

// ExtractTextRaw is a fallback extractor that works directly on the PDF byte
// stream, for files whose font encodings the structured library cannot
// decode. It scans stream objects for text operators (Tj, TJ, '), decodes
// literal and hex strings, and applies any ToUnicode CMap tables it finds.
func ExtractTextRaw(filePath string) ([]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	streams := findStreams(data)
	if len(streams) == 0 {
		return nil, nil
	}

	cmap := buildCMap(streams)

	var texts []string
	for _, stream := range streams {
		if text := decodeContentStream(inflate(stream), cmap); text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) == 0 {
		return nil, nil
	}
	return []string{strings.TrimSpace(strings.Join(texts, "\n"))}, nil
}

// findStreams returns every stream...endstream block in the file.
func findStreams(data []byte) [][]byte {
	var streams [][]byte
	start := []byte("stream")
	end := []byte("endstream")

	for offset := 0; offset < len(data); {
		i := bytes.Index(data[offset:], start)
		if i < 0 {
			break
		}
		body := offset + i + len(start)
		for body < len(data) && (data[body] == '\r' || data[body] == '\n') {
			body++
		}
		j := bytes.Index(data[body:], end)
		if j < 0 {
			break
		}
		if j > 0 {
			streams = append(streams, data[body:body+j])
		}
		offset = body + j + len(end)
	}
	return streams
}

// inflate zlib-decompresses a stream body, returning it untouched on failure.
func inflate(data []byte) []byte {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return data
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return data
	}
	return out
}

// Text operator patterns.
var (
	hexStringOpPattern = regexp.MustCompile(`<([0-9A-Fa-f]+)>\s*(?:Tj|')`)
	litStringOpPattern = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)\s*(?:Tj|')`)
	tjArrayPattern     = regexp.MustCompile(`\[([^\]]*)\]\s*TJ`)
	arrayStringPattern = regexp.MustCompile(`<([0-9A-Fa-f]+)>|\(((?:[^()\\]|\\.)*)\)`)
	newLineOpPattern   = regexp.MustCompile(`(?:[\d.\-]+\s+[\d.\-]+\s+T[dD])|(?:^T\*$)`)
)

// decodeContentStream pulls text out of one content stream, emitting a line
// break at each text-positioning operator.
func decodeContentStream(data []byte, cmap map[string]string) string {
	content := string(data)
	if !strings.Contains(content, "Tj") && !strings.Contains(content, "TJ") {
		return ""
	}

	var lines []string
	var current strings.Builder
	flush := func() {
		if line := strings.TrimSpace(current.String()); line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	for _, op := range strings.Split(content, "\n") {
		op = strings.TrimSpace(op)
		if newLineOpPattern.MatchString(op) {
			flush()
		}
		for _, m := range hexStringOpPattern.FindAllStringSubmatch(op, -1) {
			current.WriteString(decodeHexText(m[1], cmap))
		}
		for _, m := range litStringOpPattern.FindAllStringSubmatch(op, -1) {
			current.WriteString(decodeLiteralText(m[1], cmap))
		}
		for _, m := range tjArrayPattern.FindAllStringSubmatch(op, -1) {
			for _, s := range arrayStringPattern.FindAllStringSubmatch(m[1], -1) {
				if s[1] != "" {
					current.WriteString(decodeHexText(s[1], cmap))
				} else {
					current.WriteString(decodeLiteralText(s[2], cmap))
				}
			}
		}
	}
	flush()

	return strings.Join(lines, "\n")
}

// decodeHexText decodes a hex PDF string, preferring the CMap, then UTF-16BE,
// then plain ASCII.
func decodeHexText(hexStr string, cmap map[string]string) string {
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return ""
	}
	if len(cmap) > 0 {
		if s := decodeWithCMap(raw, cmap); s != "" {
			return s
		}
	}
	if len(raw) >= 2 && len(raw)%2 == 0 {
		var b strings.Builder
		for i := 0; i+1 < len(raw); i += 2 {
			cp := rune(raw[i])<<8 | rune(raw[i+1])
			if unicode.IsPrint(cp) || cp == ' ' {
				b.WriteRune(cp)
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return stripUnprintable(string(raw))
}

func decodeLiteralText(s string, cmap map[string]string) string {
	decoded := unescapePDFString(s)
	if len(cmap) > 0 {
		if out := decodeWithCMap([]byte(decoded), cmap); out != "" && mostlyPrintable(out) {
			return out
		}
	}
	return stripUnprintable(decoded)
}

// decodeWithCMap translates raw glyph codes through a ToUnicode map, trying
// two-byte codes first and falling back to single bytes.
func decodeWithCMap(raw []byte, cmap map[string]string) string {
	var b strings.Builder
	for i := 0; i < len(raw); {
		if i+1 < len(raw) {
			key := strings.ToUpper(hex.EncodeToString(raw[i : i+2]))
			if s, ok := cmap[key]; ok {
				b.WriteString(s)
				i += 2
				continue
			}
		}
		key := strings.ToUpper(hex.EncodeToString(raw[i : i+1]))
		if s, ok := cmap[key]; ok {
			b.WriteString(s)
		}
		i++
	}
	return b.String()
}

// CMap parsing.
var (
	bfCharBlockPattern  = regexp.MustCompile(`(?s)beginbfchar\s*(.*?)\s*endbfchar`)
	bfRangeBlockPattern = regexp.MustCompile(`(?s)beginbfrange\s*(.*?)\s*endbfrange`)
	hexTokenPattern     = regexp.MustCompile(`<([0-9A-Fa-f]+)>`)
)

// buildCMap merges every ToUnicode table found in the file's streams into a
// single glyph-code → Unicode map.
func buildCMap(streams [][]byte) map[string]string {
	cmap := make(map[string]string)
	for _, stream := range streams {
		content := string(inflate(stream))
		if !strings.Contains(content, "beginbfchar") && !strings.Contains(content, "beginbfrange") {
			continue
		}

		for _, block := range bfCharBlockPattern.FindAllStringSubmatch(content, -1) {
			tokens := hexTokenPattern.FindAllStringSubmatch(block[1], -1)
			for i := 0; i+1 < len(tokens); i += 2 {
				if uni := hexToUnicode(tokens[i+1][1]); uni != "" {
					cmap[strings.ToUpper(tokens[i][1])] = uni
				}
			}
		}

		for _, block := range bfRangeBlockPattern.FindAllStringSubmatch(content, -1) {
			for _, line := range strings.Split(block[1], "\n") {
				tokens := hexTokenPattern.FindAllStringSubmatch(line, -1)
				if len(tokens) < 3 {
					continue
				}
				start := hexToInt(tokens[0][1])
				end := hexToInt(tokens[1][1])
				dst := hexToInt(tokens[2][1])
				if start < 0 || end < 0 || dst < 0 || end-start > 0xFFFF {
					continue
				}
				width := len(tokens[0][1])
				for c := start; c <= end; c++ {
					key := strings.ToUpper(intToHex(c, width))
					cmap[key] = string(rune(dst + (c - start)))
				}
			}
		}
	}
	return cmap
}

// hexToUnicode converts a CMap destination value (UTF-16BE code units) to a
// string.
func hexToUnicode(hexStr string) string {
	raw, err := hex.DecodeString(hexStr)
	if err != nil || len(raw)%2 != 0 {
		return ""
	}
	units := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		units = append(units, uint16(raw[i])<<8|uint16(raw[i+1]))
	}
	return string(utf16.Decode(units))
}

func hexToInt(s string) int {
	n := 0
	for _, c := range s {
		var d int
		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case c >= 'a' && c <= 'f':
			d = int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = int(c-'A') + 10
		default:
			return -1
		}
		n = n*16 + d
	}
	return n
}

func intToHex(n, width int) string {
	const digits = "0123456789ABCDEF"
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = digits[n&0xF]
		n >>= 4
	}
	return string(buf)
}

// unescapePDFString handles PDF literal-string escapes: \n \r \t \( \) \\ and
// octal sequences.
func unescapePDFString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '(', ')', '\\':
			b.WriteByte(s[i])
		default:
			if s[i] >= '0' && s[i] <= '7' {
				val := int(s[i] - '0')
				for j := 0; j < 2 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7'; j++ {
					i++
					val = val*8 + int(s[i]-'0')
				}
				if val < 256 {
					b.WriteByte(byte(val))
				}
			} else {
				b.WriteByte(s[i])
			}
		}
	}
	return b.String()
}

func stripUnprintable(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' {
			return r
		}
		return -1
	}, s))
}

func mostlyPrintable(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return false
	}
	printable := 0
	for _, r := range runes {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	return float64(printable)/float64(len(runes)) > 0.5
}
