package extractor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// OCROptions configure the external Tesseract engine.
type OCROptions struct {
	// Language passed to tesseract -l. Defaults to "eng".
	Language string
	// PageSegMode passed to tesseract --psm. Defaults to "4" (single column
	// of variably sized text, which suits statements), while screenshots use
	// "6" via DefaultScreenshotOptions.
	PageSegMode string
}

func (o OCROptions) language() string {
	if o.Language == "" {
		return "eng"
	}
	return o.Language
}

func (o OCROptions) pageSegMode() string {
	if o.PageSegMode == "" {
		return "4"
	}
	return o.PageSegMode
}

// DefaultScreenshotOptions suit payment-app screenshots: a uniform block of
// text rather than statement columns.
func DefaultScreenshotOptions() OCROptions {
	return OCROptions{PageSegMode: "6"}
}

// ExtractImageText runs Tesseract over a single screenshot image and returns
// the recognized text. Engine failures propagate as-is; "nothing found" does
// not.
func ExtractImageText(imagePath string, opts OCROptions) (string, error) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return "", fmt.Errorf("tesseract not available (install tesseract-ocr): %v", err)
	}

	tmpDir, err := os.MkdirTemp("", "screenshot-ocr-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outBase := filepath.Join(tmpDir, "out")
	cmd := exec.Command("tesseract", imagePath, outBase, "-l", opts.language(), "--psm", opts.pageSegMode())
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("tesseract failed: %v (output: %s)", err, string(out))
	}

	data, err := os.ReadFile(outBase + ".txt")
	if err != nil {
		return "", fmt.Errorf("tesseract produced no output file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ExtractTextOCR rasterizes a scanned PDF with pdftoppm and OCRs each page.
// Used when every text-layer extraction method fails the readability gate.
func ExtractTextOCR(filePath string, opts OCROptions) ([]string, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, fmt.Errorf("pdftoppm not available (install poppler-utils): %v", err)
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return nil, fmt.Errorf("tesseract not available (install tesseract-ocr): %v", err)
	}

	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	// 300 DPI gives tesseract enough to work with on statement tables.
	imgPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.Command("pdftoppm", "-r", "300", "-png", filePath, imgPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %v (output: %s)", err, string(out))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}
	var images []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			images = append(images, filepath.Join(tmpDir, e.Name()))
		}
	}
	sort.Strings(images)
	if len(images) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no page images")
	}

	var pages []string
	for _, img := range images {
		text, err := ExtractImageText(img, opts)
		if err != nil {
			// Some pages may still OCR fine.
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("tesseract produced no text from %d page images", len(images))
	}
	return pages, nil
}
