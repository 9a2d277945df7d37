package extraction

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	maxTextBytes     = 100 * 1024 // 100KB cap for extracted text
	scannedThreshold = 50         // chars per page below which a PDF is considered scanned
	asyncPageLimit   = 2          // receipts longer than this go through the job store
)

// ReceiptText is the raw-text view of an uploaded PDF receipt.
type ReceiptText struct {
	PageCount int
	Text      string
	Lines     []string
	IsScanned bool
	Err       error
}

// AnalyzeReceiptPDF pulls plain text out of a PDF receipt. It never
// panics: any failure inside the pdf library is recovered and reported
// through the Err field, with IsScanned set so callers treat the
// document as text-less.
func AnalyzeReceiptPDF(data []byte) (result *ReceiptText) {
	result = &ReceiptText{
		PageCount: 1,
		IsScanned: true,
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[pdf-preprocessor] recovered from panic: %v", r)
			result.Err = fmt.Errorf("panic during PDF analysis: %v", r)
			result.IsScanned = true
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		result.Err = fmt.Errorf("open PDF reader: %w", err)
		return result
	}

	result.PageCount = reader.NumPage()
	if result.PageCount < 1 {
		result.PageCount = 1
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		result.Err = fmt.Errorf("extract plain text: %w", err)
		return result
	}

	textBytes, err := io.ReadAll(io.LimitReader(plainText, int64(maxTextBytes)))
	if err != nil {
		result.Err = fmt.Errorf("read plain text: %w", err)
		return result
	}

	result.Text = string(textBytes)
	result.IsScanned = isLikelyScanned(result.Text, result.PageCount)

	for _, line := range strings.Split(result.Text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			result.Lines = append(result.Lines, trimmed)
		}
	}

	return result
}

// isLikelyScanned returns true if the PDF appears to be a scanned image
// (very little extractable text per page).
func isLikelyScanned(text string, pages int) bool {
	if pages <= 0 {
		pages = 1
	}
	return len(text)/pages < scannedThreshold
}

// IsPDF reports whether the data starts with the PDF magic bytes.
func IsPDF(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == "%PDF"
}

// ShouldProcessAsync reports whether a PDF is large enough to warrant
// the async job path instead of an inline response.
func ShouldProcessAsync(data []byte) bool {
	if !IsPDF(data) {
		return false
	}
	defer func() {
		recover() // swallow any panic from the pdf library
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	return reader.NumPage() > asyncPageLimit
}
