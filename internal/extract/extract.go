// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrExtractionFailed is the single failure kind for document extraction.
var ErrExtractionFailed = errors.New("extraction failed")

// MaxDocumentSize caps uploaded note files (20MB). Larger files are
// rejected before any parsing work.
const MaxDocumentSize = 20 * 1024 * 1024

// failed wraps a reason into the single extraction error kind.
func failed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrExtractionFailed, fmt.Sprintf(format, args...))
}

// =============================================================================
// EXTRACTION
// =============================================================================

// Extract returns the plain text of an uploaded document.
//
// The format is chosen from the file name's extension, falling back to the
// declared MIME type in mimeHint for nameless uploads. Supported:
// .txt, .pdf, .docx.
func Extract(data []byte, name, mimeHint string) (string, error) {
	if len(data) == 0 {
		return "", failed("empty file")
	}
	if len(data) > MaxDocumentSize {
		return "", failed("file too large: %d bytes (max %d)", len(data), MaxDocumentSize)
	}

	switch detectFormat(name, mimeHint) {
	case formatPDF:
		return extractPDF(data)
	case formatDOCX:
		return extractDOCX(data)
	case formatText:
		return extractText(data), nil
	default:
		return "", failed("unsupported file type %q (want .txt, .pdf, or .docx)", filepath.Ext(name))
	}
}

// =============================================================================
// FORMAT DETECTION
// =============================================================================

type format int

const (
	formatUnknown format = iota
	formatText
	formatPDF
	formatDOCX
)

// detectFormat picks the extractor from the extension, then the MIME hint.
func detectFormat(name, mimeHint string) format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md":
		return formatText
	case ".pdf":
		return formatPDF
	case ".docx":
		return formatDOCX
	}

	switch {
	case strings.Contains(mimeHint, "pdf"):
		return formatPDF
	case strings.Contains(mimeHint, "wordprocessingml"), strings.Contains(mimeHint, "msword"):
		return formatDOCX
	case strings.Contains(mimeHint, "plain"), strings.HasPrefix(mimeHint, "text/"):
		return formatText
	}
	return formatUnknown
}

// =============================================================================
// PLAIN TEXT
// =============================================================================

// extractText decodes bytes as UTF-8, replacing invalid sequences rather
// than failing (mirrors a lossy decode).
func extractText(data []byte) string {
	if utf8.Valid(data) {
		return strings.TrimSpace(string(data))
	}
	return strings.TrimSpace(strings.ToValidUTF8(string(data), "�"))
}
