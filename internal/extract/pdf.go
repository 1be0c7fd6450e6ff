// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF pulls the text of every page, joined with blank lines.
func extractPDF(data []byte) (text string, err error) {
	// The pdf library panics on some malformed inputs; contain that to the
	// single ExtractionFailed kind like any other parse error.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = failed("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", failed("PDF open: %v", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not fail the document.
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(content)
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", failed("PDF contains no extractable text")
	}
	return out, nil
}
