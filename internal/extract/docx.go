// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"bytes"
	"strings"

	docx "github.com/fumiama/go-docx"
)

// extractDOCX pulls the paragraph text of a Word document, one paragraph
// per line.
func extractDOCX(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = failed("malformed DOCX: %v", r)
		}
	}()

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", failed("DOCX open: %v", err)
	}

	var lines []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if line := strings.TrimSpace(para.String()); line != "" {
			lines = append(lines, line)
		}
	}

	out := strings.Join(lines, "\n")
	if out == "" {
		return "", failed("DOCX contains no extractable text")
	}
	return out, nil
}
