// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command handler.
//
// Handles "studymode ask" which sends one question through the
// orchestrator and prints the rendered answer to stdout.
//
// Examples:
//   studymode ask "What is photosynthesis?"
//   studymode ask --mode quiz "The French Revolution"
//   studymode ask --notes chapter3.pdf "Summarize the key points"
//   studymode ask --image diagram.png "Explain this diagram"
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/jeranaias/studymode-tui/internal/extract"
	"github.com/jeranaias/studymode-tui/internal/model"
	"github.com/jeranaias/studymode-tui/internal/util"
)

// askTimeout bounds a one-shot request.
const askTimeout = 2 * time.Minute

// HandleAsk processes the ask command.
func HandleAsk(args Args) {
	if args.Query == "" && args.Image == "" {
		fmt.Fprintln(os.Stderr, "Error: ask requires a question or --image")
		fmt.Fprintln(os.Stderr, `Usage: studymode ask "your question"`)
		os.Exit(1)
	}

	cfg := LoadConfig()
	orch, err := BuildOrchestrator(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mode := model.ModeExplain
	modeName := args.Mode
	if modeName == "" {
		modeName = cfg.Study.DefaultMode
	}
	if modeName != "" {
		parsed, err := model.ParseStudyMode(modeName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q (want explain, quiz, or review)\n", modeName)
			os.Exit(1)
		}
		mode = parsed
	}

	if args.Notes != "" {
		text, err := loadNotes(args.Notes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		orch.SetReferenceContext(text)
	}

	var image *model.Image
	if args.Image != "" {
		img, err := loadImage(args.Image)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		image = img
	}

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	result, err := orch.SubmitTurn(ctx, args.Query, mode, image)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if result.Err != nil {
		// The orchestrator already formatted the failure for display.
		fmt.Fprintln(os.Stderr, result.Text)
		os.Exit(1)
	}

	fmt.Print(renderMarkdown(result.Text, args.Quiet))
}

// loadNotes reads and extracts a reference document.
func loadNotes(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading notes: %w", err)
	}
	text, err := extract.Extract(data, filepath.Base(path), "")
	if err != nil {
		return "", err
	}
	return text, nil
}

// loadImage reads an image attachment.
func loadImage(path string) (*model.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return &model.Image{Data: data, MIME: util.ImageMIME(path)}, nil
}

// renderMarkdown renders text through glamour unless quiet output was
// requested or stdout is not a terminal, falling back to plain text on
// renderer failure.
func renderMarkdown(text string, quiet bool) string {
	if quiet || !term.IsTerminal(int(os.Stdout.Fd())) {
		return text + "\n"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return text + "\n"
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}
