// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and usage text for studymode.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool

	// Command-specific
	Query string // question text for ask
	Mode  string // --mode explain|quiz|review
	Notes string // --notes PATH, reference document
	Image string // --image PATH, image attachment

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `studymode - AI study chat for the terminal

Studymode is a study companion: ask questions, generate quizzes, and
review topics, with your own notes as reference context.

It provides:
  - Three study modes: explain, quiz, review
  - Reference notes from .txt, .pdf, and .docx files
  - Image questions (diagrams, textbook photos)
  - Gemini with automatic OpenAI fallback on quota errors

Usage:
  studymode                     Start TUI (default)
  studymode ask "question"      Ask a single question
  studymode chat                Interactive chat (plain terminal)
  studymode config              Show configuration
  studymode version             Show version
  studymode help                Show this help

Flags for ask:
  --mode MODE     Study mode: explain, quiz, review (default: explain)
  --notes PATH    Load a document as reference notes
  --image PATH    Attach an image to the question
  -q, --quiet     Print the raw answer without markdown rendering

Environment:
  GEMINI_API_KEY    Gemini API key (primary provider)
  OPENAI_API_KEY    OpenAI API key (fallback provider)

Configuration lives in ~/.studymode/config.toml.
`

// Parse parses os.Args into a command and its arguments.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given argument list. Split out for testing.
func ParseArgs(argv []string) (Command, Args) {
	args := Args{}

	if len(argv) == 0 {
		return CmdTUI, args
	}

	cmd := CmdTUI
	rest := argv
	switch strings.ToLower(argv[0]) {
	case "ask":
		cmd = CmdAsk
		rest = argv[1:]
	case "chat":
		cmd = CmdChat
		rest = argv[1:]
	case "config", "cfg":
		cmd = CmdConfig
		rest = argv[1:]
	case "version", "ver", "-v", "--version":
		cmd = CmdVersion
		rest = argv[1:]
	case "help", "-h", "--help":
		cmd = CmdHelp
		rest = argv[1:]
	}

	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		switch arg {
		case "-q", "--quiet":
			args.Quiet = true
		case "--verbose":
			args.Verbose = true
		case "--mode", "-m":
			if i+1 < len(rest) {
				i++
				args.Mode = rest[i]
			}
		case "--notes", "-n":
			if i+1 < len(rest) {
				i++
				args.Notes = rest[i]
			}
		case "--image", "-i":
			if i+1 < len(rest) {
				i++
				args.Image = rest[i]
			}
		default:
			args.Raw = append(args.Raw, arg)
		}
	}

	// Remaining positional args form the question.
	args.Query = strings.Join(args.Raw, " ")

	return cmd, args
}

// HandleHelp prints usage information.
func HandleHelp() {
	fmt.Print(usageText)
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("studymode %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
