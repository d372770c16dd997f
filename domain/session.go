package domain

import (
	"context"
	"io"
)

// SessionState is a state of the interactive session
type SessionState int

const (
	StateAwaitingSource SessionState = iota
	StateFormatting
	StateFormattedOK
	StateFormattedError
	StateAwaitingCommand
	StateExporting
	StateAnalyzing
	StateTerminated
)

var sessionStateNames = map[SessionState]string{
	StateAwaitingSource:  "AwaitingSource",
	StateFormatting:      "Formatting",
	StateFormattedOK:     "FormattedOK",
	StateFormattedError:  "FormattedError",
	StateAwaitingCommand: "AwaitingCommand",
	StateExporting:       "Exporting",
	StateAnalyzing:       "Analyzing",
	StateTerminated:      "Terminated",
}

func (s SessionState) String() string {
	if name, ok := sessionStateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Command is a single-keystroke menu command
type Command rune

const (
	CmdCopy       Command = 'c'
	CmdSave       Command = 's'
	CmdExportMenu Command = 'p'
	CmdImage      Command = 'i'
	CmdWord       Command = 'w'
	CmdAnalyze    Command = 'a'
	CmdQuit       Command = 'q'
)

// MenuEntry describes one command in the menu
type MenuEntry struct {
	Key         Command
	Description string
}

// SessionInput supplies the user's text and keystrokes
type SessionInput interface {
	// ReadSource reads free-form text until end-of-input
	ReadSource(ctx context.Context) (string, error)

	// ReadKey reads a single keystroke. io.EOF means no more input.
	ReadKey(ctx context.Context) (rune, error)

	// ReadLine reads one line of text, without the line terminator
	ReadLine(ctx context.Context) (string, error)
}

// SessionView renders session output for the user
type SessionView interface {
	SourcePrompt()
	ShowFormatted(result *FormattedResult)
	ShowMenu(entries []MenuEntry)
	ShowSubmenu(title string, entries []MenuEntry)
	Prompt(message string)
	ShowReport(report *AnalysisReport)
	Success(message string)
	Error(message string)
	Info(message string)
	Writer() io.Writer
}
