package service

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// ProgressManagerImpl implements the ProgressManager interface
type ProgressManagerImpl struct {
	mu          sync.Mutex
	writer      io.Writer
	progressBar *progressbar.ProgressBar
	interactive bool
	description string
}

// NewProgressManager creates a progress manager writing to stderr
func NewProgressManager() *ProgressManagerImpl {
	pm := &ProgressManagerImpl{}
	pm.SetWriter(os.Stderr)
	return pm
}

// IsInteractiveEnvironment reports whether stdout and stderr are terminals
func IsInteractiveEnvironment() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// Start begins a new bar with the given number of steps
func (pm *ProgressManagerImpl) Start(description string, steps int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.progressBar != nil {
		_ = pm.progressBar.Finish()
	}
	pm.description = description
	pm.progressBar = nil
	if pm.interactive {
		pm.progressBar = pm.createProgressBar(description, steps)
	}
}

// Step advances the bar by one and shows label next to the description
func (pm *ProgressManagerImpl) Step(label string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.progressBar == nil {
		return
	}
	if label != "" {
		pm.progressBar.Describe(fmt.Sprintf("%s: %s", pm.description, label))
	}
	_ = pm.progressBar.Add(1)
}

// Complete finishes the bar. Failed operations are cleared instead of filled.
func (pm *ProgressManagerImpl) Complete(success bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.progressBar == nil {
		return
	}
	if success {
		_ = pm.progressBar.Finish()
	} else {
		_ = pm.progressBar.Clear()
	}
	pm.progressBar = nil
}

// SetWriter sets the output writer for progress bars
func (pm *ProgressManagerImpl) SetWriter(writer io.Writer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.writer = writer

	// Update interactivity check based on new writer
	if file, ok := writer.(*os.File); ok {
		pm.interactive = term.IsTerminal(int(file.Fd()))
	} else {
		pm.interactive = false
	}
}

// IsInteractive returns true if progress bars should be shown
func (pm *ProgressManagerImpl) IsInteractive() bool {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	return pm.interactive
}

// createProgressBar creates a new progress bar with consistent styling
func (pm *ProgressManagerImpl) createProgressBar(description string, max int) *progressbar.ProgressBar {
	writer := pm.writer
	if writer == nil {
		writer = io.Discard
	}

	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWriter(writer),
	)
}

// NoOpProgressManager discards all progress updates
type NoOpProgressManager struct{}

func (NoOpProgressManager) Start(string, int)   {}
func (NoOpProgressManager) Step(string)         {}
func (NoOpProgressManager) Complete(bool)       {}
func (NoOpProgressManager) IsInteractive() bool { return false }

var (
	_ domain.ProgressManager = (*ProgressManagerImpl)(nil)
	_ domain.ProgressManager = NoOpProgressManager{}
)
