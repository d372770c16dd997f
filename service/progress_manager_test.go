package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressManager_NonInteractiveWriter(t *testing.T) {
	var buf bytes.Buffer
	pm := NewProgressManager()
	pm.SetWriter(&buf)

	assert.False(t, pm.IsInteractive())

	pm.Start("Formatting", 2)
	pm.Step("a.py")
	pm.Step("b.py")
	pm.Complete(true)

	assert.Empty(t, buf.String(), "no bar is drawn without a terminal")
}

func TestProgressManager_CompleteWithoutStart(t *testing.T) {
	pm := NewProgressManager()
	pm.SetWriter(&bytes.Buffer{})

	assert.NotPanics(t, func() {
		pm.Step("x")
		pm.Complete(false)
	})
}

func TestProgressManager_BarLifecycle(t *testing.T) {
	var buf bytes.Buffer
	pm := &ProgressManagerImpl{writer: &buf, interactive: true}

	pm.Start("Exporting image", 2)
	pm.Step("Rendering HTML")
	assert.NotNil(t, pm.progressBar)

	pm.Complete(false)
	assert.Nil(t, pm.progressBar)
	assert.Contains(t, buf.String(), "Exporting image")
}
