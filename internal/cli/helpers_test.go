package cli

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalContext_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	sc := NewSignalContext(parent)
	defer sc.Cancel()

	cancel()
	<-sc.Done()
	assert.Nil(t, sc.Signal(), "no signal captured when cancelled by the parent")
}

func TestIsInterrupted(t *testing.T) {
	assert.True(t, IsInterrupted(context.Canceled))
	assert.True(t, IsInterrupted(fmt.Errorf("replay: %w", context.Canceled)))
	assert.False(t, IsInterrupted(nil))
	assert.False(t, IsInterrupted(fmt.Errorf("boom")))
}
