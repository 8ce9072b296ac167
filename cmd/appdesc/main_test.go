package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/agripots/appdesc/internal/descriptor"
)

// syncBuffer is a bytes.Buffer safe for the watcher goroutine.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// workspace is a temp dir holding a tool config and a descriptor.
type workspace struct {
	dir        string
	config     string
	descriptor string
}

func newWorkspace(t *testing.T, toolConfig string) *workspace {
	t.Helper()

	dir := t.TempDir()
	ws := &workspace{
		dir:        dir,
		config:     filepath.Join(dir, ".appdesc.yaml"),
		descriptor: filepath.Join(dir, "appdesc.yaml"),
	}
	content := "logging:\n  format: json\n  output: " + filepath.Join(dir, "appdesc.log") + "\n" + toolConfig
	require.NoError(t, os.WriteFile(ws.config, []byte(content), 0o600))
	require.NoError(t, descriptor.Write(ws.descriptor, descriptor.Default()))
	return ws
}

// command builds a stand-in for a subcommand with the global flags, the
// given local flag registrations and output captured.
func (ws *workspace) command(t *testing.T, out *syncBuffer, overrides []string, flags ...func(*cobra.Command)) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String(flagConfig, ws.config, "")
	cmd.Flags().StringP(flagFile, "f", ws.descriptor, "")
	cmd.Flags().StringArray(flagSet, overrides, "")
	for _, add := range flags {
		add(cmd)
	}
	cmd.SetOut(out)
	cmd.SetContext(context.Background())
	return cmd
}
