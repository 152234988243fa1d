//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	listings, err := tf.WriteListings(3)
	require.NoError(t, err, "Failed to write listings")

	err = tf.StartApp("-listings", listings)
	require.NoError(t, err, "Failed to start app")

	// Wait for TUI to initialize and render
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("stayfinder"), "Should show stayfinder title")

	// Set up exit monitoring before sending 'q'
	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	t.Logf("Sending 'q' to quit application...")
	tf.Quit()

	// Wait for graceful shutdown
	select {
	case exitErr := <-done:
		require.NoError(t, exitErr, "Process should exit cleanly with 'q'")
		return
	case <-time.After(1500 * time.Millisecond):
		// If 'q' didn't work within 1.5 seconds, use Ctrl+C
		t.Logf("'q' didn't work within 1.5 seconds, using Ctrl+C")
		tf.SendCtrlC()
	}

	select {
	case exitErr := <-done:
		t.Errorf("Process only exited with Ctrl+C (exit code: %v)", exitErr)
	case <-time.After(750 * time.Millisecond):
		t.Error("Application did not exit within total timeout")
		tf.DumpTailOnFail(t, "exit-failure", 4096) // Debug output
		tf.SendCtrlC()                             // Force exit again
	}
}

func TestApplicationExitWithCtrlC(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	err = tf.StartApp()
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("No stays"), "Should start empty without a listing file")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	tf.SendCtrlC()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit after Ctrl+C")
	}
}

func TestMissingListingFileFails(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	err = tf.StartApp("-listings", "does-not-exist.json")
	require.NoError(t, err, "Failed to start app")

	require.True(t, tf.SeePlain("does not exist"), "Should explain the missing file")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()
	select {
	case exitErr := <-done:
		require.Error(t, exitErr, "Should exit with a non-zero status")
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit")
	}
}
