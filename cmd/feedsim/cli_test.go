// Package main tests document the expected behavior of the feedsim CLI.
//
// These are BLACK BOX tests - they test the CLI by executing the binary
// and checking stdout/stderr output.
//
// External dependencies mocked:
// - The feed API and agent endpoint via FEEDSIM_FEED_URL / FEEDSIM_AGENT_URL
//
// Test requirements (this file serves as documentation):
// - CLI has a root command with version info
// - "peek" prints a deterministic mock pool for a platform
// - "forward --once" performs one rotation against the configured feed
// - Commands validate required arguments
// - Error messages are helpful
package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

var binaryPath string

// TestMain builds the binary once before running tests.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "feedsim-test")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "feedsim")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = "."
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

// runCLI executes the CLI binary with given arguments and environment.
func runCLI(t *testing.T, env map[string]string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)

	cmd.Env = os.Environ()
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	var outBuf, errBuf strings.Builder
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	exitCode = 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else if err != nil {
		t.Fatalf("failed to run command: %v", err)
	}

	return outBuf.String(), errBuf.String(), exitCode
}

// runCLISimple runs CLI without custom environment.
func runCLISimple(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	return runCLI(t, nil, args...)
}

// TestRootCommand_Help verifies help output shows available commands.
func TestRootCommand_Help(t *testing.T) {
	stdout, _, _ := runCLISimple(t, "--help")
	output := strings.ToLower(stdout)

	expects := []string{"feedsim", "usage", "serve", "agent", "forward", "peek"}
	for _, want := range expects {
		if !strings.Contains(output, want) {
			t.Errorf("help should contain %q, got:\n%s", want, stdout)
		}
	}
}

// TestRootCommand_Version verifies version output.
func TestRootCommand_Version(t *testing.T) {
	stdout, _, _ := runCLISimple(t, "--version")

	if !strings.Contains(stdout, "feedsim version") {
		t.Errorf("version should show 'feedsim version', got:\n%s", stdout)
	}
}

// TestPeekCommand_RequiresPlatform verifies peek needs a platform argument.
func TestPeekCommand_RequiresPlatform(t *testing.T) {
	_, stderr, exitCode := runCLISimple(t, "peek")

	if exitCode == 0 {
		t.Error("should fail without platform argument")
	}
	if !strings.Contains(strings.ToLower(stderr), "arg") {
		t.Errorf("error should mention the missing argument, got:\n%s", stderr)
	}
}

// TestPeekCommand_RejectsUnknownPlatform verifies only the five platforms
// are accepted.
func TestPeekCommand_RejectsUnknownPlatform(t *testing.T) {
	_, stderr, exitCode := runCLISimple(t, "peek", "myspace")

	if exitCode == 0 {
		t.Error("should fail with unknown platform")
	}
	if !strings.Contains(strings.ToLower(stderr), "unsupported") {
		t.Errorf("error should mention unsupported platform, got:\n%s", stderr)
	}
}

// TestPeekCommand_DeterministicOutput verifies the same platform and day
// always print the same pool.
func TestPeekCommand_DeterministicOutput(t *testing.T) {
	first, _, exitCode := runCLISimple(t, "peek", "twitter", "--count", "3", "--day", "10")
	if exitCode != 0 {
		t.Fatalf("peek should succeed, got exit code %d", exitCode)
	}
	second, _, _ := runCLISimple(t, "peek", "twitter", "--count", "3", "--day", "10")

	if first != second {
		t.Errorf("peek output should be deterministic:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	if !strings.Contains(first, "twitter (3 events)") {
		t.Errorf("peek should print a page header with the event count, got:\n%s", first)
	}
}

// TestForwardCommand_OnceRotatesAllPlatforms verifies a single rotation
// fetches every platform feed and posts each envelope to the agent.
func TestForwardCommand_OnceRotatesAllPlatforms(t *testing.T) {
	// Mock feed: exhausted envelopes for every platform spelling.
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"children": [], "after": null}, "meta": {}, "paging": {}, "pagination": {"has_more_items": false}, "events": [], "reports": []}`))
	}))
	defer feed.Close()

	var forwarded atomic.Int64
	agent := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "received", "data_length": 0}`))
	}))
	defer agent.Close()

	env := map[string]string{
		"FEEDSIM_FEED_URL":  feed.URL,
		"FEEDSIM_AGENT_URL": agent.URL + "/agent",
	}

	_, stderr, exitCode := runCLI(t, env, "forward", "--once")

	if exitCode != 0 {
		t.Errorf("forward --once should succeed, got exit code %d, stderr:\n%s", exitCode, stderr)
	}
	if got := forwarded.Load(); got != 5 {
		t.Errorf("one rotation should forward 5 envelopes, got %d", got)
	}
}
