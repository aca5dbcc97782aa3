package plugin

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// scriptPlugin writes an executable shell script and returns a Plugin for it.
func scriptPlugin(t *testing.T, dir, name, script string, actions ...string) *Plugin {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	pluginDir := filepath.Join(dir, name)
	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}
	scriptPath := filepath.Join(pluginDir, "run.sh")
	if err := os.WriteFile(scriptPath, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	return &Plugin{
		Manifest:   Manifest{Name: name, Executable: "run.sh", Actions: actions},
		Path:       pluginDir,
		Executable: scriptPath,
	}
}

func TestExecutor_Execute(t *testing.T) {
	plugin := scriptPlugin(t, t.TempDir(), "ok",
		`echo '{"success":true,"data":{"message":"hello world"}}'`+"\n")

	response, err := NewExecutor(5*time.Second).Execute(context.Background(), plugin, Request{Action: "next"})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if !response.Success {
		t.Errorf("expected success=true, got false")
	}

	var data map[string]string
	if err := json.Unmarshal(response.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}
	if data["message"] != "hello world" {
		t.Errorf("expected message 'hello world', got %v", data["message"])
	}
}

func TestExecutor_Execute_ReadsStdin(t *testing.T) {
	// Echo the request back as the response data.
	plugin := scriptPlugin(t, t.TempDir(), "echo", `read -r input
printf '{"success":true,"data":%s}\n' "$input"
`)
	plugin.Manifest.Config = json.RawMessage(`{"keys":{"next":"right"}}`)

	req := Request{Action: "next", Frame: 42, Slide: 3, TotalSlides: 9, SlideName: "04.png"}
	response, err := NewExecutor(5*time.Second).Execute(context.Background(), plugin, req)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	var got Request
	if err := json.Unmarshal(response.Data, &got); err != nil {
		t.Fatalf("failed to unmarshal echoed request: %v", err)
	}
	if got.Action != "next" || got.Frame != 42 || got.Slide != 3 || got.TotalSlides != 9 || got.SlideName != "04.png" {
		t.Errorf("echoed request = %+v", got)
	}
	if string(got.Config) != `{"keys":{"next":"right"}}` {
		t.Errorf("plugin config not attached: %s", got.Config)
	}
}

func TestExecutor_Timeout(t *testing.T) {
	plugin := scriptPlugin(t, t.TempDir(), "slow", "exec sleep 5\n")

	start := time.Now()
	_, err := NewExecutor(100*time.Millisecond).Execute(context.Background(), plugin, Request{Action: "next"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("expected timeout error, got %v", err)
	}
	if time.Since(start) > 3*time.Second {
		t.Error("timeout did not stop the plugin")
	}
}

func TestExecutor_Execute_Failures(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"error response", `echo '{"success":false,"error":"no window"}'` + "\n", "no window"},
		{"invalid json", "echo not-json\n", "parse plugin"},
		{"non-zero exit", "echo boom >&2\nexit 3\n", "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plugin := scriptPlugin(t, t.TempDir(), "p", tt.script)

			_, err := NewExecutor(5*time.Second).Execute(context.Background(), plugin, Request{Action: "next"})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestNewExecutor(t *testing.T) {
	if got := NewExecutor(0).timeout; got != DefaultTimeout {
		t.Errorf("timeout = %s, want %s", got, DefaultTimeout)
	}
	if got := NewExecutor(time.Second).timeout; got != time.Second {
		t.Errorf("timeout = %s, want 1s", got)
	}
}
