// Package main provides the keyboard hook: it forwards slide changes to the
// focused presentation program as arrow key presses.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Request represents the input from the hook executor.
type Request struct {
	Action      string          `json:"action"`
	Slide       int             `json:"slide"`
	TotalSlides int             `json:"total_slides"`
	Config      json.RawMessage `json:"config"`
}

// Response represents the output to the hook executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Config maps presenter actions to key names ("left", "right", "up",
// "down", "space", "pageup", "pagedown").
type Config struct {
	Keys map[string]string `json:"keys"`
}

var defaultKeys = map[string]string{
	"next":     "right",
	"previous": "left",
}

// macKeyCodes are System Events key codes.
var macKeyCodes = map[string]int{
	"left":     123,
	"right":    124,
	"down":     125,
	"up":       126,
	"space":    49,
	"pageup":   116,
	"pagedown": 121,
}

// xdoKeys are xdotool key names.
var xdoKeys = map[string]string{
	"left":     "Left",
	"right":    "Right",
	"down":     "Down",
	"up":       "Up",
	"space":    "space",
	"pageup":   "Prior",
	"pagedown": "Next",
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	key, err := keyFor(req)
	if err != nil {
		writeErrorResponse(err.Error())
		return
	}
	if key == "" {
		writeSuccessResponse(`{"skipped":true}`)
		return
	}

	cmd, err := pressCommand(runtime.GOOS, key)
	if err != nil {
		writeErrorResponse(err.Error())
		return
	}
	if output, err := cmd.CombinedOutput(); err != nil {
		writeErrorResponse(fmt.Sprintf("press %s: %v: %s", key, err, output))
		return
	}

	writeSuccessResponse(fmt.Sprintf(`{"key":%q}`, key))
}

// keyFor returns the key bound to the request's action, or "" when the
// action has no binding.
func keyFor(req Request) (string, error) {
	keys := defaultKeys
	if len(req.Config) > 0 {
		var cfg Config
		if err := json.Unmarshal(req.Config, &cfg); err != nil {
			return "", fmt.Errorf("failed to parse config: %w", err)
		}
		if len(cfg.Keys) > 0 {
			keys = cfg.Keys
		}
	}
	return keys[req.Action], nil
}

// pressCommand builds the command that presses key on the given OS.
func pressCommand(goos, key string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		code, ok := macKeyCodes[key]
		if !ok {
			return nil, fmt.Errorf("unknown key: %s", key)
		}
		script := fmt.Sprintf(`tell application "System Events" to key code %d`, code)
		return exec.Command("osascript", "-e", script), nil
	case "linux":
		name, ok := xdoKeys[key]
		if !ok {
			return nil, fmt.Errorf("unknown key: %s", key)
		}
		return exec.Command("xdotool", "key", name), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

func writeErrorResponse(errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: errMsg})
}

func writeSuccessResponse(data string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: true, Data: json.RawMessage(data)})
}
