// Package plugin runs external hook programs when presenter actions execute.
package plugin

import "encoding/json"

// ManifestFile is the manifest name looked up in every plugin directory.
const ManifestFile = "plugin.json"

// Manifest describes a plugin and the actions it listens to.
type Manifest struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Executable  string `json:"executable"`
	// Actions lists the presenter actions that trigger the plugin
	// ("next", "previous", "erase").
	Actions []string        `json:"actions"`
	Config  json.RawMessage `json:"config,omitempty"`
}

// Request is written as JSON to the plugin's stdin.
type Request struct {
	Action      string          `json:"action"`
	SessionID   string          `json:"session_id,omitempty"`
	Frame       uint64          `json:"frame"`
	Slide       int             `json:"slide"`
	TotalSlides int             `json:"total_slides"`
	SlideName   string          `json:"slide_name,omitempty"`
	Config      json.RawMessage `json:"config,omitempty"`
}

// Response is read as JSON from the plugin's stdout.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Handles reports whether the plugin subscribes to action.
func (p *Plugin) Handles(action string) bool {
	for _, a := range p.Manifest.Actions {
		if a == action {
			return true
		}
	}
	return false
}
