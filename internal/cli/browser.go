package cli

import (
	"net"
	"os/exec"
	"runtime"
	"strings"
)

// browserURL turns a listen address into the URL of the live stream.
func browserURL(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return "http://" + strings.TrimPrefix(listen, "http://") + "/api/stream"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/api/stream"
}

func browserCommand(goos, url string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

func openBrowser(url string) error {
	return browserCommand(runtime.GOOS, url).Start()
}
