// Package validation checks the network-facing values lwcswitch accepts:
// the panel server host, configured browser origins and the Origin header
// of incoming WebSocket requests.
package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// hostDangerous are characters that never appear in a listen host.
var hostDangerous = []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\", " ", "/", "\n", "\r"}

// urlDangerous are characters rejected anywhere in an origin.
var urlDangerous = []string{";", "&", "|", "`", "$", "(", ")", "<", ">", "\"", "'", "\\", "\n", "\r", " "}

// ValidateHost validates a listen host. The empty host means all interfaces.
func ValidateHost(host string) error {
	for _, char := range hostDangerous {
		if strings.Contains(host, char) {
			return fmt.Errorf("host contains invalid character %q", char)
		}
	}
	return nil
}

// ValidateURL validates an http or https URL with a hostname.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme %q (only http/https allowed)", parsed.Scheme)
	}

	for _, char := range urlDangerous {
		if strings.Contains(rawURL, char) {
			return fmt.Errorf("URL contains invalid character %q", char)
		}
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	return nil
}

// ValidateOriginFormat validates a configured origin: a scheme and host
// with no path, query or credentials. Any scheme is accepted so editor
// webview origins can be listed.
func ValidateOriginFormat(origin string) error {
	for _, char := range urlDangerous {
		if strings.Contains(origin, char) {
			return fmt.Errorf("origin contains invalid character %q", char)
		}
	}
	parsed, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("origin %q must be scheme://host[:port]", origin)
	}
	if parsed.User != nil {
		return fmt.Errorf("origin %q must not carry credentials", origin)
	}
	if (parsed.Path != "" && parsed.Path != "/") || parsed.RawQuery != "" || parsed.Fragment != "" {
		return fmt.Errorf("origin %q must be scheme://host[:port]", origin)
	}
	return nil
}

// ValidateOrigin validates a request Origin header. The origin passes when
// it equals one of allowedOrigins or its host equals one of allowedHosts.
func ValidateOrigin(origin string, allowedOrigins, allowedHosts []string) error {
	if origin == "" {
		return fmt.Errorf("origin header is required")
	}

	for _, allowed := range allowedOrigins {
		if origin == strings.TrimSuffix(allowed, "/") {
			return nil
		}
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin format: %w", err)
	}
	if originURL.Scheme != "http" && originURL.Scheme != "https" {
		return fmt.Errorf("invalid origin scheme %q: only http and https are allowed", originURL.Scheme)
	}

	for _, host := range allowedHosts {
		if host != "" && originURL.Host == host {
			return nil
		}
	}

	return fmt.Errorf("origin %q is not allowed", origin)
}
