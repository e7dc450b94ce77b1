// Package geotime resolves the timezone used for generated-file timestamps.
package geotime

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/teranos/assetgen/errors"
)

var timezoneByAbbreviation = map[string]string{
	"utc":  "UTC",
	"gmt":  "UTC",
	"pst":  "America/Los_Angeles",
	"pdt":  "America/Los_Angeles",
	"est":  "America/New_York",
	"edt":  "America/New_York",
	"cst":  "America/Chicago",
	"cdt":  "America/Chicago",
	"mst":  "America/Denver",
	"mdt":  "America/Denver",
	"bst":  "Europe/London",
	"cet":  "Europe/Berlin",
	"cest": "Europe/Berlin",
	"ist":  "Asia/Kolkata",
	"sgt":  "Asia/Singapore",
	"hkt":  "Asia/Hong_Kong",
	"jst":  "Asia/Tokyo",
	"aest": "Australia/Sydney",
}

// Local is the config value selecting the host timezone.
const Local = "local"

// NormalizeTimezone attempts to resolve user input into a valid IANA timezone.
// Empty input and "local" resolve to Local.
func NormalizeTimezone(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || strings.EqualFold(trimmed, Local) {
		return Local, nil
	}

	if isValidTimezone(trimmed) {
		if canonical := canonicalizeValidTimezone(trimmed); canonical != "" {
			return canonical, nil
		}
		return trimmed, nil
	}

	// Try sanitizing only if the raw input isn't valid
	candidate := sanitizeTimezone(trimmed)
	if isValidTimezone(candidate) {
		return candidate, nil
	}

	if tz, ok := timezoneByAbbreviation[strings.ToLower(trimmed)]; ok {
		return tz, nil
	}

	return "", errors.Newf("unknown timezone: %s", input)
}

// Location returns the *time.Location for a configured timezone.
func Location(input string) (*time.Location, error) {
	tz, err := NormalizeTimezone(input)
	if err != nil {
		return nil, err
	}
	if tz == Local {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load timezone %s", tz)
	}
	return loc, nil
}

// Resolve returns the zone name a configured timezone stands for.
// Local resolves to the detected host zone, or stays Local when detection fails.
func Resolve(input string) (string, error) {
	tz, err := NormalizeTimezone(input)
	if err != nil {
		return "", err
	}
	if tz != Local {
		return tz, nil
	}
	if detected, err := DetectLocalTimezone(); err == nil {
		return detected, nil
	}
	return Local, nil
}

// DetectLocalTimezone attempts to determine the host operating system timezone.
func DetectLocalTimezone() (string, error) {
	if tz := os.Getenv("TZ"); tz != "" {
		if isValidTimezone(tz) {
			return tz, nil
		}
	}

	if name := time.Now().Location().String(); name != "" && name != "Local" {
		if isValidTimezone(name) {
			return name, nil
		}
	}

	if data, err := os.ReadFile("/etc/timezone"); err == nil {
		tz := sanitizeTimezone(string(data))
		if isValidTimezone(tz) {
			return tz, nil
		}
	}

	if tz, err := readZoneinfoSymlink("/etc/localtime"); err == nil && tz != "" {
		return tz, nil
	}

	return "", errors.New("could not detect local timezone: tried TZ env var, time.Now().Location(), /etc/timezone, /etc/localtime")
}

func readZoneinfoSymlink(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	idx := strings.Index(resolved, "zoneinfo")
	if idx == -1 {
		return "", errors.New("zoneinfo segment not found")
	}
	candidate := strings.TrimPrefix(resolved[idx+len("zoneinfo"):], string(filepath.Separator))
	candidate = sanitizeTimezone(filepath.ToSlash(candidate))
	if isValidTimezone(candidate) {
		return candidate, nil
	}
	return "", errors.Newf("invalid timezone: %q (from %s)", candidate, path)
}

func sanitizeTimezone(tz string) string {
	trimmed := strings.Trim(strings.TrimSpace(tz), "\"'")
	trimmed = strings.ReplaceAll(trimmed, " ", "_")
	parts := strings.Split(trimmed, "/")
	for i, part := range parts {
		parts[i] = title(part)
	}
	return strings.Join(parts, "/")
}

func title(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func isValidTimezone(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// canonicalizeValidTimezone fixes capitalization ("america/new_york") but
// leaves properly formatted names such as "America/Port_of_Spain" alone.
func canonicalizeValidTimezone(tz string) string {
	if !hasIncorrectCapitalization(tz) {
		return ""
	}
	candidate := sanitizeTimezone(tz)
	if isValidTimezone(candidate) && candidate != tz {
		return candidate
	}
	return ""
}

func hasIncorrectCapitalization(tz string) bool {
	if strings.ToLower(tz) == tz {
		return true
	}
	for _, part := range strings.Split(tz, "/") {
		if len(part) > 0 && part[0] >= 'a' && part[0] <= 'z' {
			return true
		}
	}
	return false
}

// ValidateTimezone reports whether a configured timezone can be resolved.
func ValidateTimezone(tz string) error {
	_, err := NormalizeTimezone(tz)
	return err
}
