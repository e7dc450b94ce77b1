// Package staleness decides whether a generated file needs regenerating by
// comparing its modification time with the asset folders it was built from.
package staleness

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
)

// Decision is the outcome of a staleness check.
type Decision struct {
	Regenerate bool
	// Reason is a short human-readable explanation, suitable for logs
	Reason string
	// Trigger is the folder that was found newer than the output, if any
	Trigger string
}

// Check reports whether output must be regenerated from folders.
//
// With optimize off it always regenerates. Otherwise an unreadable or missing
// output timestamp means "cannot tell" and the answer is no: a misconfigured
// environment must not clobber an existing file. Folders whose timestamp cannot
// be read are ignored. The first folder strictly newer than the output triggers
// regeneration.
func Check(fs afero.Fs, output string, folders []string, optimize bool) Decision {
	if !optimize {
		return Decision{Regenerate: true, Reason: "date optimization disabled"}
	}

	outTime, ok := ModTime(fs, output)
	if !ok {
		return Decision{Reason: fmt.Sprintf("couldn't get %s file date", output)}
	}

	for _, folder := range folders {
		t, ok := ModTime(fs, folder)
		if !ok {
			continue
		}
		if t.After(outTime) {
			return Decision{
				Regenerate: true,
				Reason:     fmt.Sprintf("%s changed after %s", folder, output),
				Trigger:    folder,
			}
		}
	}

	return Decision{Reason: "up to date"}
}

// ModTime returns a path's modification time, or false when it cannot be read.
func ModTime(fs afero.Fs, path string) (time.Time, bool) {
	info, err := fs.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}
