// Package display renders command results for humans (pterm) or machines (JSON).
package display

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/teranos/assetgen/errors"
)

// JSONEnv forces JSON output when set to a true value, e.g. in CI log collectors
const JSONEnv = "ASSETGEN_JSON"

// ShouldOutputJSON determines if a command should output JSON based on flags and environment
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd != nil {
		// Check if --json flag was explicitly set on the command
		if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
			v, _ := strconv.ParseBool(f.Value.String())
			return v
		}

		// Check global --json flag
		if globalFlag, err := cmd.Root().PersistentFlags().GetBool("json"); err == nil && globalFlag {
			return true
		}
	}

	v, _ := strconv.ParseBool(os.Getenv(JSONEnv))
	return v
}

// OutputJSON marshals v and writes it to w followed by a newline
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
