package main

import (
	"fmt"
	"os"

	"github.com/teranos/assetgen/cmd/assetgen/commands"
	"github.com/teranos/assetgen/errors"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errors.HintText(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
