package runner

import (
	"path/filepath"

	"github.com/teranos/assetgen/am"
	"github.com/teranos/assetgen/assetgen"
	"github.com/teranos/assetgen/assetgen/golang"
	"github.com/teranos/assetgen/assetgen/swift"
	"github.com/teranos/assetgen/errors"
)

// NewFormatter returns the formatter for a task format
func NewFormatter(format, output string) (assetgen.Formatter, error) {
	switch format {
	case am.FormatSwift:
		return swift.NewFormatter(), nil
	case am.FormatGo:
		f := golang.NewFormatter()
		if output != "" {
			f.Filename = filepath.Base(output)
		}
		return f, nil
	default:
		return nil, errors.Newf("unsupported format %q", format)
	}
}
