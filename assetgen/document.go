// Package assetgen turns asset catalog entries into a language-agnostic
// Document of named declarations. Formatters in subpackages render a Document
// as source code for one target language.
package assetgen

import (
	"strings"
	"time"

	"github.com/teranos/assetgen/catalog"
)

// ValueKind distinguishes inlined values from runtime lookups.
type ValueKind int

const (
	// ValueColorLiteral is a color resolved at generation time
	ValueColorLiteral ValueKind = iota
	// ValueLookup defers resolution to a runtime named lookup
	ValueLookup
)

// Value is the right-hand side of a declaration.
type Value struct {
	Kind ValueKind

	// Hex is the combined RGB literal, e.g. "0xAB1234" (color literals only)
	Hex string
	// Alpha is the decimal alpha literal, e.g. "1" (color literals only)
	Alpha string

	// Key is the lookup name (lookups only)
	Key string
	// Bundle is the resource bundle expression the lookup resolves against
	Bundle string
}

// Declaration is one named accessor in the generated document.
type Declaration struct {
	Name  string
	Value Value
}

// Document is the rendered-to-be output for one catalog.
type Document struct {
	// GeneratedAt feeds the human-readable header comment only
	GeneratedAt time.Time

	Kind catalog.Kind

	// Container names the namespace-like construct wrapping the declarations
	Container string

	// Package is the package or module name for targets that need one
	Package string

	// Declarations are in catalog scan order
	Declarations []Declaration
}

// Names returns the declaration identifiers in order.
func (d *Document) Names() []string {
	names := make([]string, len(d.Declarations))
	for i, decl := range d.Declarations {
		names[i] = decl.Name
	}
	return names
}

// Timestamp formats GeneratedAt for the header comment. The format is for
// humans and is never parsed back.
func (d *Document) Timestamp() string {
	return d.GeneratedAt.Format("1/2/06, 3:04 PM")
}

// Formatter renders a Document for one target language.
type Formatter interface {
	// Render produces the complete file contents
	Render(doc *Document) ([]byte, error)

	// FileExtension returns the output extension without dot (e.g., "swift", "go")
	FileExtension() string

	// Language returns the target language name
	Language() string
}

// timestampPrefix starts the header line that changes on every run.
const timestampPrefix = "Generated on"

// IsTimestampLine reports whether line is a generated-on header comment in
// any formatter's comment style.
func IsTimestampLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return false
	}
	body := strings.TrimSpace(strings.TrimPrefix(trimmed, "//"))
	return strings.HasPrefix(body, timestampPrefix)
}

// TimestampComment returns the header line for doc without comment markers.
func TimestampComment(doc *Document) string {
	return timestampPrefix + " " + doc.Timestamp()
}
