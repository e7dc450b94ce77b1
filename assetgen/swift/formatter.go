// Package swift renders asset documents as Swift source.
package swift

import (
	"fmt"
	"strings"

	"github.com/teranos/assetgen/assetgen"
	"github.com/teranos/assetgen/catalog"
	"github.com/teranos/assetgen/errors"
)

// DefaultBundle is the bundle expression used when a lookup names none.
const DefaultBundle = "Bundle.main"

// Formatter implements assetgen.Formatter for Swift
type Formatter struct {
	// Import is the module imported by the generated file
	Import string
}

// NewFormatter creates a Swift formatter importing UIKit
func NewFormatter() *Formatter {
	return &Formatter{Import: "UIKit"}
}

// Language returns "swift"
func (f *Formatter) Language() string {
	return "swift"
}

// FileExtension returns "swift"
func (f *Formatter) FileExtension() string {
	return "swift"
}

// Render produces the header followed by a public struct holding one static
// constant per declaration.
func (f *Formatter) Render(doc *assetgen.Document) ([]byte, error) {
	if doc.Container == "" {
		return nil, errors.New("swift output needs a container name")
	}

	lines := make([]string, 0, len(doc.Declarations))
	for _, d := range doc.Declarations {
		expr, err := f.valueExpr(doc.Kind, d.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "declaration %s", d.Name)
		}
		lines = append(lines, fmt.Sprintf("public static let %s = %s", d.Name, expr))
	}

	var sb strings.Builder
	sb.WriteString("//Generated file, don't modify!\n")
	sb.WriteString("//" + assetgen.TimestampComment(doc) + "\n")
	if f.Import != "" {
		sb.WriteString("import " + f.Import + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("public struct %s {\n", doc.Container))
	if len(lines) > 0 {
		sb.WriteString("\t" + strings.Join(lines, "\n\t") + "\n")
	}
	sb.WriteString("}\n")

	return []byte(sb.String()), nil
}

func (f *Formatter) valueExpr(kind catalog.Kind, v assetgen.Value) (string, error) {
	switch v.Kind {
	case assetgen.ValueColorLiteral:
		return fmt.Sprintf("UIColor(rgb: %s, alpha: %s)", v.Hex, v.Alpha), nil
	case assetgen.ValueLookup:
		bundle := v.Bundle
		if bundle == "" {
			bundle = DefaultBundle
		}
		switch kind {
		case catalog.KindColor:
			return fmt.Sprintf("UIColor(named: %s, in: %s, compatibleWith: nil)", quote(v.Key), bundle), nil
		case catalog.KindImage:
			return fmt.Sprintf("UIImage(named: %s, in: %s, with: nil)", quote(v.Key), bundle), nil
		}
		return "", errors.Newf("no lookup expression for kind %q", kind)
	default:
		return "", errors.Newf("unknown value kind %d", v.Kind)
	}
}

// quote renders s as a Swift string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
