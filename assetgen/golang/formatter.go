// Package golang renders asset documents as Go source.
//
// Each document becomes one package-level variable of anonymous struct type,
// named after the container, with one field per declaration. A small value type
// named <Container>Value is emitted alongside so several catalogs can share a
// package.
package golang

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/teranos/assetgen/assetgen"
	"github.com/teranos/assetgen/errors"
)

// DefaultPackage is used when the document names no package.
const DefaultPackage = "assets"

// Formatter implements assetgen.Formatter for Go
type Formatter struct {
	// Filename is reported in formatting errors
	Filename string
}

// NewFormatter creates a Go formatter
func NewFormatter() *Formatter {
	return &Formatter{Filename: "assets.go"}
}

// Language returns "go"
func (f *Formatter) Language() string {
	return "go"
}

// FileExtension returns "go"
func (f *Formatter) FileExtension() string {
	return "go"
}

// Render produces gofmt-clean Go source. Identifiers that are not valid Go
// field names make formatting fail, and so the render.
func (f *Formatter) Render(doc *assetgen.Document) ([]byte, error) {
	if doc.Container == "" {
		return nil, errors.New("go output needs a container name")
	}

	pkg := doc.Package
	if pkg == "" {
		pkg = DefaultPackage
	}
	valueType := doc.Container + "Value"
	literals := hasKind(doc, assetgen.ValueColorLiteral)

	var sb strings.Builder
	sb.WriteString("// Code generated by assetgen. DO NOT EDIT.\n")
	sb.WriteString("// " + assetgen.TimestampComment(doc) + "\n\n")
	sb.WriteString("package " + pkg + "\n\n")

	if literals {
		sb.WriteString(fmt.Sprintf("// %s is a color resolved when the file was generated.\n", valueType))
		sb.WriteString(fmt.Sprintf("type %s struct {\n\tRGB   uint32\n\tAlpha float64\n}\n\n", valueType))
	} else {
		sb.WriteString(fmt.Sprintf("// %s names an asset resolved at runtime.\n", valueType))
		sb.WriteString(fmt.Sprintf("type %s struct {\n\tName   string\n\tBundle string\n}\n\n", valueType))
	}

	sb.WriteString(fmt.Sprintf("// %s lists the %s assets of the catalog.\n", doc.Container, doc.Kind))
	sb.WriteString(fmt.Sprintf("var %s = struct {\n", doc.Container))
	for _, d := range doc.Declarations {
		sb.WriteString(fmt.Sprintf("\t%s %s\n", d.Name, valueType))
	}
	sb.WriteString("}{\n")
	for _, d := range doc.Declarations {
		expr, err := valueExpr(valueType, literals, d.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "declaration %s", d.Name)
		}
		sb.WriteString(fmt.Sprintf("\t%s: %s,\n", d.Name, expr))
	}
	sb.WriteString("}\n")

	out, err := imports.Process(f.Filename, []byte(sb.String()), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "generated Go source does not parse")
	}
	return out, nil
}

func hasKind(doc *assetgen.Document, kind assetgen.ValueKind) bool {
	for _, d := range doc.Declarations {
		if d.Value.Kind == kind {
			return true
		}
	}
	return false
}

func valueExpr(valueType string, literals bool, v assetgen.Value) (string, error) {
	switch v.Kind {
	case assetgen.ValueColorLiteral:
		// Both must be Go numeric literals or the file would not compile
		if _, err := strconv.ParseUint(v.Hex, 0, 32); err != nil {
			return "", errors.Newf("color %q is not a numeric literal", v.Hex)
		}
		if a, err := strconv.ParseFloat(v.Alpha, 64); err != nil || math.IsNaN(a) || math.IsInf(a, 0) {
			return "", errors.Newf("alpha %q is not a numeric literal", v.Alpha)
		}
		return fmt.Sprintf("%s{RGB: %s, Alpha: %s}", valueType, v.Hex, v.Alpha), nil
	case assetgen.ValueLookup:
		if literals {
			return "", errors.New("cannot mix lookups with color literals in one document")
		}
		if v.Bundle == "" {
			return fmt.Sprintf("%s{Name: %s}", valueType, strconv.Quote(v.Key)), nil
		}
		return fmt.Sprintf("%s{Name: %s, Bundle: %s}", valueType, strconv.Quote(v.Key), strconv.Quote(v.Bundle)), nil
	default:
		return "", errors.Newf("unknown value kind %d", v.Kind)
	}
}
