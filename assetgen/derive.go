package assetgen

import (
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/teranos/assetgen/catalog"
	"github.com/teranos/assetgen/errors"
)

// Strategy selects how color values are produced.
type Strategy string

const (
	// StrategyEmbed decodes color metadata and inlines the RGBA values
	StrategyEmbed Strategy = "embed"
	// StrategyLookup emits a named lookup resolved at runtime
	StrategyLookup Strategy = "lookup"
)

// ParseStrategy converts a config string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyEmbed:
		return StrategyEmbed, nil
	case StrategyLookup:
		return StrategyLookup, nil
	default:
		return "", errors.Newf("unknown strategy %q (supported: embed, lookup)", s)
	}
}

// Options control document construction for one catalog.
type Options struct {
	Kind      catalog.Kind
	Strategy  Strategy
	Container string
	Package   string
	Bundle    string
	Now       time.Time
}

// Identifier is the public name for an entry: its directory name with the
// extension marker removed, used verbatim.
func Identifier(e catalog.Entry) string {
	return e.Name
}

// ColorLiteral combines the channels into one hex literal. Only green and blue
// lose their "0x" marker; red keeps it and so supplies the literal's prefix.
func ColorLiteral(c catalog.ColorComponents) Value {
	return Value{
		Kind:  ValueColorLiteral,
		Hex:   c.Red + strip0x(c.Green) + strip0x(c.Blue),
		Alpha: c.Alpha,
	}
}

// Lookup returns a runtime named lookup for key.
func Lookup(key, bundle string) Value {
	return Value{Kind: ValueLookup, Key: key, Bundle: bundle}
}

func strip0x(s string) string {
	return strings.ReplaceAll(s, "0x", "")
}

// Derive computes the value for one entry. Images and lookup-strategy colors
// never fail; embedded colors fail when the metadata cannot be decoded.
func Derive(fs afero.Fs, e catalog.Entry, opts Options) (Value, error) {
	if e.Kind == catalog.KindColor && opts.Strategy == StrategyEmbed {
		comps, err := catalog.DecodeColor(fs, e)
		if err != nil {
			return Value{}, err
		}
		return ColorLiteral(comps), nil
	}
	return Lookup(Identifier(e), opts.Bundle), nil
}

// Build derives every entry into a Document. It is all-or-nothing: the first
// failing entry aborts the whole catalog.
func Build(fs afero.Fs, entries []catalog.Entry, opts Options) (*Document, error) {
	if opts.Kind == catalog.KindImage && opts.Strategy == StrategyEmbed {
		return nil, errors.New("embed strategy is only available for colors")
	}

	doc := &Document{
		GeneratedAt:  opts.Now,
		Kind:         opts.Kind,
		Container:    opts.Container,
		Package:      opts.Package,
		Declarations: make([]Declaration, 0, len(entries)),
	}

	for _, e := range entries {
		v, err := Derive(fs, e, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %s", e.Name)
		}
		doc.Declarations = append(doc.Declarations, Declaration{Name: Identifier(e), Value: v})
	}

	return doc, nil
}
