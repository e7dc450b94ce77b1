package catalog

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/teranos/assetgen/errors"
)

// MetadataFile is the per-entry metadata document inside a color set.
const MetadataFile = "Contents.json"

// ErrNoColorPayload means a color set's metadata holds no color definition.
var ErrNoColorPayload = errors.New("color set has no color payload")

// ColorComponents are the channel values of a color definition, kept as the
// strings found in the metadata: red, green and blue as hex ("0xAB"), alpha as
// a decimal ("1.000").
type ColorComponents struct {
	Red   string
	Green string
	Blue  string
	Alpha string
}

// contents mirrors colors[].color.components in Contents.json.
// Pointers distinguish a missing channel from an empty one.
type contents struct {
	Colors []colorPayload `json:"colors"`
}

type colorPayload struct {
	Color *struct {
		Components *struct {
			Red   *string `json:"red"`
			Green *string `json:"green"`
			Blue  *string `json:"blue"`
			Alpha *string `json:"alpha"`
		} `json:"components"`
	} `json:"color"`
}

// components checks that the payload carries all four channels.
func (p colorPayload) components(i int) (ColorComponents, error) {
	if p.Color == nil || p.Color.Components == nil {
		return ColorComponents{}, errors.Newf("colors[%d].color.components missing", i)
	}

	c := p.Color.Components
	missing := func(name string) error {
		return errors.Newf("colors[%d].color.components.%s missing", i, name)
	}
	switch {
	case c.Red == nil:
		return ColorComponents{}, missing("red")
	case c.Green == nil:
		return ColorComponents{}, missing("green")
	case c.Blue == nil:
		return ColorComponents{}, missing("blue")
	case c.Alpha == nil:
		return ColorComponents{}, missing("alpha")
	}

	return ColorComponents{
		Red:   *c.Red,
		Green: *c.Green,
		Blue:  *c.Blue,
		Alpha: *c.Alpha,
	}, nil
}

// DecodeColor reads the first color definition of a color set entry.
// Any structural problem is a decode error; see errors.IsDecodeError.
func DecodeColor(fs afero.Fs, entry Entry) (ColorComponents, error) {
	path := filepath.Join(entry.Path, MetadataFile)

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return ColorComponents{}, errors.WrapDecode(err, "failed to read "+path)
	}

	comps, err := ParseColor(data)
	if err != nil {
		return ColorComponents{}, errors.WrapDecode(err, "failed to decode "+path)
	}
	return comps, nil
}

// ParseColor decodes the first color definition from Contents.json bytes.
// Every payload in colors must be well formed, not only the first.
func ParseColor(data []byte) (ColorComponents, error) {
	var doc contents
	if err := json.Unmarshal(data, &doc); err != nil {
		return ColorComponents{}, errors.Wrap(err, "invalid JSON")
	}

	if len(doc.Colors) == 0 {
		return ColorComponents{}, ErrNoColorPayload
	}

	var first ColorComponents
	for i, payload := range doc.Colors {
		comps, err := payload.components(i)
		if err != nil {
			return ColorComponents{}, err
		}
		if i == 0 {
			first = comps
		}
	}
	return first, nil
}
