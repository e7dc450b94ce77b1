package am

import (
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/teranos/assetgen/errors"
)

// UnknownKeys decodes a config file strictly and returns the keys no
// configuration field consumes, e.g. "generate.optimise_by_date". Viper
// silently ignores these, so typos otherwise go unnoticed.
func UnknownKeys(configPath string) ([]string, error) {
	var cfg Config
	md, err := toml.DecodeFile(configPath, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", configPath)
	}

	var keys []string
	for _, key := range md.Undecoded() {
		keys = append(keys, key.String())
	}
	sort.Strings(keys)
	return keys, nil
}
