package pipeline

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/spendgraph/pkg/errors"
)

// LoadOptionsFile decodes pipeline options from a TOML file:
//
//	width = 1440
//	height = 900
//	left_panel = 325
//	ticks = 1000
//	seed = 42
//	formats = ["svg", "json"]
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadOptionsFile(path string) (Options, error) {
	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Options{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return opts, nil
}
