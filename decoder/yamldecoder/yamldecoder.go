// Package yamldecoder enables YAML specifications for modelgen.InitYAML.
// Import it for its side effect:
//
//	import _ "github.com/goliatone/go-modelgen/decoder/yamldecoder"
//
// Keeping the decoder in its own package means JSON-only consumers never
// pull in the yaml dependency.
package yamldecoder

import (
	"gopkg.in/yaml.v3"

	modelgen "github.com/goliatone/go-modelgen"
)

func init() {
	modelgen.RegisterYAMLDecoder(decode)
}

func decode(data []byte) (map[string]any, error) {
	var spec map[string]any
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	return spec, nil
}
