package modelgen

import (
	"errors"
	"sync"
)

// YAMLDecodeFunc turns a raw YAML payload into a decoded specification.
type YAMLDecodeFunc func(data []byte) (map[string]any, error)

// ErrYAMLNotEnabled is returned by InitYAML when no YAML decoder has been
// registered. The yaml dependency stays optional for JSON-only consumers.
var ErrYAMLNotEnabled = errors.New(
	`modelgen: yaml support is not enabled: add a blank import of "github.com/goliatone/go-modelgen/decoder/yamldecoder"`,
)

var (
	yamlMu     sync.RWMutex
	yamlDecode YAMLDecodeFunc
)

// RegisterYAMLDecoder installs the decoder InitYAML uses. It follows the
// database/sql driver registration pattern: the decoder/yamldecoder package
// calls this from its init, so a blank import is all callers need.
func RegisterYAMLDecoder(decode YAMLDecodeFunc) {
	if decode == nil {
		panic("modelgen: RegisterYAMLDecoder called with nil decoder")
	}
	yamlMu.Lock()
	defer yamlMu.Unlock()
	yamlDecode = decode
}

func yamlDecoder() (YAMLDecodeFunc, error) {
	yamlMu.RLock()
	defer yamlMu.RUnlock()
	if yamlDecode == nil {
		return nil, ErrYAMLNotEnabled
	}
	return yamlDecode, nil
}
