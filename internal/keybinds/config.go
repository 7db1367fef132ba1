package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// FileName is the keybinding override file inside the config directory
const FileName = "keybinds.jsonc"

// Config maps context -> action -> comma separated keys. Comments and
// trailing commas are allowed in the file.
//
//	{
//	  // vim users
//	  "sidebar": {"new_request": "a,n"},
//	  "global":  {"send": "ctrl+r"}
//	}
type Config map[Context]map[Action]string

// LoadConfig reads a keybinding override file
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig parses keybinding overrides
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, fmt.Errorf("invalid %s format: %w", FileName, err)
	}
	return cfg, nil
}

// ApplyConfig applies user overrides to a registry. An action listed in a
// context loses its default keys in that context.
func ApplyConfig(registry *Registry, cfg Config) error {
	for context, actions := range cfg {
		if !isKnownContext(context) {
			return fmt.Errorf("unknown keybinding context %q", context)
		}
		for action, keyList := range actions {
			if !IsKnownAction(action) {
				return fmt.Errorf("unknown action %q in context %q", action, context)
			}
			registry.Unbind(context, action)
			for _, key := range splitKeys(keyList) {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("action %q in context %q: %w", action, context, err)
				}
				registry.Register(context, key, action)
			}
		}
	}
	return nil
}

// LoadOrDefault returns the default registry with overrides from path
// applied. A missing file is not an error.
func LoadOrDefault(path string) (*Registry, error) {
	registry := NewDefaultRegistry()

	cfg, err := LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return registry, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load keybindings: %w", err)
	}

	if err := ApplyConfig(registry, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply keybindings: %w", err)
	}
	return registry, nil
}

func splitKeys(keyList string) []string {
	var keys []string
	for _, key := range strings.Split(keyList, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func isKnownContext(context Context) bool {
	for _, known := range Contexts {
		if known == context {
			return true
		}
	}
	return false
}
