package shortcode

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

// RegisterBuiltIns registers the built-in Markdoc tag definitions on the
// provided registry. An empty names list registers the full catalogue;
// otherwise only the named tags are registered, and an unknown name fails
// the whole call so a typo in configuration surfaces at startup.
func RegisterBuiltIns(registry interfaces.ShortcodeRegistry, names []string) error {
	if registry == nil {
		return fmt.Errorf("shortcode: registry is required")
	}

	builtins := BuiltInDefinitions()

	if len(names) == 0 {
		for _, def := range builtins {
			if err := registry.Register(def); err != nil {
				return err
			}
		}
		return nil
	}

	available := make(map[string]interfaces.ShortcodeDefinition, len(builtins))
	for _, def := range builtins {
		available[strings.ToLower(strings.TrimSpace(def.Name))] = def
	}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		def, ok := available[key]
		if !ok {
			return fmt.Errorf("shortcode: built-in %q not found", name)
		}
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}
