package capture

import (
	"fmt"
	"sort"
	"strings"
)

var engines = map[string]Engine{
	"rod":      Rod,
	"chromedp": Chromedp,
}

// EngineByName returns the engine registered as name ("rod" or "chromedp").
func EngineByName(name string) (Engine, error) {
	engine, ok := engines[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown browser engine %q (available: %s)", name, strings.Join(EngineNames(), ", "))
	}
	return engine, nil
}

// EngineNames lists the registered engines.
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
