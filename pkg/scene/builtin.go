package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned for a scene name with no registered builder
var ErrUnknownScene = errors.New("unknown scene")

// Builder constructs a scene for the given image aspect ratio
type Builder func(aspectRatio float64) (*Scene, error)

var builtins = map[string]Builder{
	"cornell": NewCornellScene,
	"veach":   NewVeachScene,
	"fog":     NewFogScene,
	"disney":  NewDisneyScene,
	"spot":    NewSpotScene,
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin constructs and preprocesses a registered scene
func Builtin(name string, aspectRatio float64) (*Scene, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownScene, name, Names())
	}
	s, err := build(aspectRatio)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %q: %w", name, err)
	}
	if err := s.Preprocess(); err != nil {
		return nil, err
	}
	return s, nil
}
