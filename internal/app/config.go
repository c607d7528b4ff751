package app

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/value"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PatchPath string // hcl file
	// Outputs restricts evaluation to the named graph outputs. Empty means
	// every declared output.
	Outputs   []string
	Ticks     int
	StartTick uint64
	Quality   string
	// Inputs are raw external input values, keyed by graph input name.
	Inputs map[string]string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	PublishURL       string
	PublishNamespace string
	PublishEvent     string

	// ListKinds prints the registered node kinds instead of running a patch.
	ListKinds bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ListKinds {
		return &cfg, nil
	}
	if cfg.PatchPath == "" {
		return nil, errors.New("PatchPath is a required configuration field and cannot be empty")
	}
	if cfg.Ticks < 1 {
		return nil, fmt.Errorf("ticks must be at least 1, got %d", cfg.Ticks)
	}
	if cfg.StartTick > meta.MaxTick-uint64(cfg.Ticks-1) {
		return nil, fmt.Errorf("start tick %d leaves no room for %d ticks (max tick %d)", cfg.StartTick, cfg.Ticks, meta.MaxTick)
	}
	if cfg.Quality == "" {
		cfg.Quality = meta.Balanced.String()
	}
	if _, err := meta.ParseQuality(cfg.Quality); err != nil {
		return nil, err
	}
	if cfg.PublishURL == "" && (cfg.PublishNamespace != "" || cfg.PublishEvent != "") {
		return nil, errors.New("publish namespace and event require a publish URL")
	}
	if cfg.PublishNamespace == "" {
		cfg.PublishNamespace = "/"
	}

	return &cfg, nil
}

// Metadata returns the metadata the first tick is evaluated with.
func (c *Config) Metadata() meta.Metadata {
	q, err := meta.ParseQuality(c.Quality)
	if err != nil {
		q = meta.Balanced
	}
	return meta.Metadata{Tick: c.StartTick, Quality: q}
}

// ParseInputs converts raw input strings into values. Anything that parses
// as a number becomes a number, "true" and "false" become booleans, and
// everything else is kept as text. "NaN" has no numeric value and stays text.
func ParseInputs(raw map[string]string) graph.Inputs {
	inputs := make(graph.Inputs, len(raw))
	for name, s := range raw {
		inputs[name] = parseInput(s)
	}
	return inputs
}

func parseInput(s string) value.Value {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		if v, err := value.NumberOf(n); err == nil {
			return v
		}
	}
	switch s {
	case "true":
		return value.Bool(true)
	case "false":
		return value.Bool(false)
	}
	return value.Text(s)
}
