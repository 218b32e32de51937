package model

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Pipeline is a named ordered sequence of steps. Steps run strictly in
// order; the first fatal failure aborts the rest.
type Pipeline struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// ParsePipeline decodes and validates a pipeline from YAML bytes.
func ParsePipeline(data []byte) (*Pipeline, error) {
	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, goerr.Wrap(err, "failed to parse pipeline YAML")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParsePipelineFile reads and parses a pipeline YAML file.
func ParsePipelineFile(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is a user-supplied pipeline file
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read pipeline file "+path)
	}
	return ParsePipeline(data)
}

func (p *Pipeline) Validate() error {
	if p.Name == "" {
		return goerr.New("pipeline must have a name")
	}
	if len(p.Steps) == 0 {
		return goerr.New("pipeline " + p.Name + " has no steps")
	}
	seen := make(map[string]bool, len(p.Steps))
	for _, step := range p.Steps {
		if err := step.Validate(); err != nil {
			return err
		}
		if seen[step.Name] {
			return goerr.New("duplicate step name " + step.Name)
		}
		seen[step.Name] = true
	}
	return nil
}
