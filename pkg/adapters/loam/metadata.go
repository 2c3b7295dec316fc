package loam

import (
	"fmt"
	"strings"

	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// ModelMetadata is the frontmatter (or JSON/YAML body) of a model document.
// Label lists and tables stay loosely typed so YAML keys such as `1:` and
// integer probabilities decode the same way JSON ones do.
type ModelMetadata struct {
	Name        string `json:"name" mapstructure:"name"`
	Description string `json:"description" mapstructure:"description"`
	States      []any  `json:"states" mapstructure:"states"`
	Symbols     []any  `json:"symbols" mapstructure:"symbols"`
	Initial     any    `json:"initial" mapstructure:"initial"`
	Transition  any    `json:"transition" mapstructure:"transition"`
	Emission    any    `json:"emission" mapstructure:"emission"`
}

// toDefinition converts the document into a domain definition named name.
// A Markdown body becomes the description when none is set explicitly.
func (m ModelMetadata) toDefinition(name, content string) (*domain.Definition, error) {
	raw := map[string]any{
		"states":     m.States,
		"symbols":    m.Symbols,
		"initial":    m.Initial,
		"transition": m.Transition,
		"emission":   m.Emission,
	}

	var def domain.Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &def,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: model %s: %v", domain.ErrInvalidDefinition, name, err)
	}

	def.Name = name
	def.Description = m.Description
	if def.Description == "" {
		def.Description = strings.TrimSpace(content)
	}
	return &def, nil
}
