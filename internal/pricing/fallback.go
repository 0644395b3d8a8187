package pricing

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ParseYAML decodes a pricing document such as defaults.yaml.
func ParseYAML(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("pricing: parse yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Fallback returns a fresh copy of the built-in table for productLine.
// Version 0 marks it as the fallback.
func Fallback(productLine string) *Table {
	t, err := ParseYAML(defaultsYAML)
	if err != nil {
		// defaults.yaml is compiled in; a parse error is a build defect.
		panic(err)
	}
	t.ProductLine = productLine
	return t
}
