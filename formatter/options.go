package formatter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Option names accepted by ApplyOptions
const (
	OptionMDCKeysToUse   = "mdcKeysToUse"
	OptionCreateMDCField = "createMdcField"
)

// ErrUnknownOption is returned by ApplyOptions for unrecognised names.
var ErrUnknownOption = errors.New("formatter: unknown option")

// Configurable is implemented by layouts that accept the string-encoded
// host options.
type Configurable interface {
	SetMDCKeysToUse(keys string)
	SetCreateMDCField(create string)
}

// ParseMDCKeys splits a comma separated key list. Keys are not trimmed.
// Blank input yields nil.
func ParseMDCKeys(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// ParseBool is a lenient boolean parse: only a case-insensitive "true"
// is true, everything else is false.
func ParseBool(s string) bool {
	return strings.EqualFold(s, "true")
}

// ApplyOptions applies named options to c. Names are matched
// case-insensitively. Known options are applied even when unknown ones
// are present; all unknown names are reported together.
func ApplyOptions(c Configurable, opts map[string]string) error {
	names := make([]string, 0, len(opts))
	for name := range opts {
		names = append(names, name)
	}
	sort.Strings(names)

	var err error
	for _, name := range names {
		value := opts[name]
		switch {
		case strings.EqualFold(name, OptionMDCKeysToUse):
			c.SetMDCKeysToUse(value)
		case strings.EqualFold(name, OptionCreateMDCField):
			c.SetCreateMDCField(value)
		default:
			err = multierr.Append(err, fmt.Errorf("%w: %q", ErrUnknownOption, name))
		}
	}
	return err
}

// ParseYAMLOptions decodes a YAML mapping of option names to values.
// Scalars keep their literal text; a sequence is joined with commas so
// that
//
//	mdcKeysToUse: [user, req]
//
// is equivalent to "user,req".
func ParseYAMLOptions(data []byte) (map[string]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("formatter: parse options: %w", err)
	}

	opts := make(map[string]string)
	if len(root.Content) == 0 {
		return opts, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("formatter: parse options: line %d: expected a mapping", doc.Line)
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, val := doc.Content[i], doc.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			opts[key.Value] = val.Value
		case yaml.SequenceNode:
			items := make([]string, 0, len(val.Content))
			for _, item := range val.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("formatter: parse options: line %d: %s must hold scalars", item.Line, key.Value)
				}
				items = append(items, item.Value)
			}
			opts[key.Value] = strings.Join(items, ",")
		default:
			return nil, fmt.Errorf("formatter: parse options: line %d: unsupported value for %s", val.Line, key.Value)
		}
	}
	return opts, nil
}
