package karma

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is an entry of Karma's files list. A plain pattern is served and
// included in the test page; a descriptor controls both explicitly.
type File struct {
	Pattern    string
	Included   bool
	Served     bool
	Descriptor bool
}

// Pattern returns a plain file entry.
func Pattern(p string) File {
	return File{Pattern: p, Included: true, Served: true}
}

// ServedOnly returns a descriptor entry that is available over the test server
// but not injected into the page.
func ServedOnly(p string) File {
	return File{Pattern: p, Included: false, Served: true, Descriptor: true}
}

type fileDescriptor struct {
	Pattern  string `json:"pattern" yaml:"pattern"`
	Included *bool  `json:"included,omitempty" yaml:"included,omitempty"`
	Served   *bool  `json:"served,omitempty" yaml:"served,omitempty"`
}

func (f File) descriptor() fileDescriptor {
	included, served := f.Included, f.Served
	return fileDescriptor{Pattern: f.Pattern, Included: &included, Served: &served}
}

func fromDescriptor(d fileDescriptor) (File, error) {
	if d.Pattern == "" {
		return File{}, fmt.Errorf("file descriptor requires a pattern")
	}
	f := File{Pattern: d.Pattern, Included: true, Served: true, Descriptor: true}
	if d.Included != nil {
		f.Included = *d.Included
	}
	if d.Served != nil {
		f.Served = *d.Served
	}
	return f, nil
}

// MarshalJSON emits a plain pattern as a string and a descriptor as an object.
func (f File) MarshalJSON() ([]byte, error) {
	if !f.Descriptor {
		return json.Marshal(f.Pattern)
	}
	return json.Marshal(f.descriptor())
}

// UnmarshalJSON accepts either form.
func (f *File) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = Pattern(s)
		return nil
	}
	var d fileDescriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("file entry must be a string or an object: %w", err)
	}
	parsed, err := fromDescriptor(d)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (f File) MarshalYAML() (interface{}, error) {
	if !f.Descriptor {
		return f.Pattern, nil
	}
	return f.descriptor(), nil
}

// UnmarshalYAML accepts a scalar pattern or a mapping descriptor.
func (f *File) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*f = Pattern(value.Value)
		return nil
	case yaml.MappingNode:
		var d fileDescriptor
		if err := value.Decode(&d); err != nil {
			return err
		}
		parsed, err := fromDescriptor(d)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*f = parsed
		return nil
	default:
		return fmt.Errorf("line %d: file entry must be a string or a mapping", value.Line)
	}
}
