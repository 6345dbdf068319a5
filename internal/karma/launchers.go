package karma

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Launchers is Karma's customLaunchers object. Entries keep the order they
// were added in and are keyed by launcher name when marshaled; the name is
// not repeated inside an entry.
type Launchers []Launcher

type launcherDescriptor struct {
	Base        string `json:"base" yaml:"base"`
	Platform    string `json:"platform" yaml:"platform"`
	BrowserName string `json:"browserName" yaml:"browserName"`
}

func (l Launcher) descriptor() launcherDescriptor {
	return launcherDescriptor{Base: l.Base, Platform: l.Platform, BrowserName: l.BrowserName}
}

func (d launcherDescriptor) launcher(name string) Launcher {
	return Launcher{Name: name, Base: d.Base, Platform: d.Platform, BrowserName: d.BrowserName}
}

// Get returns the launcher called name.
func (ls Launchers) Get(name string) (Launcher, bool) {
	for _, l := range ls {
		if l.Name == name {
			return l, true
		}
	}
	return Launcher{}, false
}

// Set replaces the launcher with the same name in place or appends l.
func (ls *Launchers) Set(l Launcher) {
	for i := range *ls {
		if (*ls)[i].Name == l.Name {
			(*ls)[i] = l
			return
		}
	}
	*ls = append(*ls, l)
}

// MarshalJSON emits an object whose keys follow the slice order.
func (ls Launchers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range ls {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(l.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(l.descriptor())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the object form back, keeping key order.
func (ls *Launchers) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("customLaunchers must be an object")
	}

	var out Launchers
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var d launcherDescriptor
		if err := dec.Decode(&d); err != nil {
			return fmt.Errorf("launcher %q: %w", name, err)
		}
		out.Set(d.launcher(name))
	}
	*ls = out
	return nil
}

// MarshalYAML mirrors MarshalJSON with an ordered mapping node.
func (ls Launchers) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, l := range ls {
		value := &yaml.Node{}
		if err := value.Encode(l.descriptor()); err != nil {
			return nil, err
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: l.Name}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping of launcher name to descriptor.
func (ls *Launchers) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: customLaunchers must be a mapping", value.Line)
	}
	var out Launchers
	for i := 0; i+1 < len(value.Content); i += 2 {
		var d launcherDescriptor
		if err := value.Content[i+1].Decode(&d); err != nil {
			return err
		}
		out.Set(d.launcher(value.Content[i].Value))
	}
	*ls = out
	return nil
}
