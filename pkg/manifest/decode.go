package manifest

import (
	"bytes"
	"fmt"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
	"gopkg.in/yaml.v3"
)

const (
	keyEntries  = "entries"
	keySymlinks = "symlinks"
	keyCopies   = "copies"
	keyPlatform = "platform"
)

// entryDoc is the flat on-disk form of one entry
type entryDoc struct {
	Source   string `yaml:"source"`
	Dest     string `yaml:"dest"`
	Type     string `yaml:"type,omitempty"`
	Platform string `yaml:"platform,omitempty"`
}

// document is the flat on-disk form of the manifest
type document struct {
	Entries []entryDoc `yaml:"entries,omitempty"`
}

// rawEntry is a decoded entry before validation, remembering where it came from
type rawEntry struct {
	doc  entryDoc
	line int
}

// decode parses either document shape into raw entries, preserving order.
func decode(data []byte) ([]rawEntry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid YAML")
	}

	// Empty document
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	top := root.Content[0]
	if top.Kind == yaml.ScalarNode && top.Tag == "!!null" {
		return nil, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, errors.Newf(errors.ErrConfigParse, "expected a mapping at the top level (line %d)", top.Line)
	}

	if entries := mappingValue(top, keyEntries); entries != nil {
		return decodeFlat(entries)
	}
	return decodeLegacy(top)
}

func decodeFlat(node *yaml.Node) ([]rawEntry, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, errors.Newf(errors.ErrConfigParse, "%q must be a list (line %d)", keyEntries, node.Line)
	}

	out := make([]rawEntry, 0, len(node.Content))
	for _, item := range node.Content {
		var doc entryDoc
		if err := item.Decode(&doc); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid entry at line %d", item.Line)
		}
		out = append(out, rawEntry{doc: doc, line: item.Line})
	}
	return out, nil
}

func decodeLegacy(top *yaml.Node) ([]rawEntry, error) {
	var out []rawEntry

	group := func(node *yaml.Node, kind types.Kind, platform string) error {
		pairs, err := orderedPairs(node)
		if err != nil {
			return err
		}
		for _, p := range pairs {
			out = append(out, rawEntry{
				doc:  entryDoc{Source: p.key, Dest: p.value, Type: string(kind), Platform: platform},
				line: p.line,
			})
		}
		return nil
	}

	if err := group(mappingValue(top, keySymlinks), types.KindSymlink, ""); err != nil {
		return nil, err
	}
	if err := group(mappingValue(top, keyCopies), types.KindCopy, ""); err != nil {
		return nil, err
	}

	platforms := mappingValue(top, keyPlatform)
	if platforms == nil {
		return out, nil
	}
	if platforms.Kind != yaml.MappingNode {
		return nil, errors.Newf(errors.ErrConfigParse, "%q must be a mapping (line %d)", keyPlatform, platforms.Line)
	}
	for i := 0; i+1 < len(platforms.Content); i += 2 {
		name := platforms.Content[i].Value
		sections := platforms.Content[i+1]
		if sections.Kind != yaml.MappingNode {
			continue
		}
		if err := group(mappingValue(sections, keySymlinks), types.KindSymlink, name); err != nil {
			return nil, err
		}
		if err := group(mappingValue(sections, keyCopies), types.KindCopy, name); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type pair struct {
	key, value string
	line       int
}

// orderedPairs reads a source->dest mapping in document order.
func orderedPairs(node *yaml.Node) ([]pair, error) {
	if node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null") {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, errors.Newf(errors.ErrConfigParse, "expected a source: dest mapping (line %d)", node.Line)
	}
	pairs := make([]pair, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, errors.Newf(errors.ErrConfigParse, "mapping values must be plain paths (line %d)", k.Line)
		}
		pairs = append(pairs, pair{key: k.Value, value: v.Value, line: k.Line})
	}
	return pairs, nil
}

// mappingValue returns the value node for key, or nil. Unknown keys are ignored.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// toEntry validates a raw entry and converts it into the canonical form.
func toEntry(r rawEntry) (types.FileEntry, error) {
	source := types.NormalizeRelPath(r.doc.Source)
	dest := types.NormalizeRelPath(r.doc.Dest)

	if err := checkRelPath("source", source); err != nil {
		return types.FileEntry{}, lineError(err, r.line)
	}
	if err := checkRelPath("dest", dest); err != nil {
		return types.FileEntry{}, lineError(err, r.line)
	}

	kind, err := types.ParseKind(r.doc.Type)
	if err != nil {
		return types.FileEntry{}, lineError(err, r.line)
	}
	platform := types.PlatformFromTag(r.doc.Platform)

	return types.FileEntry{Source: source, Dest: dest, Kind: kind, Platform: platform}, nil
}

func checkRelPath(field, p string) error {
	switch {
	case p == "" || p == ".":
		return fmt.Errorf("%s is required", field)
	case p[0] == '/':
		return fmt.Errorf("%s must be relative: %s", field, p)
	case p == ".." || len(p) > 2 && p[:3] == "../":
		return fmt.Errorf("%s must not escape its base directory: %s", field, p)
	}
	return nil
}

func lineError(err error, line int) error {
	return errors.Wrapf(err, errors.ErrConfigInvalid, "invalid entry at line %d", line).
		WithDetail("line", line)
}

// encode renders entries in the flat shape.
func encode(entries []types.FileEntry) ([]byte, error) {
	doc := document{Entries: make([]entryDoc, 0, len(entries))}
	for _, e := range entries {
		doc.Entries = append(doc.Entries, entryDoc{
			Source:   e.Source,
			Dest:     e.Dest,
			Type:     string(e.Kind),
			Platform: string(e.Platform),
		})
	}
	if len(doc.Entries) == 0 {
		doc.Entries = nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
