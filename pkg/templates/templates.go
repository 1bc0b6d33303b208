// Package templates renders {{var}} placeholders in configuration files.
//
// Three forms are recognised:
//
//	{{name}}           replaced by the variable, left untouched when unknown
//	{{name|fallback}}  replaced by the variable or fallback
//	{{ENV:NAME}}       replaced by the environment variable, empty when unset
//
// Variables come from the built-in set (hostname, user, home, dotfiles,
// platform, shell, editor) overlaid with .dotfiles/vars.yaml. The vars
// document holds a top-level "vars" mapping and optional "profiles"; the
// active profile's mapping is applied on top of "vars".
package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/paths"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
	"gopkg.in/yaml.v3"
)

// EnvProfile selects the vars.yaml profile, overriding templates.profile
const EnvProfile = "DOTFILES_PROFILE"

// DefaultProfile is used when neither the environment nor settings name one
const DefaultProfile = "default"

var placeholder = regexp.MustCompile(`\{\{(.+?)\}\}`)

// Source records where a variable's value came from.
type Source string

const (
	SourceBuiltin Source = "built-in"
	SourceCustom  Source = "vars.yaml"
)

// Var is one resolved template variable.
type Var struct {
	Name   string
	Value  string
	Source Source
}

// Vars is the resolved variable set used for rendering.
type Vars struct {
	values  map[string]string
	sources map[string]Source
}

// NewVars builds a variable set from built-ins overlaid with custom values.
func NewVars(builtin, custom map[string]string) *Vars {
	v := &Vars{values: map[string]string{}, sources: map[string]Source{}}
	for k, val := range builtin {
		v.values[k] = val
		v.sources[k] = SourceBuiltin
	}
	for k, val := range custom {
		v.values[k] = val
		v.sources[k] = SourceCustom
	}
	return v
}

// Get returns a variable's value
func (v *Vars) Get(name string) (string, bool) {
	val, ok := v.values[name]
	return val, ok
}

// Set adds or replaces a variable, as from a --var flag.
func (v *Vars) Set(name, value string) {
	v.values[name] = value
	v.sources[name] = SourceCustom
}

// List returns every variable sorted by source then name.
func (v *Vars) List() []Var {
	out := make([]Var, 0, len(v.values))
	for k, val := range v.values {
		out = append(out, Var{Name: k, Value: val, Source: v.sources[k]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source == SourceBuiltin
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Builtin returns the variables every template can use.
func Builtin(p *paths.Paths) map[string]string {
	host, _ := os.Hostname()
	return map[string]string{
		"hostname": host,
		"user":     os.Getenv("USER"),
		"home":     p.HomeDir(),
		"dotfiles": p.DotfilesRoot(),
		"platform": string(p.Platform()),
		"shell":    envOr("SHELL", "/bin/bash"),
		"editor":   envOr("EDITOR", "vim"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ActiveProfile resolves the profile name: environment, then settings.
func ActiveProfile(configured string) string {
	if p := os.Getenv(EnvProfile); p != "" {
		return p
	}
	if configured != "" {
		return configured
	}
	return DefaultProfile
}

type varsDocument struct {
	Vars     map[string]any            `yaml:"vars"`
	Profiles map[string]map[string]any `yaml:"profiles"`
}

// LoadCustom reads vars.yaml and applies the named profile. A missing file
// yields no variables.
func LoadCustom(fs types.FS, path, profile string) (map[string]string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}

	var doc varsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid vars document %s", path).
			WithDetail("path", path)
	}

	out := make(map[string]string, len(doc.Vars))
	for k, v := range doc.Vars {
		out[k] = scalar(v)
	}
	for k, v := range doc.Profiles[profile] {
		out[k] = scalar(v)
	}
	return out, nil
}

func scalar(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Load resolves the full variable set for a repository.
func Load(fs types.FS, p *paths.Paths, profile string) (*Vars, error) {
	custom, err := LoadCustom(fs, p.VarsPath(), profile)
	if err != nil {
		return nil, err
	}
	return NewVars(Builtin(p), custom), nil
}

// Render substitutes every placeholder in content.
func Render(content string, vars *Vars) string {
	return placeholder.ReplaceAllStringFunc(content, func(match string) string {
		expr := strings.TrimSpace(match[2 : len(match)-2])

		if name, ok := strings.CutPrefix(expr, "ENV:"); ok {
			return os.Getenv(name)
		}
		if name, fallback, ok := strings.Cut(expr, "|"); ok {
			if val, found := vars.Get(strings.TrimSpace(name)); found {
				return val
			}
			return strings.TrimSpace(fallback)
		}
		if val, found := vars.Get(expr); found {
			return val
		}
		return match
	})
}

// RenderFile renders src into dest, creating dest's parent directories.
func RenderFile(fs types.FS, src, dest string, vars *Vars) error {
	data, err := fs.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrFileNotFound, "template not found: %s", src).WithDetail("path", src)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", src)
	}
	if err := fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(dest))
	}
	if err := fs.WriteFile(dest, []byte(Render(string(data), vars)), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dest)
	}
	return nil
}

// Validate checks the shape of a vars document: "vars" and "profiles" must
// be mappings and every profile must be a mapping too.
func Validate(fs types.FS, path string) []types.Issue {
	doc := filepath.Base(path)
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return []types.Issue{{Document: doc, Severity: types.SeverityError, Message: err.Error()}}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return []types.Issue{{Document: doc, Severity: types.SeverityError, Message: "invalid YAML: " + err.Error()}}
	}
	if len(root.Content) == 0 {
		return nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return []types.Issue{{Document: doc, Severity: types.SeverityError, Line: top.Line, Message: "document must be a mapping"}}
	}

	var issues []types.Issue
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i], top.Content[i+1]
		switch key.Value {
		case "vars":
			if val.Kind != yaml.MappingNode {
				issues = append(issues, types.Issue{Document: doc, Severity: types.SeverityError, Line: val.Line, Message: "'vars' must be a mapping"})
			}
		case "profiles":
			if val.Kind != yaml.MappingNode {
				issues = append(issues, types.Issue{Document: doc, Severity: types.SeverityError, Line: val.Line, Message: "'profiles' must be a mapping"})
				continue
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				if val.Content[j+1].Kind != yaml.MappingNode {
					issues = append(issues, types.Issue{
						Document: doc,
						Severity: types.SeverityError,
						Line:     val.Content[j+1].Line,
						Message:  fmt.Sprintf("profile %q must be a mapping", val.Content[j].Value),
					})
				}
			}
		}
	}
	return issues
}
