// Package catalogue loads and validates the declarative block catalogue:
// the table of block names, their aliases, and the shape of arguments and
// body each accepts. It is new relative to the compiler pipeline it sits
// next to, grounded on internal/cli/config's load-from-file pattern, but
// using gopkg.in/yaml.v3 for the document format rather than viper, since
// the catalogue is data the compiler owns, not runtime configuration.
package catalogue

import (
	"embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	ftmlerrors "github.com/scpwiki/ftml/internal/compiler/errors"
	"gopkg.in/yaml.v3"
)

// HeadKind describes how a block's head (the text between the block name
// and the closing "]]") is structured.
type HeadKind string

const (
	HeadNone     HeadKind = "none"
	HeadValue    HeadKind = "value"
	HeadMap      HeadKind = "map"
	HeadValueMap HeadKind = "value+map"
)

// BodyKind describes what a block expects between its opening and closing
// tags.
type BodyKind string

const (
	BodyNone     BodyKind = "none"     // self-closing, e.g. [[hr]]
	BodyElements BodyKind = "elements" // nested wikitext
	BodyRaw      BodyKind = "raw"      // passed through uninterpreted, e.g. [[code]]
)

// ArgumentSpec describes a single named argument accepted in a block's map
// head.
type ArgumentSpec struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"` // "string" (default), "int", "float", "bool", or any of those suffixed with "[]"
	Required bool     `yaml:"required"`
	Default  string   `yaml:"default"`
	Enum     []string `yaml:"enum"`
	Min      *float64 `yaml:"min"`
	Max      *float64 `yaml:"max"`
}

// Coerce converts raw - an argument's literal value or its default - to the
// Go value implied by arg.Type, enforcing Min/Max against numeric types
// along the way. An empty Type behaves as "string" and never fails on
// type grounds.
func (arg ArgumentSpec) Coerce(raw string) (interface{}, error) {
	typ := arg.Type
	list := strings.HasSuffix(typ, "[]")
	if list {
		typ = strings.TrimSuffix(typ, "[]")
	}
	if typ == "" {
		typ = "string"
	}

	if !list {
		return arg.coerceScalar(typ, raw)
	}

	parts := strings.Split(raw, ",")
	out := make([]interface{}, 0, len(parts))
	for _, part := range parts {
		v, err := arg.coerceScalar(typ, strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (arg ArgumentSpec) coerceScalar(typ, raw string) (interface{}, error) {
	switch typ {
	case "string":
		return raw, nil
	case "int":
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %q is not an int", arg.Name, raw)
		}
		if err := arg.checkRange(float64(n)); err != nil {
			return nil, err
		}
		return n, nil
	case "float":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %q is not a float", arg.Name, raw)
		}
		if err := arg.checkRange(f); err != nil {
			return nil, err
		}
		return f, nil
	case "bool":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %q is not a bool", arg.Name, raw)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("argument %q: unknown type %q", arg.Name, typ)
	}
}

func (arg ArgumentSpec) checkRange(v float64) error {
	if arg.Min != nil && v < *arg.Min {
		return fmt.Errorf("argument %q: %v is below its minimum %v", arg.Name, v, *arg.Min)
	}
	if arg.Max != nil && v > *arg.Max {
		return fmt.Errorf("argument %q: %v is above its maximum %v", arg.Name, v, *arg.Max)
	}
	return nil
}

// BlockSpec is one entry in the catalogue: everything the parser needs to
// know to recognize and validate a block without hardcoding its name.
type BlockSpec struct {
	Name            string         `yaml:"name"`
	Aliases         []string       `yaml:"aliases"`
	ExcludeName     bool           `yaml:"exclude_name"` // Name itself doesn't resolve; only Aliases do
	AcceptsStar     bool           `yaml:"accepts_star"`
	AcceptsScore    bool           `yaml:"accepts_score"`
	AcceptsNewlines bool           `yaml:"accepts_newlines"`
	Head            HeadKind       `yaml:"head"`
	Body            BodyKind       `yaml:"body"`
	HTMLAttributes  bool           `yaml:"html_attributes"`
	Special         string         `yaml:"special"` // "", "module", "include", "include-elements"
	Arguments       []ArgumentSpec `yaml:"arguments"`
}

// yamlCatalogue is the on-disk document shape.
type yamlCatalogue struct {
	Blocks []BlockSpec `yaml:"blocks"`
}

// Catalogue is the immutable, validated, case-insensitive-alias-resolving
// table of blocks available to the parser. Once loaded, it is safe for
// concurrent read-only use from multiple parses.
type Catalogue struct {
	blocks  []BlockSpec
	byAlias map[string]*BlockSpec
}

//go:embed default_blocks.yaml
var defaultBlocksFS embed.FS

// Default loads the catalogue shipped with ftml, covering the blocks named
// in the end-to-end scenarios: code, div, span, a, blockquote, table,
// collapsible, tabview/tab, module, and include, plus a few leaf blocks.
// It has no list block; lists come from "*"/"#" line markers.
func Default() (*Catalogue, error) {
	data, err := defaultBlocksFS.ReadFile("default_blocks.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded default catalogue: %w", err)
	}
	return parse(data)
}

// Load reads and validates a catalogue from a YAML file on disk.
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue %s: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalogue, error) {
	var doc yamlCatalogue
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ftmlerrors.CatalogueError{Message: fmt.Sprintf("invalid yaml: %v", err)}
	}

	cat := &Catalogue{
		blocks:  doc.Blocks,
		byAlias: make(map[string]*BlockSpec),
	}
	if err := cat.validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// validate enforces the catalogue invariants: no duplicate (case-insensitive)
// aliases, html_attributes only paired with a map-shaped head, and default
// argument values that satisfy their own enum/min/max constraints. This is
// the one fatal-at-load-time path in the whole system.
func (c *Catalogue) validate() error {
	for i := range c.blocks {
		b := &c.blocks[i]

		if b.Name == "" {
			return &ftmlerrors.CatalogueError{Message: "block with empty name"}
		}

		if b.HTMLAttributes && b.Head != HeadMap && b.Head != HeadValueMap {
			return &ftmlerrors.CatalogueError{
				Message: fmt.Sprintf("block %q: html_attributes requires a map or value+map head", b.Name),
			}
		}

		for _, arg := range b.Arguments {
			if err := validateArgumentDefault(b.Name, arg); err != nil {
				return err
			}
		}

		names := make([]string, 0, len(b.Aliases)+1)
		if !b.ExcludeName {
			names = append(names, b.Name)
		}
		names = append(names, b.Aliases...)
		for _, name := range names {
			key := strings.ToLower(name)
			if existing, ok := c.byAlias[key]; ok {
				return &ftmlerrors.CatalogueError{
					Message: fmt.Sprintf("alias %q collides between block %q and block %q", name, existing.Name, b.Name),
				}
			}
			c.byAlias[key] = b
		}
	}
	return nil
}

func validateArgumentDefault(blockName string, arg ArgumentSpec) error {
	if arg.Default == "" {
		return nil
	}
	if len(arg.Enum) > 0 {
		found := false
		for _, v := range arg.Enum {
			if v == arg.Default {
				found = true
				break
			}
		}
		if !found {
			return &ftmlerrors.CatalogueError{
				Message: fmt.Sprintf("block %q argument %q: default %q is not in its enum", blockName, arg.Name, arg.Default),
			}
		}
	}
	if _, err := arg.Coerce(arg.Default); err != nil {
		return &ftmlerrors.CatalogueError{Message: fmt.Sprintf("block %q: %v", blockName, err)}
	}
	return nil
}

// Resolve looks up a block by name or alias, case-insensitively.
func (c *Catalogue) Resolve(name string) (*BlockSpec, bool) {
	spec, ok := c.byAlias[strings.ToLower(name)]
	return spec, ok
}

// Blocks returns every block spec in the catalogue, in declaration order.
func (c *Catalogue) Blocks() []BlockSpec {
	return c.blocks
}
