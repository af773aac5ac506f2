package data

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/udisondev/gatherd/internal/model"
)

//go:embed templates.schema.json
var templateSchema string

// Catalog holds the gatherable object templates, keyed by catalog name.
type Catalog struct {
	templates map[string]*model.ObjectTemplate
}

// Template resolves a template by catalog name.
func (c *Catalog) Template(name string) (*model.ObjectTemplate, bool) {
	tmpl, ok := c.templates[name]
	return tmpl, ok
}

// Count returns the number of loaded templates.
func (c *Catalog) Count() int {
	return len(c.templates)
}

// templateDef mirrors one entry of the templates JSON file.
type templateDef struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Extents     struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
	} `json:"extents"`
}

type templateFile struct {
	Templates []templateDef `json:"templates"`
}

// LoadCatalog loads object templates from a JSON file validated against the
// embedded schema. An empty path returns the built-in default catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading templates %s: %w", path, err)
	}

	schema, err := jsonschema.CompileString("templates.schema.json", templateSchema)
	if err != nil {
		return nil, fmt.Errorf("compiling templates schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing templates %s: %w", path, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validating templates %s: %w", path, err)
	}

	var file templateFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decoding templates %s: %w", path, err)
	}

	catalog := &Catalog{templates: make(map[string]*model.ObjectTemplate, len(file.Templates))}
	for _, def := range file.Templates {
		if _, exists := catalog.templates[def.Name]; exists {
			return nil, fmt.Errorf("loading templates %s: duplicate template %q", path, def.Name)
		}
		catalog.templates[def.Name] = model.NewObjectTemplate(
			def.Name,
			def.DisplayName,
			model.NewVector3(def.Extents.X, def.Extents.Y, def.Extents.Z),
		)
	}

	slog.Info("object templates loaded", "count", catalog.Count(), "path", path)
	return catalog, nil
}

// DefaultCatalog returns the built-in template table.
func DefaultCatalog() *Catalog {
	defs := []*model.ObjectTemplate{
		model.NewObjectTemplate("ore_vein", "Iron Vein", model.NewVector3(1.2, 1.2, 1.6)),
		model.NewObjectTemplate("herb_cluster", "Healing Herbs", model.NewVector3(0.8, 0.8, 0.6)),
		model.NewObjectTemplate("timber_stack", "Fallen Timber", model.NewVector3(2.0, 1.0, 1.0)),
	}

	catalog := &Catalog{templates: make(map[string]*model.ObjectTemplate, len(defs))}
	for _, tmpl := range defs {
		catalog.templates[tmpl.Name()] = tmpl
	}
	return catalog
}
