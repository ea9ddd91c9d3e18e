// Package catalog provides the skill catalog and the role requirement table used by the
// deterministic analysis engine.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// DefaultRole is the role key used when no role keyword matches the career goal
const DefaultRole = "default"

// GeneralCategory is assigned to keywords that no category lists
const GeneralCategory = "General"

//go:embed catalog.json
var defaultCatalogJSON []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Category is a named, ordered group of skill keywords
type Category struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Role lists the required and nice-to-have skills for a role keyword
type Role struct {
	Keyword    string   `json:"keyword"`
	Required   []string `json:"required"`
	NiceToHave []string `json:"nice_to_have"`
}

// Catalog is the read-only skill vocabulary. Declaration order is significant: it decides
// detection order, category attribution and role resolution.
type Catalog struct {
	Categories []Category `json:"categories"`
	Roles      []Role     `json:"roles"`

	keywords []string
	category map[string]string
}

// Default returns the embedded catalog. It is parsed once and shared.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(defaultCatalogJSON)
	})
	if defaultErr != nil {
		// the embedded catalog is covered by tests
		panic(fmt.Sprintf("embedded catalog is invalid: %v", defaultErr))
	}
	return defaultCatalog
}

// Load parses and validates a catalog from JSON. Keywords are lowercased.
func Load(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.index()
	return &c, nil
}

// LoadFile reads a catalog from a JSON file
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return Load(data)
}

// Validate checks that the catalog can drive an analysis
func (c *Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("catalog has no categories")
	}
	for i, cat := range c.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return fmt.Errorf("category %d has no name", i)
		}
		if len(cat.Keywords) == 0 {
			return fmt.Errorf("category %q has no keywords", cat.Name)
		}
		for _, kw := range cat.Keywords {
			if kw == "" {
				return fmt.Errorf("category %q has an empty keyword", cat.Name)
			}
		}
	}
	if c.role(DefaultRole) == nil {
		return fmt.Errorf("catalog has no %q role", DefaultRole)
	}
	return nil
}

// Keywords returns every keyword in declaration order. Keywords listed by more than one
// category appear once, at their first position.
func (c *Catalog) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}

// CategoryOf returns the first category listing the keyword, or GeneralCategory
func (c *Catalog) CategoryOf(keyword string) string {
	if name, ok := c.category[strings.ToLower(keyword)]; ok {
		return name
	}
	return GeneralCategory
}

// ResolveRole returns the first role whose keyword is a substring of the lowercased
// career goal, or the default role.
func (c *Catalog) ResolveRole(careerGoal string) Role {
	goal := strings.ToLower(careerGoal)
	for _, r := range c.Roles {
		if r.Keyword == DefaultRole {
			continue
		}
		if strings.Contains(goal, r.Keyword) {
			return r
		}
	}
	return *c.role(DefaultRole)
}

// RoleKeywords lists the matchable role keywords in declaration order
func (c *Catalog) RoleKeywords() []string {
	out := make([]string, 0, len(c.Roles))
	for _, r := range c.Roles {
		if r.Keyword != DefaultRole {
			out = append(out, r.Keyword)
		}
	}
	return out
}

func (c *Catalog) role(keyword string) *Role {
	for i := range c.Roles {
		if c.Roles[i].Keyword == keyword {
			return &c.Roles[i]
		}
	}
	return nil
}

func (c *Catalog) normalize() {
	for i := range c.Categories {
		c.Categories[i].Keywords = lowerAll(c.Categories[i].Keywords)
	}
	for i := range c.Roles {
		r := &c.Roles[i]
		r.Keyword = strings.ToLower(strings.TrimSpace(r.Keyword))
		r.Required = lowerAll(r.Required)
		r.NiceToHave = lowerAll(r.NiceToHave)
	}
}

func (c *Catalog) index() {
	c.category = make(map[string]string)
	c.keywords = nil
	for _, cat := range c.Categories {
		for _, kw := range cat.Keywords {
			if _, seen := c.category[kw]; seen {
				continue
			}
			c.category[kw] = cat.Name
			c.keywords = append(c.keywords, kw)
		}
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
