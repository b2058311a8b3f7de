package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"compass/internal/model"
)

//go:embed fallback.json
var fallbackJSON []byte

// Catalog is an ordered, read-only list of programs. It is built once per
// load and never mutated; reloads produce a new Catalog.
type Catalog struct {
	programs []model.Program
	byID     map[int]int
}

// Filter narrows a catalog listing. Empty fields match everything.
type Filter struct {
	// Difficulty and Status are exact matches.
	Difficulty string
	Status     string
	// Search is a case-insensitive substring of name or description.
	Search string
}

// New copies programs into a new Catalog. For duplicate IDs the first
// program wins in Find, matching a linear lookup.
func New(programs []model.Program) *Catalog {
	c := &Catalog{
		programs: make([]model.Program, len(programs)),
		byID:     make(map[int]int, len(programs)),
	}
	copy(c.programs, programs)
	for i, p := range c.programs {
		if _, dup := c.byID[p.ID]; !dup {
			c.byID[p.ID] = i
		}
	}
	return c
}

// Decode parses a programs.json document (a JSON array of programs).
func Decode(data []byte) ([]model.Program, error) {
	if len(data) == 0 {
		return nil, errors.New("catalog: empty document")
	}
	var programs []model.Program
	if err := json.Unmarshal(data, &programs); err != nil {
		return nil, fmt.Errorf("catalog: decode programs: %w", err)
	}
	return programs, nil
}

// Fallback returns the built-in catalog used when the data source cannot
// be loaded.
func Fallback() *Catalog {
	programs, err := Decode(fallbackJSON)
	if err != nil {
		// The embedded file is part of the binary; failing here is a build defect.
		panic(err)
	}
	return New(programs)
}

// Len returns the number of programs.
func (c *Catalog) Len() int {
	return len(c.programs)
}

// All returns a copy of the programs in catalog order.
func (c *Catalog) All() []model.Program {
	out := make([]model.Program, len(c.programs))
	copy(out, c.programs)
	return out
}

// Find looks up a program by ID.
func (c *Catalog) Find(id int) (model.Program, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Program{}, false
	}
	return c.programs[i], true
}

// Filter returns the programs matching f, preserving catalog order.
func (c *Catalog) Filter(f Filter) []model.Program {
	search := strings.ToLower(f.Search)
	out := make([]model.Program, 0, len(c.programs))
	for _, p := range c.programs {
		if f.Difficulty != "" && p.Difficulty != f.Difficulty {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// IssueSummary renders the "view issues" text for a program: the open
// issue count and its first n listed issues.
func IssueSummary(p model.Program, n int) string {
	top := p.IssuesList
	if n >= 0 && len(top) > n {
		top = top[:n]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d open issues in %s\n\nTop issues:\n", p.Issues, p.Name)
	for _, issue := range top {
		b.WriteString("• " + issue + "\n")
	}
	b.WriteString("\nView more on GitHub!")
	return b.String()
}
