// Package catalog holds the static records behind the informational
// screens. The data ships embedded in the binary and is read-only at runtime:
// every accessor hands out a copy.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"sigma_app/platform/validator"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var embedded []byte

type document struct {
	Courses       []Course      `yaml:"courses" validate:"dive"`
	FAQCategories []FAQCategory `yaml:"faq_categories" validate:"dive"`
	FAQ           []FAQEntry    `yaml:"faq" validate:"dive"`
	Facilities    []Facility    `yaml:"facilities" validate:"dive"`
	Schedule      []ScheduleDay `yaml:"schedule" validate:"dive"`
	Profile       Profile       `yaml:"profile"`
	Usage         Usage         `yaml:"usage"`
	Greeting      []ChatMessage `yaml:"greeting" validate:"dive"`
	Cafeterias    []Cafeteria   `yaml:"cafeterias" validate:"dive"`
	Menus         []Menu        `yaml:"menus" validate:"dive"`
}

// Catalog is an immutable set of static records.
type Catalog struct {
	doc document
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Load parses the embedded catalog once and returns the shared instance.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(embedded)
	})
	return loaded, loadErr
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("catalog: invalid fields %v: %w", validator.FailedFields(err), err)
	}

	checks := []struct {
		set string
		ids []string
	}{
		{"courses", idsOf(doc.Courses, func(c Course) string { return c.ID })},
		{"faq", idsOf(doc.FAQ, func(f FAQEntry) string { return f.ID })},
		{"facilities", idsOf(doc.Facilities, func(f Facility) string { return f.ID })},
		{"greeting", idsOf(doc.Greeting, func(m ChatMessage) string { return m.ID })},
		{"cafeterias", idsOf(doc.Cafeterias, func(c Cafeteria) string { return c.ID })},
	}
	for _, check := range checks {
		if dup, ok := firstDuplicate(check.ids); ok {
			return nil, fmt.Errorf("catalog: duplicate id %q in %s", dup, check.set)
		}
	}

	known := make(map[string]bool, len(doc.Cafeterias))
	for _, c := range doc.Cafeterias {
		known[c.ID] = true
	}
	for _, m := range doc.Menus {
		if !known[m.CafeID] {
			return nil, fmt.Errorf("catalog: menu %q references unknown cafeteria %q", m.ItemName, m.CafeID)
		}
	}

	return &Catalog{doc: doc}, nil
}

func (c *Catalog) Courses() []Course            { return slices.Clone(c.doc.Courses) }
func (c *Catalog) FAQCategories() []FAQCategory { return slices.Clone(c.doc.FAQCategories) }
func (c *Catalog) FAQ() []FAQEntry              { return slices.Clone(c.doc.FAQ) }
func (c *Catalog) Facilities() []Facility       { return slices.Clone(c.doc.Facilities) }
func (c *Catalog) Profile() Profile             { return c.doc.Profile }
func (c *Catalog) Usage() Usage                 { return c.doc.Usage }
func (c *Catalog) Greeting() []ChatMessage      { return slices.Clone(c.doc.Greeting) }
func (c *Catalog) Cafeterias() []Cafeteria      { return slices.Clone(c.doc.Cafeterias) }

// Schedule returns the schedule days. Event slices are copied as well.
func (c *Catalog) Schedule() []ScheduleDay {
	days := make([]ScheduleDay, len(c.doc.Schedule))
	for i, d := range c.doc.Schedule {
		days[i] = ScheduleDay{Title: d.Title, Events: slices.Clone(d.Events)}
	}
	return days
}

// Menus returns the seeded menu rows. Prices are copied.
func (c *Catalog) Menus() []Menu {
	menus := make([]Menu, len(c.doc.Menus))
	for i, m := range c.doc.Menus {
		if m.Price != nil {
			price := *m.Price
			m.Price = &price
		}
		menus[i] = m
	}
	return menus
}

func idsOf[T any](items []T, id func(T) string) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = id(item)
	}
	return ids
}

func firstDuplicate(ids []string) (string, bool) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return "", false
}
