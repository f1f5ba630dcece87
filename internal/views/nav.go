package views

import (
	_ "embed"
	"fmt"

	"alcyxob/fitness-dashboard/internal/domain"

	"github.com/BurntSushi/toml"
)

// NavLink is one entry of the dashboard sidebar.
type NavLink struct {
	Name   string `toml:"name"`
	Href   string `toml:"href"`
	Icon   string `toml:"icon"`
	Active bool   `toml:"-"`
}

// NavTable maps a role to its sidebar links.
type NavTable map[string][]NavLink

const fallbackNav = "default"

//go:embed nav.toml
var navTOML string

var defaultNav = mustLoadNav(navTOML)

// LoadNav parses a navigation table. The table must have a "default" entry.
func LoadNav(data string) (NavTable, error) {
	var table NavTable
	if _, err := toml.Decode(data, &table); err != nil {
		return nil, fmt.Errorf("decode nav table: %w", err)
	}
	if len(table[fallbackNav]) == 0 {
		return nil, fmt.Errorf("nav table has no %q links", fallbackNav)
	}
	return table, nil
}

func mustLoadNav(data string) NavTable {
	table, err := LoadNav(data)
	if err != nil {
		panic(err)
	}
	return table
}

// For returns a fresh copy of the role's links with the one whose href equals
// path marked active.
func (t NavTable) For(role domain.Role, path string) []NavLink {
	links, ok := t[string(role)]
	if !ok {
		links = t[fallbackNav]
	}
	out := make([]NavLink, len(links))
	for i, l := range links {
		l.Active = l.Href == path
		out[i] = l
	}
	return out
}

// Nav returns the built-in sidebar for role.
func Nav(role domain.Role, path string) []NavLink {
	return defaultNav.For(role, path)
}
