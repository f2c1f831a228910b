// Package migrations embeds the SQL schema shared by the server and the migrate command.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.sql
var files embed.FS

// Direction selects up or down scripts.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Migration is one versioned SQL script.
type Migration struct {
	Name string
	SQL  string
}

// Load returns scripts for the direction, ascending for up and descending for down.
func Load(direction Direction) ([]Migration, error) {
	return load(files, direction)
}

func load(fsys fs.FS, direction Direction) ([]Migration, error) {
	if direction != Up && direction != Down {
		return nil, fmt.Errorf("unknown migration direction %q", direction)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	suffix := "." + string(direction) + ".sql"
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), suffix) {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)
	if direction == Down {
		sort.Sort(sort.Reverse(sort.StringSlice(names)))
	}

	result := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		result = append(result, Migration{Name: strings.TrimSuffix(name, suffix), SQL: string(content)})
	}
	return result, nil
}
