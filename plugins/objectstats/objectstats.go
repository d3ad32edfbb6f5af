package objectstats

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sinbaddoraji/Dream/internal/plugin"
	"github.com/sinbaddoraji/Dream/internal/project"
)

// Ensure ObjectStats implements plugin.Plugin
var _ plugin.Plugin = (*ObjectStats)(nil)

// ObjectStats reports object counts for the canvas through the :stats command.
type ObjectStats struct {
	api plugin.EditorAPI
}

// New creates a new instance of the ObjectStats plugin.
func New() plugin.Plugin {
	return &ObjectStats{}
}

// Name returns the unique name of the plugin.
func (p *ObjectStats) Name() string {
	return "objectstats"
}

// Initialize registers the :stats command.
func (p *ObjectStats) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("stats", p.executeStats); err != nil {
		return fmt.Errorf("failed to register 'stats' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this plugin).
func (p *ObjectStats) Shutdown() error {
	return nil
}

func (p *ObjectStats) executeStats(args []string) error {
	if p.api == nil {
		return fmt.Errorf("objectstats plugin not initialized with API")
	}
	p.api.SetStatusMessage("%s", Summary(p.api.Document(), len(p.api.SelectedIDs())))
	return nil
}

// Summary formats object, group and selection counts of doc, e.g.
// "Objects: 3 (ellipse 1, rect 2) | Groups: 0 | Selected: 1".
func Summary(doc *project.Document, selected int) string {
	counts := doc.CountByType()
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	slices.Sort(types)

	var b strings.Builder
	fmt.Fprintf(&b, "Objects: %d", len(doc.Objects))
	if len(types) > 0 {
		parts := make([]string, len(types))
		for i, t := range types {
			parts[i] = fmt.Sprintf("%s %d", t, counts[t])
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}
	fmt.Fprintf(&b, " | Groups: %d | Selected: %d", len(doc.Groups), selected)
	return b.String()
}
