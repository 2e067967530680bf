package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the audit_runs and findings
// collections exist.
func Setup(app *pocketbase.PocketBase) {
	runs := ensureCollection(app, "audit_runs", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "filename", Required: true})
		c.Fields.Add(&core.TextField{Name: "sheet", Required: false})
		c.Fields.Add(&core.NumberField{Name: "rows_checked", Required: false})
		c.Fields.Add(&core.NumberField{Name: "high_count", Required: false})
		c.Fields.Add(&core.NumberField{Name: "medium_count", Required: false})
		c.Fields.Add(&core.NumberField{Name: "low_count", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "findings", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "run",
			Required:      true,
			CollectionId:  runs.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.NumberField{Name: "row", Required: true})
		c.Fields.Add(&core.TextField{Name: "cell", Required: false})
		c.Fields.Add(&core.TextField{Name: "check_type", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "severity",
			Required:  true,
			Values:    []string{"HIGH", "MEDIUM", "LOW"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "message", Required: true})
		c.Fields.Add(&core.TextField{Name: "rule_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "related", Required: false})
		// Stored as formatted text so absent values stay distinguishable
		// from a genuine zero.
		c.Fields.Add(&core.TextField{Name: "expected", Required: false})
		c.Fields.Add(&core.TextField{Name: "actual", Required: false})
		c.Fields.Add(&core.TextField{Name: "difference", Required: false})
		c.Fields.Add(&core.TextField{Name: "tolerance", Required: false})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
