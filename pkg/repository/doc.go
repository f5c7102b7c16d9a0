// Package repository is the generic CRUD facade every resource of the
// content backend reuses over the primary document store.
//
// A resource registers itself with a declarative schema Definition (which
// fields are required, unique, immutable, enum-bound) and gets back a
// Repository bound to one collection:
//
//	repo, err := repository.NewRepository(client, repository.Definition{
//	    Collection: "model-essay",
//	    Fields: []repository.Field{
//	        {Name: "uid", Unique: true, Immutable: true},
//	        {Name: "title", Required: true, MaxLength: 200},
//	        {Name: "from", Enum: []string{"UGC", "PGC"}},
//	    },
//	}, log)
//
// The schema drives three behaviors centrally instead of per call site:
// document validation on Save, immutable-field stripping on every update,
// and the field/constraint payload attached to StoreErrors so callers can
// render field-specific guidance.
//
// Aggregate issues a single faceted query returning a page of items and the
// total match count in one round trip.
package repository
