package repository

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// Field declares the constraints of one document field. The declaration
// replaces runtime schema reflection: immutability, uniqueness, and
// validation rules are explicit configuration, checked once when the
// resource is registered.
type Field struct {
	Name      string
	Required  bool
	Unique    bool
	Immutable bool
	Enum      []string
	MaxLength int
}

// Definition is the declared schema of one collection. It drives document
// validation on save, central immutable-field stripping on update, unique
// index creation, and the constraint payload attached to StoreErrors.
type Definition struct {
	Collection string
	Fields     []Field
}

// Validate checks the definition for structural mistakes. Call it at
// resource-registration time; NewRepository does so as well.
func (d Definition) Validate() error {
	if d.Collection == "" {
		return fmt.Errorf("schema: collection name cannot be empty")
	}
	seen := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("schema %s: field[%d] has no name", d.Collection, i)
		}
		if seen[f.Name] {
			return fmt.Errorf("schema %s: duplicate field %q", d.Collection, f.Name)
		}
		seen[f.Name] = true
		if f.MaxLength < 0 {
			return fmt.Errorf("schema %s: field %q has negative max length", d.Collection, f.Name)
		}
	}
	return nil
}

// Field returns the declaration of a named field.
func (d Definition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ImmutableKeys lists the fields an update is never allowed to touch.
func (d Definition) ImmutableKeys() []string {
	var keys []string
	for _, f := range d.Fields {
		if f.Immutable {
			keys = append(keys, f.Name)
		}
	}
	return keys
}

// UniqueKeys lists the fields backed by a unique index.
func (d Definition) UniqueKeys() []string {
	var keys []string
	for _, f := range d.Fields {
		if f.Unique {
			keys = append(keys, f.Name)
		}
	}
	return keys
}

// Constraints returns the declarations of the given fields, for error
// enrichment. Unknown names are ignored.
func (d Definition) Constraints(fields []string) map[string]Field {
	out := make(map[string]Field, len(fields))
	for _, name := range fields {
		if f, ok := d.Field(name); ok {
			out[name] = f
		}
	}
	return out
}

// ValidateDocument checks a document against the declared constraints and
// returns a field-enriched StoreError on the first violation.
func (d Definition) ValidateDocument(doc Document) error {
	for _, f := range d.Fields {
		value, present := doc[f.Name]
		if !present || value == nil {
			if f.Required {
				return d.validationError(f, "field is required")
			}
			continue
		}
		if text, ok := value.(string); ok {
			if f.Required && text == "" {
				return d.validationError(f, "field is required")
			}
			if f.MaxLength > 0 && utf8.RuneCountInString(text) > f.MaxLength {
				return d.validationError(f, fmt.Sprintf("exceeds max length %d", f.MaxLength))
			}
			if len(f.Enum) > 0 && !slices.Contains(f.Enum, text) {
				return d.validationError(f, fmt.Sprintf("must be one of %v", f.Enum))
			}
		}
	}
	return nil
}

func (d Definition) validationError(f Field, reason string) error {
	return &StoreError{
		Kind:        KindValidation,
		Fields:      []string{f.Name},
		Constraints: map[string]Field{f.Name: f},
		Reason:      reason,
	}
}

// stripImmutable returns update without the immutable fields. Enforced here,
// centrally, so no call site can forget it.
func (d Definition) stripImmutable(update Document) Document {
	out := make(Document, len(update))
	for key, value := range update {
		if f, ok := d.Field(key); ok && f.Immutable {
			continue
		}
		out[key] = value
	}
	return out
}
