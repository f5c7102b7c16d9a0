package query

import (
	"fmt"
	"strings"
)

// PathSeparator separates segments in Source and Target paths,
// e.g. "user/address/city".
const PathSeparator = "/"

// Transform reshapes a client-supplied value before it is written into the
// compiled filter. It may return a scalar, a slice, or a full operator object
// (e.g. an $or disjunction across several physical fields).
type Transform func(value any) any

// Mapping declares how one field of the public query surface translates into
// the backend filter.
//
// Target is a backend path, optionally suffixed with an operator tag:
//
//	"title/$regex"          -> {title: {$regex: v}}
//	"age/$range"            -> {age: {$gte: v[0], $lte: v[1]}}
//	"createdAt/$dateRange"  -> {createdAt: {$gte: Date(v[0]), $lte: Date(v[1])}}
//	"tags/$in"              -> {tags: {$in: v}}
//
// When Transform is set it runs first and its result is written verbatim,
// so a mapping can produce arbitrary operator objects itself.
type Mapping struct {
	Source    string
	Target    string
	Transform Transform
}

// Table is the declarative query surface of one resource. It is declared once
// at resource-registration time and reused for every request, which is why
// Validate exists: a malformed table is a programming error, not a runtime
// condition.
type Table []Mapping

// Validate checks the table for structural mistakes. Call it when the
// resource is registered, not per request.
func (t Table) Validate() error {
	for i, m := range t {
		if err := validatePath(m.Source); err != nil {
			return fmt.Errorf("mapping[%d]: invalid source %q: %w", i, m.Source, err)
		}
		if err := validatePath(m.Target); err != nil {
			return fmt.Errorf("mapping[%d]: invalid target %q: %w", i, m.Target, err)
		}
		// Operator tags are only meaningful as the last target segment.
		segments := strings.Split(m.Target, PathSeparator)
		for _, seg := range segments[:len(segments)-1] {
			if strings.HasPrefix(seg, "$") {
				return fmt.Errorf("mapping[%d]: operator segment %q must be last in target %q", i, seg, m.Target)
			}
		}
	}
	return nil
}

func validatePath(p string) error {
	if p == "" {
		return fmt.Errorf("empty path")
	}
	for _, seg := range strings.Split(p, PathSeparator) {
		if seg == "" {
			return fmt.Errorf("empty segment")
		}
	}
	return nil
}

// splitOperator splits a target path into its field path and a trailing
// operator tag. "title/$regex" -> ("title", "$regex"); "title" -> ("title", "").
func splitOperator(target string) (string, string) {
	idx := strings.LastIndex(target, PathSeparator)
	if idx < 0 {
		return target, ""
	}
	last := target[idx+1:]
	if strings.HasPrefix(last, "$") {
		return target[:idx], last
	}
	return target, ""
}
