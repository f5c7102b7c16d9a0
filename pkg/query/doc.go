// Package query turns untrusted client filter/page/sort input into typed,
// store-ready query objects.
//
// Every resource declares its public query surface once as a Table (for the
// document store) and optionally a VectorTable (for the vector index), then
// compiles each incoming request against it:
//
//	var essayFilters = query.Table{
//	    {Source: "title", Target: "title/$regex"},
//	    {Source: "writingMethods", Target: "writingMethods/$in"},
//	    {Source: "createdAt", Target: "createdAt/$dateRange"},
//	    {Source: "gradeLevel", Target: "gradeLevel", Transform: func(v any) any {
//	        return map[string]any{"$lte": v}
//	    }},
//	}
//
//	filter := query.Compile(body, essayFilters, false)
//	page := query.NormalizePage(body["page"])
//	sort := query.NormalizeSort(body["sort"])
//
// The package is pure and has no backend imports on purpose: it is the sole
// sanitization boundary between client input and store queries, and the two
// backing stores consume its output through their own adapters.
package query
