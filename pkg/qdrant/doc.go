// Package qdrant wraps the official Qdrant Go client, scoped to the single
// collection that mirrors a document-store collection.
//
// Point ids are the document uids, so lookups, deletes, and payload patches
// on the vector side reuse the same identifiers as the primary store. The
// package also translates compiled neutral vector conditions into native
// Qdrant filter conditions; see Conditions.
package qdrant
