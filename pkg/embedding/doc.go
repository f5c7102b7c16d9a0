// Package embedding turns text into fixed-dimension vectors through an
// OpenAI-compatible HTTP endpoint.
//
// The package exposes a small Provider interface so callers (and tests) can
// substitute their own implementation, plus a Client facade that adds logging
// around provider calls. Vector dimensions are enforced on every response so
// a misconfigured model never pollutes the index.
package embedding
