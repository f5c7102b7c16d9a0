// Package metrics exposes Prometheus instruments for the synchronization
// pipeline and serves them over a dedicated /metrics HTTP endpoint.
//
// Each service process holds one isolated registry so metric names never
// collide across services sharing a binary. All metrics carry a constant
// service label taken from the configuration.
package metrics
