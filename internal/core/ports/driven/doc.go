// Package driven defines the outbound ports: the interfaces the core
// pipelines need implemented by infrastructure adapters (parsers,
// stores, embedding backends, caches).
package driven
