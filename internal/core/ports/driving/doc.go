// Package driving defines the interfaces the CLI uses to invoke the
// core pipelines. These are the "driving" ports in hexagonal
// architecture terminology.
//
// Implementations live in internal/core/services.
package driving
