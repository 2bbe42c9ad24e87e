// Package domain contains the core types of the Mapkeeper data-prep
// pipeline: the canonical quote record exchanged between the parser
// and the graph builder, and the graph artefacts derived from it.
package domain
