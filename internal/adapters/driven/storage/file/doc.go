// Package file provides file-based stores for the pipeline artefacts:
// quote records as JSONL and graph outputs as JSON. All writes go
// through a temporary file renamed into place so interrupted runs
// never leave a half-written artefact behind.
package file
