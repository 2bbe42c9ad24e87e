// Package services implements the driving ports: the parse pipeline
// that normalises raw highlight exports, and the graph pipeline that
// computes semantic neighbours and the keyword index.
package services
