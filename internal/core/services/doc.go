// Package services implements the driving ports: container resolution,
// the exhaustive catalog crawl, template capture, title sequence
// generation, and the bulk creation engine.
//
// Services depend only on domain types and driven ports, never on
// concrete adapters.
package services
