// Package driving defines the interfaces that outer adapters call IN to core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI and MCP adapters depend on these interfaces; core services
// implement them.
package driving
