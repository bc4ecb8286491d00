// Package memory provides in-memory implementations of the driven
// storage ports. They back unit tests and serve as reference
// implementations of the port contracts, including a fake remote store
// client with per-call failure injection.
package memory
