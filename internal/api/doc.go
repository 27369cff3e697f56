// Package api defines the transport-level payloads shared by the daemon's
// HTTP surface and the CLI client, plus a thin service that adapts store
// types into them.
package api
