// Package daemon runs the promptcast background service: it enforces
// single-instance execution, serves the HTTP and WebSocket API, and wires the
// display hub to the catalog.
package daemon
