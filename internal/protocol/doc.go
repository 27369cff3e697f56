// Package protocol defines the JSON envelopes exchanged with teleprompter
// displays over the live socket: tagged inbound events from clients and
// tagged outbound messages from the sync engine.
package protocol
