// Package hub tracks live teleprompter connections and fans events out to
// topic subscribers.
//
// A connection moves through connecting (transport handshake), active
// (registered, may subscribe and receive broadcasts), and closed (terminal,
// removed from every topic). Topics are bag identifiers, created lazily on
// first subscribe and dropped as soon as their subscriber set empties.
//
// All registry state is guarded by a single mutex. Broadcasts snapshot the
// target subscriber set under the lock and deliver outside it, so a
// subscriber added or removed mid-broadcast neither receives that broadcast
// nor blocks delivery to already-snapshotted peers. A failed send removes the
// offending connection from the registry entirely without aborting delivery
// to the rest.
package hub
