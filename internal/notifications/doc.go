// Package notifications delivers operator push notifications through ntfy.
package notifications
