// Package router connects the display hub to the catalog: it dispatches
// inbound display events and turns observed stream titles into script
// switches or missing-product alerts.
package router
