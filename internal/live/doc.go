// Package live serves a running reactive list over HTTP.
//
// A Demo owns a vdom.Document rendered with view.ForEach and a reactive
// runtime living on a goroutine of its own. Every tick the demo edits the
// list; the patches the reconciler applied to the document are broadcast to
// websocket clients as JSON frames.
//
// Routes:
//
//	GET /healthz   liveness probe
//	GET /metrics   Prometheus metrics of the demo runtime
//	GET /snapshot  the current document as HTML
//	GET /ws        websocket stream of snapshot and patch frames
package live
