// Package http implements the session API over HTTP.
//
// Every configured collection is exposed under /api/collections/{collection}
// with one POST route per session step. Request tracing and access logging
// run as middleware before requests reach the collection's session.
package http
