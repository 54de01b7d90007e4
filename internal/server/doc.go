// Package server runs the HTTP session API.
//
// The server is a [workers.Worker]: Run serves until its context is
// cancelled and then shuts down gracefully.
package server
