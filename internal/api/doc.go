// Package api provides the HTTP REST API for miotlang.
//
// It exposes translation generation and catalog operations to automation
// tooling: trigger a generation run, list or fetch stored translation
// documents, and delete catalog entries. Everything except the health check
// and login sits behind JWT bearer authentication against the single
// configured admin credential.
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
