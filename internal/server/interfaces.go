package server

// Server is the lifecycle contract shared by the coordinator's transport
// servers. RunServer blocks until the server stops serving; Shutdown asks
// for a graceful stop and releases the listener.
type Server interface {
	// RunServer starts accepting sync requests and blocks until the
	// server stops.
	RunServer()

	// Shutdown drains in-flight requests and frees the listener.
	Shutdown()
}
