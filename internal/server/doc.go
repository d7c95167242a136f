// Package server owns the transport lifecycles of the daybook server: it
// starts the enabled HTTP and gRPC listeners, reacts to termination signals,
// and drains both transports on shutdown.
package server
