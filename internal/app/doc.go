// Package app provides application initialization and lifecycle
// management for the BNI Tracker server. It wires configuration,
// logging, observability, the SQLite store, the domain services and the
// HTTP transport together, and owns startup and graceful shutdown.
//
// # Initialization Flow
//
// The typical initialization sequence:
//
//	1. Load configuration from environment and files
//	2. Initialize logging and observability
//	3. Open the SQLite store and run migrations
//	4. Initialize services with their dependencies
//	5. Set up HTTP handlers and middleware
//	6. Configure the HTTP server
//
// # Usage
//
// The main entry point is typically:
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// The package handles SIGINT and SIGTERM signals to ensure:
//
//	- Active requests are completed
//	- WebSocket connections are closed cleanly
//	- The database connection is closed
//	- Final traces and metrics are flushed
//
// # Error Handling
//
// All initialization errors are returned to the caller for proper
// handling. The app does not call os.Exit() directly, allowing
// the main function to control the exit process.
package app
