// Package services implements the business logic layer of the chapter
// tracking application. It provides a clean separation between HTTP
// handlers and data access, ensuring that business rules are
// centralized and testable.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Interface-driven design for testability
//	2. Context propagation for cancellation
//	3. Dependency injection for loose coupling
//	4. Transaction coordination delegated to the store
//	5. Domain-focused methods that encapsulate business rules
//
// # Available Services
//
// The package provides these core services:
//
//	- IngestionService: decodes a slip-audit workbook, extracts the
//	  interaction records, and atomically replaces one period's data
//	- ReportService: builds period reports and runs snapshot comparisons
//	- RosterService: bulk chapter/member upserts from a region summary
//	- HealthService: system health checks for the liveness endpoint
//
// # Common Service Pattern
//
// Services typically follow this structure:
//
//	type ServiceName struct {
//	    store  StorePort
//	    logger *slog.Logger
//	}
//
//	func NewServiceName(store StorePort, logger *slog.Logger) *ServiceName {
//	    if logger == nil {
//	        logger = slog.Default()
//	    }
//	    return &ServiceName{store: store, logger: logger}
//	}
//
// Each service declares the narrow store interface it consumes, so
// tests can substitute the persistence layer without a database.
//
// # Error Handling
//
// Row-level problems in uploaded files never fail a run; they surface
// as warnings or errors inside the returned result and the result's
// Success flag reports whether the run was clean. Failures of the
// surrounding machinery (unknown chapter, storage, malformed request)
// return an error: sentinel errors from this package for conditions
// that exist only at the service boundary, *errors.AppError passed
// through from the layers below for everything else.
package services
