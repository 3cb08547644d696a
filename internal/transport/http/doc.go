// Package http implements the REST handlers for the chapter activity
// tracker. It is a thin layer between chi routing and the service
// packages: handlers parse and validate requests, delegate to services,
// and render responses.
//
// # Request Flow
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → Store
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// # Handler Structure
//
// Each handler holds a narrow service interface, a *slog.Logger and the
// shared error handler:
//
//	func (h *ReportHandler) Ingest(w http.ResponseWriter, r *http.Request) {
//	    chapterID, err := chapterIDParam(r)
//	    if err != nil {
//	        h.errorHandler.HandleError(w, r, err)
//	        return
//	    }
//	    result, err := h.ingest.Ingest(r.Context(), chapterID, period, data)
//	    if err != nil {
//	        h.errorHandler.HandleError(w, r, err)
//	        return
//	    }
//	    render.JSON(w, r, map[string]interface{}{"status": "success", "data": result})
//	}
//
// # Error Handling
//
// Service errors are translated by errors.ErrorHandler into RFC 7807
// problem responses:
//
//	{
//	    "type": "/errors/not-found",
//	    "title": "Resource Not Found",
//	    "status": 404,
//	    "detail": "chapter not found",
//	    "trace_id": "..."
//	}
//
// # Success Envelope
//
// Successful responses use a uniform envelope so clients can switch on
// a single shape:
//
//	{"status": "success", "data": ..., "count": ...}
//
// # Testing
//
// Handlers are tested with httptest recorders and testify mocks for the
// service interfaces; URL parameters are exercised through a real chi
// router.
package http
