package metrics

import "time"

// HTTPMetrics provides observability for API requests.
//
// This interface is optional: pass nil to disable collection with zero
// overhead.
type HTTPMetrics interface {
	// RecordRequest records a completed HTTP request.
	//
	// Parameters:
	//   - method: HTTP method ("GET", "POST", ...)
	//   - route: matched route pattern (e.g. "/api/v1/files/{fileID}")
	//   - status: response status code
	//   - duration: time taken to serve the request
	RecordRequest(method, route string, status int, duration time.Duration)

	// RecordRequestStart increments the in-flight request gauge.
	RecordRequestStart()

	// RecordRequestEnd decrements the in-flight request gauge.
	RecordRequestEnd()
}
