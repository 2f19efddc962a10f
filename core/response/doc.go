// Package response provides the JSON envelope written by every endpoint:
//
//	{"success": true, "message": "...", "data": ...}
//
// Failures carry success=false and no data. Pagination parses the shared page
// and limit query parameters used by listing endpoints.
package response
