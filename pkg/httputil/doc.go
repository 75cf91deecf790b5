// Package httputil provides the JSON plumbing shared by HTTP handlers.
//
// Handlers answer with [JSON] on success and [Error] on failure. Error maps
// the error's code to a status with [StatusFor] and writes the body
//
//	{"error": {"code": "INVALID_VERTEX", "message": "Node numbers must be between 0 and 3"}}
//
// so clients can branch on the code and show the message as-is.
package httputil
