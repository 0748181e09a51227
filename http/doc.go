// Package http provides the HTTP server for roster collections.
//
// Every kind registered with the service gets the same five routes:
//
//	GET    /{kind}        list all records
//	GET    /{kind}/{id}   fetch one record
//	POST   /{kind}        create a record from a JSON object
//	PUT    /{kind}/{id}   shallow-merge a JSON object into a record
//	DELETE /{kind}/{id}   remove a record (204, empty body)
//
// # Features
//
//   - JSON error bodies of the form {"message": "..."}
//   - Empty path segments are ignored, so //users//1/ routes as /users/1
//   - Ids that are not positive integers report the kind's not-found message
//   - Request ids, access logging, panic recovery and body size limits
//   - Configurable CORS support
//
// Paths whose first segment is not a kind answer 200 with the plain text
// "server is running". Known kinds with an unmatched method or path answer
// 404 {"message": "Route not found"}.
//
// # Usage
//
//	store, _ := memstore.New(roster.DefaultKinds(), roster.IDSequence)
//	service, _ := roster.NewRosterService(store, roster.DefaultKinds())
//
//	handler := http.NewHandler(&http.HandlerConfig{MaxBodySize: 1 << 20}, service)
//	http.ListenAndServe(":3000", handler.Router())
//
// The service parameter must implement the Service interface.
package http
