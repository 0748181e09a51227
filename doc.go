// Package roster provides a small in-memory record service exposed over a
// REST API.
//
// Records belong to a resource kind (for example "users" or "cars"). Each kind
// owns one ordered collection that is seeded at startup and lives for the
// lifetime of the process. Records carry a server-assigned integer id and a
// flat set of JSON members.
//
// # Key Components
//
//   - Kind: describes a resource (route name, label, declared fields, seed)
//   - Record: one item in a collection, encoded as {"id": ..., fields...}
//   - Repo: interface for collection persistence (see the memstore package)
//   - RosterService: use-case layer called by the HTTP handler
//
// # ID Strategies
//
//   - IDSequence: monotonically increasing counter, ids are never reused
//   - IDLength: id = len(collection) + 1, which can collide after deletions
//
// # Example Usage
//
//	kinds := roster.DefaultKinds()
//	store, err := memstore.New(kinds, roster.IDSequence)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	service, err := roster.NewRosterService(store, kinds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rec, err := service.Create(ctx, "users", roster.Fields{"name": "A"})
//
// See the http package for the REST API implementation.
package roster
