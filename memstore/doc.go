// Package memstore implements roster.Repo with in-process collections.
//
// Each registered kind gets one ordered collection seeded from Kind.Seed with
// ids 1..n. State lives only as long as the Store value; there is no
// durability, and a new Store starts from the seed again.
//
// # Concurrency
//
// Every collection is guarded by its own sync.RWMutex. Reads share the lock;
// Insert, Update and Delete hold it exclusively, so id assignment and append
// happen in one critical section.
//
// # ID Strategies
//
//   - roster.IDSequence: a per-collection counter starting at the highest
//     seeded id. Ids are never reused, even after deletions.
//   - roster.IDLength: len(collection)+1. After a deletion the next id can
//     equal an existing record's id; lookups then return the first match in
//     insertion order.
//
// # Usage
//
//	store, err := memstore.New(roster.DefaultKinds(), roster.IDSequence)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	service, err := roster.NewRosterService(store, roster.DefaultKinds())
package memstore
