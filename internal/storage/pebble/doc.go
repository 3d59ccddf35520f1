// Package pebblestore provides a thin wrapper around Pebble with fsync policy,
// batches, and minimal metrics hooks. The broker keeps its durable records
// here: one registry record plus one record per queue.
//
// Usage:
//
//	db, err := pebblestore.Open(pebblestore.Options{
//	    DataDir: "./queue_data/store",
//	    Fsync:   pebblestore.FsyncModeAlways,
//	})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	// Point ops
//	_ = db.Set([]byte("queue/orders"), record)
//	v, err := db.Get([]byte("queue/orders"))
//	if pebblestore.IsNotFound(err) { /* no record yet */ }
//
//	// Atomic multi-key updates with batches
//	b := db.NewBatch()
//	_ = b.Delete([]byte("queue/orders"), nil)
//	_ = b.Set([]byte("registry"), registryRecord, nil)
//	_ = db.CommitBatch(context.Background(), b)
//	b.Close()
package pebblestore
