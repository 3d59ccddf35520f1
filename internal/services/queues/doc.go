// Package queues is the broker's operation façade. The HTTP layer and tests
// call it instead of touching the registry or the persistence engine
// directly, so durable-record bookkeeping and metrics stay in one place.
package queues
