package shared

// AggregateRoot is the entry point of an aggregate. It owns a consistency
// boundary: all mutation of entities inside the aggregate goes through it.
// Domain events are not accumulated on the aggregate; mutators return them
// explicitly and the caller dispatches after a successful persistence write.
type AggregateRoot interface {
	// ID returns the globally unique identifier.
	ID() string

	// Version returns the optimistic concurrency token. The persistence
	// layer rejects a save whose token does not match the stored version.
	Version() int
}

// Entity has identity; equality is by ID, not by attribute values.
type Entity interface {
	ID() string
}

// ValueObject has no identity, is immutable, and compares by value.
// Go cannot enforce immutability, so implementations keep fields private
// and return new values from every operation.
type ValueObject interface {
	Equals(other interface{}) bool
}
