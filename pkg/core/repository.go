package core

import "context"

// Repository defines the contract for storing and retrieving documents.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism (JSON files, SQLite, memory).
type Repository interface {
	// Initialize ensures the underlying storage is ready (directories, schema)
	// and loads any existing documents.
	Initialize(ctx context.Context) error

	// Add stores a new document and returns it with its assigned identifier.
	Add(ctx context.Context, in NewDocument) (Document, error)

	// Get retrieves the metadata of a document by its ID.
	Get(ctx context.Context, id string) (Document, error)

	// List returns every document in creation order.
	List(ctx context.Context) ([]Document, error)

	// ReadContent returns the full body of a document.
	ReadContent(ctx context.Context, id string) (string, error)
}
