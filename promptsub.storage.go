package promptsub

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// PromptID is a unique identifier for a stored prompt version.
// Uses prefixed random format (e.g., "pr_6ByTSYmGzT2c").
type PromptID string

// StoredPrompt is a named, versioned prompt template held in a storage
// backend. The Source is parse-validated by Catalog.Save but storage
// itself accepts any text.
type StoredPrompt struct {
	// ID is the unique identifier for this prompt version.
	ID PromptID `json:"id" yaml:"id"`

	// Name is the prompt name used for lookups.
	Name string `json:"name" yaml:"name"`

	// Source is the raw template source text.
	Source string `json:"source" yaml:"source"`

	// Version is the version number (1, 2, 3, ...). Higher is newer.
	Version int `json:"version" yaml:"version"`

	// Metadata contains arbitrary key-value pairs for user-defined data.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Tags for categorization and querying.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// CreatedAt is when this version was created.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is when this version was last modified.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// PromptQuery defines filters for listing stored prompts.
type PromptQuery struct {
	// NamePrefix filters to names starting with this prefix.
	NamePrefix string

	// NameContains filters to names containing this substring.
	NameContains string

	// Tags filters to prompts having ALL specified tags.
	Tags []string

	// Limit is the maximum number of results (0 = no limit).
	Limit int

	// Offset is the number of results to skip (for pagination).
	Offset int

	// IncludeAllVersions includes all versions, not just the latest.
	IncludeAllVersions bool
}

// PromptStorage is the interface for pluggable storage backends.
// Implementations must be safe for concurrent use.
//
// The interface follows patterns from database/sql for familiarity:
// context for cancellation, explicit error returns, Close for cleanup.
type PromptStorage interface {
	// Get retrieves the latest version of a prompt by name.
	Get(ctx context.Context, name string) (*StoredPrompt, error)

	// GetVersion retrieves a specific version of a prompt.
	GetVersion(ctx context.Context, name string, version int) (*StoredPrompt, error)

	// Save stores a prompt. If a prompt with the same name exists, a
	// new version is created. ID, Version, CreatedAt and UpdatedAt are
	// set by the storage implementation.
	Save(ctx context.Context, prompt *StoredPrompt) error

	// Delete removes all versions of a prompt by name.
	Delete(ctx context.Context, name string) error

	// DeleteVersion removes a specific version of a prompt.
	DeleteVersion(ctx context.Context, name string, version int) error

	// List returns prompts matching the query, ordered by name then
	// by version descending.
	List(ctx context.Context, query *PromptQuery) ([]*StoredPrompt, error)

	// Exists checks if a prompt with the given name exists.
	Exists(ctx context.Context, name string) (bool, error)

	// ListVersions returns all version numbers for a prompt,
	// newest first. Empty slice if the prompt doesn't exist.
	ListVersions(ctx context.Context, name string) ([]int, error)

	// Close releases any resources held by the storage.
	Close() error
}

// StorageDriver is a factory for creating storage instances.
// Drivers register themselves during init().
type StorageDriver interface {
	// Open creates a storage instance from a driver-specific
	// connection string.
	Open(connectionString string) (PromptStorage, error)
}

// Storage driver registry
var (
	storageDriversMu sync.RWMutex
	storageDrivers   = make(map[string]StorageDriver)
)

// RegisterStorageDriver registers a storage driver by name, typically
// from a driver's init(). Panics on nil drivers and duplicate names.
func RegisterStorageDriver(name string, driver StorageDriver) {
	storageDriversMu.Lock()
	defer storageDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStorageDriver)
	}
	if _, exists := storageDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	storageDrivers[name] = driver
}

// OpenStorage opens a storage connection using the named driver.
//
// Example:
//
//	storage, err := promptsub.OpenStorage("memory", "")
//	storage, err := promptsub.OpenStorage("filesystem", "/path/to/prompts")
func OpenStorage(driverName, connectionString string) (PromptStorage, error) {
	storageDriversMu.RLock()
	driver, ok := storageDrivers[driverName]
	storageDriversMu.RUnlock()

	if !ok {
		return nil, NewStorageDriverNotFoundError(driverName)
	}

	return driver.Open(connectionString)
}

// ListStorageDrivers returns the names of all registered storage drivers.
func ListStorageDrivers() []string {
	storageDriversMu.RLock()
	defer storageDriversMu.RUnlock()

	names := make([]string, 0, len(storageDrivers))
	for name := range storageDrivers {
		names = append(names, name)
	}
	return names
}

// Storage error message constants
const (
	ErrMsgNilStorageDriver        = "storage driver is nil"
	ErrMsgDriverAlreadyRegistered = "storage driver already registered"
	ErrMsgStorageDriverNotFound   = "storage driver not found"
	ErrMsgStorageClosed           = "storage is closed"
	ErrMsgPromptNotFound          = "prompt not found"
	ErrMsgVersionNotFound         = "prompt version not found"
	ErrMsgEmptyPromptName         = "prompt name can not be empty"
)

// StorageError represents a storage-related error.
type StorageError struct {
	Message string
	Name    string
	Version int
	Cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Name != "" && e.Version > 0 {
		return e.Message + ": " + e.Name + " v" + strconv.Itoa(e.Version)
	}
	if e.Name != "" {
		return e.Message + ": " + e.Name
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageDriverNotFoundError creates an error for a missing driver.
func NewStorageDriverNotFoundError(name string) error {
	return &StorageError{Message: ErrMsgStorageDriverNotFound, Name: name}
}

// NewPromptNotFoundError creates an error for a prompt not in storage.
func NewPromptNotFoundError(name string) error {
	return &StorageError{Message: ErrMsgPromptNotFound, Name: name}
}

// NewVersionNotFoundError creates an error for a missing version.
func NewVersionNotFoundError(name string, version int) error {
	return &StorageError{Message: ErrMsgVersionNotFound, Name: name, Version: version}
}

// NewStorageClosedError creates an error for use after Close.
func NewStorageClosedError() error {
	return &StorageError{Message: ErrMsgStorageClosed}
}

// IsNotFound reports whether err is a prompt- or version-not-found
// storage error.
func IsNotFound(err error) bool {
	storageErr, ok := err.(*StorageError)
	if !ok {
		return false
	}
	return storageErr.Message == ErrMsgPromptNotFound ||
		storageErr.Message == ErrMsgVersionNotFound
}
