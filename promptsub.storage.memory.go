package promptsub

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of PromptStorage,
// intended for testing and development. All data is lost when the
// process terminates.
type MemoryStorage struct {
	mu      sync.RWMutex
	prompts map[string][]*StoredPrompt // name -> versions, newest first
	closed  bool
}

// MemoryStorageDriver creates MemoryStorage instances.
type MemoryStorageDriver struct{}

// StorageDriverNameMemory is the registry name of the memory driver.
const StorageDriverNameMemory = "memory"

func init() {
	RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
}

// Open creates a new MemoryStorage. The connection string is ignored.
func (d *MemoryStorageDriver) Open(connectionString string) (PromptStorage, error) {
	return NewMemoryStorage(), nil
}

// NewMemoryStorage creates a new in-memory prompt storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		prompts: make(map[string][]*StoredPrompt),
	}
}

// Get retrieves the latest version of a prompt by name.
func (s *MemoryStorage) Get(ctx context.Context, name string) (*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	versions, ok := s.prompts[name]
	if !ok || len(versions) == 0 {
		return nil, NewPromptNotFoundError(name)
	}

	return copyStoredPrompt(versions[0]), nil
}

// GetVersion retrieves a specific version of a prompt.
func (s *MemoryStorage) GetVersion(ctx context.Context, name string, version int) (*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	for _, prompt := range s.prompts[name] {
		if prompt.Version == version {
			return copyStoredPrompt(prompt), nil
		}
	}

	return nil, NewVersionNotFoundError(name, version)
}

// Save stores a prompt, creating a new version if one exists.
func (s *MemoryStorage) Save(ctx context.Context, prompt *StoredPrompt) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if prompt.Name == "" {
		return &StorageError{Message: ErrMsgEmptyPromptName}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	now := time.Now()
	versions := s.prompts[prompt.Name]

	nextVersion := 1
	if len(versions) > 0 {
		nextVersion = versions[0].Version + 1
	}

	stored := &StoredPrompt{
		ID:        generatePromptID(),
		Name:      prompt.Name,
		Source:    prompt.Source,
		Version:   nextVersion,
		Metadata:  copyStringMap(prompt.Metadata),
		Tags:      copyStringSlice(prompt.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Reflect generated fields back to the caller's value.
	prompt.ID = stored.ID
	prompt.Version = stored.Version
	prompt.CreatedAt = stored.CreatedAt
	prompt.UpdatedAt = stored.UpdatedAt

	s.prompts[prompt.Name] = append([]*StoredPrompt{stored}, versions...)
	return nil
}

// Delete removes all versions of a prompt by name.
func (s *MemoryStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if _, ok := s.prompts[name]; !ok {
		return NewPromptNotFoundError(name)
	}

	delete(s.prompts, name)
	return nil
}

// DeleteVersion removes a specific version of a prompt.
func (s *MemoryStorage) DeleteVersion(ctx context.Context, name string, version int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	versions := s.prompts[name]
	for i, prompt := range versions {
		if prompt.Version == version {
			s.prompts[name] = append(versions[:i], versions[i+1:]...)
			if len(s.prompts[name]) == 0 {
				delete(s.prompts, name)
			}
			return nil
		}
	}

	return NewVersionNotFoundError(name, version)
}

// List returns prompts matching the query.
func (s *MemoryStorage) List(ctx context.Context, query *PromptQuery) ([]*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	if query == nil {
		query = &PromptQuery{}
	}

	var results []*StoredPrompt
	for name, versions := range s.prompts {
		if !nameMatchesQuery(name, query) {
			continue
		}

		if query.IncludeAllVersions {
			for _, prompt := range versions {
				if promptMatchesQuery(prompt, query) {
					results = append(results, copyStoredPrompt(prompt))
				}
			}
		} else if len(versions) > 0 && promptMatchesQuery(versions[0], query) {
			results = append(results, copyStoredPrompt(versions[0]))
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Name != results[j].Name {
			return results[i].Name < results[j].Name
		}
		return results[i].Version > results[j].Version
	})

	return paginate(results, query), nil
}

// Exists checks if a prompt with the given name exists.
func (s *MemoryStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	versions, ok := s.prompts[name]
	return ok && len(versions) > 0, nil
}

// ListVersions returns all version numbers for a prompt, newest first.
func (s *MemoryStorage) ListVersions(ctx context.Context, name string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	versions := s.prompts[name]
	result := make([]int, len(versions))
	for i, prompt := range versions {
		result[i] = prompt.Version
	}
	return result, nil
}

// Close marks the storage as closed.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.prompts = nil
	return nil
}

// nameMatchesQuery checks the name-based query filters.
func nameMatchesQuery(name string, query *PromptQuery) bool {
	if query.NamePrefix != "" && !strings.HasPrefix(name, query.NamePrefix) {
		return false
	}
	if query.NameContains != "" && !strings.Contains(name, query.NameContains) {
		return false
	}
	return true
}

// promptMatchesQuery checks the per-version query filters.
func promptMatchesQuery(prompt *StoredPrompt, query *PromptQuery) bool {
	for _, tag := range query.Tags {
		if !containsString(prompt.Tags, tag) {
			return false
		}
	}
	return true
}

// paginate applies the query's offset and limit.
func paginate(results []*StoredPrompt, query *PromptQuery) []*StoredPrompt {
	if query.Offset > 0 {
		if query.Offset >= len(results) {
			return []*StoredPrompt{}
		}
		results = results[query.Offset:]
	}
	if query.Limit > 0 && len(results) > query.Limit {
		results = results[:query.Limit]
	}
	return results
}

// containsString checks if a slice contains a string.
func containsString(slice []string, s string) bool {
	for _, item := range slice {
		if item == s {
			return true
		}
	}
	return false
}

// generatePromptID generates a unique prompt ID.
func generatePromptID() PromptID {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return PromptID("pr_" + base64.RawURLEncoding.EncodeToString(b))
}

// copyStoredPrompt creates a deep copy of a StoredPrompt.
func copyStoredPrompt(prompt *StoredPrompt) *StoredPrompt {
	if prompt == nil {
		return nil
	}
	return &StoredPrompt{
		ID:        prompt.ID,
		Name:      prompt.Name,
		Source:    prompt.Source,
		Version:   prompt.Version,
		Metadata:  copyStringMap(prompt.Metadata),
		Tags:      copyStringSlice(prompt.Tags),
		CreatedAt: prompt.CreatedAt,
		UpdatedAt: prompt.UpdatedAt,
	}
}

// copyStringMap creates a copy of a string map.
func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	result := make(map[string]string, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

// copyStringSlice creates a copy of a string slice.
func copyStringSlice(s []string) []string {
	if s == nil {
		return nil
	}
	result := make([]string, len(s))
	copy(result, s)
	return result
}
