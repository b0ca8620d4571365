package promptsub

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// FilesystemStorage stores prompts as YAML documents on disk, one file
// per version:
//
//	<root>/
//	  <prompt-name>/
//	    v1.yaml
//	    v2.yaml
//	    ...
type FilesystemStorage struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

// FilesystemStorageDriver creates FilesystemStorage instances.
type FilesystemStorageDriver struct{}

// Filesystem storage constants
const (
	StorageDriverNameFilesystem = "filesystem"

	filesystemDirPermissions  = 0o755
	filesystemFilePermissions = 0o644
	filesystemVersionPrefix   = "v"
	filesystemVersionSuffix   = ".yaml"
	filesystemTempSuffix      = ".tmp"
)

// Filesystem storage error message constants
const (
	ErrMsgInvalidStorageRoot = "storage root directory can not be empty"
	ErrMsgCreateStorageDir   = "failed to create storage directory"
	ErrMsgInvalidPromptName  = "prompt name is not filesystem-safe"
	ErrMsgReadPromptFile     = "failed to read prompt file"
	ErrMsgWritePromptFile    = "failed to write prompt file"
	ErrMsgDecodePromptFile   = "failed to decode prompt file"
	ErrMsgEncodePromptFile   = "failed to encode prompt file"
	ErrMsgRemovePromptFile   = "failed to remove prompt file"
)

func init() {
	RegisterStorageDriver(StorageDriverNameFilesystem, &FilesystemStorageDriver{})
}

// Open creates a FilesystemStorage rooted at the connection string path.
func (d *FilesystemStorageDriver) Open(connectionString string) (PromptStorage, error) {
	return NewFilesystemStorage(connectionString)
}

// NewFilesystemStorage creates a filesystem-based prompt storage.
// The root directory is created if it doesn't exist.
func NewFilesystemStorage(root string) (*FilesystemStorage, error) {
	if root == "" {
		return nil, &StorageError{Message: ErrMsgInvalidStorageRoot}
	}

	if err := os.MkdirAll(root, filesystemDirPermissions); err != nil {
		return nil, &StorageError{Message: ErrMsgCreateStorageDir, Name: root, Cause: err}
	}

	return &FilesystemStorage{root: root}, nil
}

// Get retrieves the latest version of a prompt by name.
func (s *FilesystemStorage) Get(ctx context.Context, name string) (*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}
	if err := validatePromptName(name); err != nil {
		return nil, err
	}

	versions, err := s.versionNumbers(name)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, NewPromptNotFoundError(name)
	}

	return s.loadPrompt(name, versions[0])
}

// GetVersion retrieves a specific version of a prompt.
func (s *FilesystemStorage) GetVersion(ctx context.Context, name string, version int) (*StoredPrompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}
	if err := validatePromptName(name); err != nil {
		return nil, err
	}

	prompt, err := s.loadPrompt(name, version)
	if err != nil {
		return nil, NewVersionNotFoundError(name, version)
	}
	return prompt, nil
}

// Save stores a prompt, creating a new version file.
func (s *FilesystemStorage) Save(ctx context.Context, prompt *StoredPrompt) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}
	if prompt.Name == "" {
		return &StorageError{Message: ErrMsgEmptyPromptName}
	}
	if err := validatePromptName(prompt.Name); err != nil {
		return err
	}

	dir := filepath.Join(s.root, prompt.Name)
	if err := os.MkdirAll(dir, filesystemDirPermissions); err != nil {
		return &StorageError{Message: ErrMsgCreateStorageDir, Name: prompt.Name, Cause: err}
	}

	versions, err := s.versionNumbers(prompt.Name)
	if err != nil {
		return err
	}
	nextVersion := 1
	if len(versions) > 0 {
		nextVersion = versions[0] + 1
	}

	now := time.Now()
	prompt.ID = generatePromptID()
	prompt.Version = nextVersion
	prompt.CreatedAt = now
	prompt.UpdatedAt = now

	data, err := yaml.Marshal(prompt)
	if err != nil {
		return &StorageError{Message: ErrMsgEncodePromptFile, Name: prompt.Name, Cause: err}
	}

	// Atomic write: temp file in the same directory, then rename.
	path := s.versionPath(prompt.Name, nextVersion)
	tmpPath := path + filesystemTempSuffix
	if err := os.WriteFile(tmpPath, data, filesystemFilePermissions); err != nil {
		return &StorageError{Message: ErrMsgWritePromptFile, Name: prompt.Name, Cause: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return &StorageError{Message: ErrMsgWritePromptFile, Name: prompt.Name, Cause: err}
	}

	return nil
}

// Delete removes all versions of a prompt by name.
func (s *FilesystemStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}
	if err := validatePromptName(name); err != nil {
		return err
	}

	dir := filepath.Join(s.root, name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return NewPromptNotFoundError(name)
	}

	if err := os.RemoveAll(dir); err != nil {
		return &StorageError{Message: ErrMsgRemovePromptFile, Name: name, Cause: err}
	}
	return nil
}

// DeleteVersion removes a specific version of a prompt.
func (s *FilesystemStorage) DeleteVersion(ctx context.Context, name string, version int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}
	if err := validatePromptName(name); err != nil {
		return err
	}

	path := s.versionPath(name, version)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewVersionNotFoundError(name, version)
	}
	if err := os.Remove(path); err != nil {
		return &StorageError{Message: ErrMsgRemovePromptFile, Name: name, Version: version, Cause: err}
	}

	// Drop the directory once the last version is gone.
	remaining, err := s.versionNumbers(name)
	if err == nil && len(remaining) == 0 {
		_ = os.Remove(filepath.Join(s.root, name))
	}
	return nil
}

// List returns prompts matching the query.
func (s *FilesystemStorage) List(ctx context.Context, query *PromptQuery) ([]*StoredPrompt, error) {
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

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StorageError{Message: ErrMsgReadPromptFile, Name: s.root, Cause: err}
	}

	var results []*StoredPrompt
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !nameMatchesQuery(name, query) {
			continue
		}

		versions, err := s.versionNumbers(name)
		if err != nil || len(versions) == 0 {
			continue
		}

		if !query.IncludeAllVersions {
			versions = versions[:1]
		}
		for _, version := range versions {
			prompt, err := s.loadPrompt(name, version)
			if err != nil {
				continue
			}
			if promptMatchesQuery(prompt, query) {
				results = append(results, prompt)
			}
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
func (s *FilesystemStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}
	if err := validatePromptName(name); err != nil {
		return false, err
	}

	versions, err := s.versionNumbers(name)
	if err != nil {
		return false, err
	}
	return len(versions) > 0, nil
}

// ListVersions returns all version numbers for a prompt, newest first.
func (s *FilesystemStorage) ListVersions(ctx context.Context, name string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}
	if err := validatePromptName(name); err != nil {
		return nil, err
	}

	return s.versionNumbers(name)
}

// Close marks the storage as closed.
func (s *FilesystemStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// versionNumbers returns the version numbers present for a prompt,
// newest first. A missing directory means no versions.
func (s *FilesystemStorage) versionNumbers(name string) ([]int, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return []int{}, nil
		}
		return nil, &StorageError{Message: ErrMsgReadPromptFile, Name: name, Cause: err}
	}

	var versions []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if v := parseVersionFilename(entry.Name()); v > 0 {
			versions = append(versions, v)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(versions)))
	return versions, nil
}

// loadPrompt reads and decodes one version file.
func (s *FilesystemStorage) loadPrompt(name string, version int) (*StoredPrompt, error) {
	data, err := os.ReadFile(s.versionPath(name, version))
	if err != nil {
		return nil, &StorageError{Message: ErrMsgReadPromptFile, Name: name, Version: version, Cause: err}
	}

	var prompt StoredPrompt
	if err := yaml.Unmarshal(data, &prompt); err != nil {
		return nil, &StorageError{Message: ErrMsgDecodePromptFile, Name: name, Version: version, Cause: err}
	}
	return &prompt, nil
}

// versionPath returns the file path for one prompt version.
func (s *FilesystemStorage) versionPath(name string, version int) string {
	filename := filesystemVersionPrefix + strconv.Itoa(version) + filesystemVersionSuffix
	return filepath.Join(s.root, name, filename)
}

// parseVersionFilename extracts the version number from "v<N>.yaml",
// returning 0 for anything else.
func parseVersionFilename(filename string) int {
	if !strings.HasPrefix(filename, filesystemVersionPrefix) ||
		!strings.HasSuffix(filename, filesystemVersionSuffix) {
		return 0
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(filename, filesystemVersionPrefix), filesystemVersionSuffix)
	version, err := strconv.Atoi(raw)
	if err != nil || version < 1 {
		return 0
	}
	return version
}

// validatePromptName rejects names that could escape the storage root.
func validatePromptName(name string) error {
	if name == "" ||
		name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) ||
		strings.HasPrefix(name, ".") {
		return &StorageError{Message: ErrMsgInvalidPromptName, Name: name}
	}
	return nil
}
