package promptsub

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Catalog combines prompt storage with parsing and substitution. It
// loads named prompts from any storage backend, parses them once, and
// re-parses only when the stored version changes.
type Catalog struct {
	storage PromptStorage
	opts    []Option
	logger  *zap.Logger

	mu           sync.RWMutex
	parsedCache  map[string]*catalogEntry
	cacheEnabled bool
}

// catalogEntry caches a parsed prompt with its stored version.
type catalogEntry struct {
	prompt  *Prompt
	version int
}

// CatalogConfig configures a Catalog.
type CatalogConfig struct {
	// Storage is the prompt storage backend (required).
	Storage PromptStorage

	// PromptOptions are applied to every prompt parsed by the catalog.
	PromptOptions []Option

	// Logger for catalog debug output. Default: no logging.
	Logger *zap.Logger

	// DisableParsedPromptCache forces a re-parse on every load.
	DisableParsedPromptCache bool
}

// Catalog error message constants
const (
	ErrMsgNilStorage = "storage backend is required"
)

// NewCatalog creates a Catalog over the given storage backend.
func NewCatalog(config CatalogConfig) (*Catalog, error) {
	if config.Storage == nil {
		return nil, &StorageError{Message: ErrMsgNilStorage}
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Catalog{
		storage:      config.Storage,
		opts:         config.PromptOptions,
		logger:       logger,
		parsedCache:  make(map[string]*catalogEntry),
		cacheEnabled: !config.DisableParsedPromptCache,
	}, nil
}

// Save parse-validates source and stores it as a new version of the
// named prompt. Returns the stored version number.
func (c *Catalog) Save(ctx context.Context, name, source string, metadata map[string]string, tags ...string) (int, error) {
	// Reject malformed templates before they reach storage.
	if _, err := New(source, c.opts...); err != nil {
		return 0, err
	}

	stored := &StoredPrompt{
		Name:     name,
		Source:   source,
		Metadata: metadata,
		Tags:     tags,
	}
	if err := c.storage.Save(ctx, stored); err != nil {
		return 0, err
	}

	c.logger.Debug(LogMsgCatalogSaved,
		zap.String(LogFieldName, name),
		zap.Int(LogFieldVersion, stored.Version),
	)
	return stored.Version, nil
}

// Substitute loads the latest version of the named prompt and
// substitutes params into it.
func (c *Catalog) Substitute(ctx context.Context, name string, params map[string]any) (string, error) {
	prompt, err := c.Load(ctx, name)
	if err != nil {
		return "", err
	}
	return prompt.Substitute(params)
}

// Variables loads the latest version of the named prompt and reports
// its required and optional variables per alternative.
func (c *Catalog) Variables(ctx context.Context, name string) ([]RequiredAndOptional, error) {
	prompt, err := c.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return prompt.Variables(), nil
}

// Load returns the parsed latest version of the named prompt, from
// cache when the stored version has not changed.
func (c *Catalog) Load(ctx context.Context, name string) (*Prompt, error) {
	stored, err := c.storage.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	if c.cacheEnabled {
		c.mu.RLock()
		entry, ok := c.parsedCache[name]
		c.mu.RUnlock()
		if ok && entry.version == stored.Version {
			return entry.prompt, nil
		}
	}

	prompt, err := New(stored.Source, c.opts...)
	if err != nil {
		return nil, err
	}

	if c.cacheEnabled {
		c.mu.Lock()
		c.parsedCache[name] = &catalogEntry{prompt: prompt, version: stored.Version}
		c.mu.Unlock()
		c.logger.Debug(LogMsgCatalogReparsed,
			zap.String(LogFieldName, name),
			zap.Int(LogFieldVersion, stored.Version),
		)
	}

	return prompt, nil
}

// InvalidateCache drops the cached parsed prompt for name, or all
// cached prompts when name is empty.
func (c *Catalog) InvalidateCache(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if name == "" {
		c.parsedCache = make(map[string]*catalogEntry)
		return
	}
	delete(c.parsedCache, name)
}

// Storage returns the underlying storage backend.
func (c *Catalog) Storage() PromptStorage {
	return c.storage
}

// Close closes the underlying storage backend.
func (c *Catalog) Close() error {
	return c.storage.Close()
}
