package geodash

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/patrickmn/go-cache"
)

// Loader memoizes parsed reference files for the life of the process. An entry
// is keyed by the file's path, modification time and size, so loading an
// unchanged file again returns the identical result without reading it, while
// a rewritten file is parsed afresh.
type Loader struct {
	mu      sync.Mutex // held across load-and-store so each file version is parsed once
	cache   *cache.Cache
	current map[string]string // kind+path -> key of the version currently cached
}

// NewLoader returns an empty Loader.
func NewLoader() *Loader {
	return &Loader{
		cache:   cache.New(cache.NoExpiration, 0),
		current: make(map[string]string),
	}
}

// defaultLoader is shared by every Dashboard that is not given its own Loader.
var defaultLoader = sync.OnceValue(NewLoader)

// Boundaries returns the parsed boundary file at path.
func (l *Loader) Boundaries(path, stateKey, districtKey string) (*BoundarySet, error) {
	v, err := l.load("boundaries", path, stateKey+"\x00"+districtKey, func() (any, error) {
		return loadBoundaries(path, stateKey, districtKey)
	})
	if err != nil {
		return nil, err
	}
	return v.(*BoundarySet), nil
}

// Population returns the parsed population table at path.
func (l *Loader) Population(path string) (map[string]PopulationRecord, error) {
	v, err := l.load("population", path, "", func() (any, error) {
		return LoadPopulation(path)
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]PopulationRecord), nil
}

// Len returns the number of cached file versions.
func (l *Loader) Len() int {
	return l.cache.ItemCount()
}

// Flush drops every cached result.
func (l *Loader) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache.Flush()
	l.current = make(map[string]string)
}

func (l *Loader) load(kind, path, variant string, parse func() (any, error)) (any, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	info, err := statFile(abs)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	slot := kind + "|" + abs + "|" + variant
	key := fmt.Sprintf("%s|%d|%d", slot, info.ModTime().UnixNano(), info.Size())

	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.cache.Get(key); ok {
		return v, nil
	}

	// Errors are not cached: a fixed file is picked up on the next call.
	v, err := parse()
	if err != nil {
		return nil, err
	}
	if old, ok := l.current[slot]; ok && old != key {
		l.cache.Delete(old)
	}
	l.cache.Set(key, v, cache.NoExpiration)
	l.current[slot] = key
	return v, nil
}

func statFile(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return info, nil
}
