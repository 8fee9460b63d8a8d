package slashdoc

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.dw1.io/fastcache"
	"golang.org/x/mod/sumdb/dirhash"
)

const (
	cacheMaxEntries = 1_000
)

// cacheEntry is the parsed node set of one exact set of inputs.
type cacheEntry struct {
	Files []string
	Nodes []*Node
}

// getCache initializes and returns the global cache instance.
func getCache() (*fastcache.Cache[string, cacheEntry], error) {
	var cacheInitErr error

	cacheOnce.Do(func() {
		dir, err := getCacheDir()
		if err != nil {
			cacheInitErr = err

			return
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			cacheInitErr = fmt.Errorf("could not create cache directory: %w", err)

			return
		}

		cacheFilePath = filepath.Join(dir, "cache.gob")
		cachePersistent = true

		cache, err := loadCacheFromFile(cacheFilePath, cacheMaxEntries)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logger.Warningf("discarding unreadable cache %s: %v", cacheFilePath, err)
				cachePersistent = false
				cacheFilePath = ""
			}

			cache = fastcache.New[string, cacheEntry](cacheMaxEntries)
		}

		globalCache = cache
	})

	if cacheInitErr != nil {
		return nil, cacheInitErr
	}

	return globalCache, nil
}

func getCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("could not get user cache directory: %w", err)
	}

	return filepath.Join(dir, "slashdoc"), nil
}

// getCacheKey hashes the contents of files together with their order and the
// parse settings.
func getCacheKey(files []string, token string, indent int) (string, error) {
	sum, err := dirhash.Hash1(files, func(name string) (io.ReadCloser, error) {
		return os.Open(name)
	})
	if err != nil {
		return "", fmt.Errorf("hash inputs: %w", err)
	}

	hash := fnv.New64a()
	hash.Write([]byte(sum))
	hash.Write([]byte{0})
	hash.Write([]byte(strings.Join(files, "\x00")))
	hash.Write([]byte{0})
	hash.Write([]byte(token))
	hash.Write([]byte{0})
	hash.Write([]byte(strconv.Itoa(indent)))

	return fmt.Sprintf("%x", hash.Sum64()), nil
}

func getValidCacheEntry(cache *fastcache.Cache[string, cacheEntry], key string) (cacheEntry, bool) {
	if cache == nil || key == "" {
		return cacheEntry{}, false
	}

	entry, ok := cache.Get(key)

	return entry, ok
}

func setCacheEntry(cache *fastcache.Cache[string, cacheEntry], entry cacheEntry, keys ...string) error {
	for _, key := range keys {
		if key == "" {
			continue
		}

		cache.Set(key, entry)
	}

	if !cachePersistent || cacheFilePath == "" {
		return nil
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if err := cache.SaveToFile(cacheFilePath); err != nil {
		if errors.Is(err, fs.ErrPermission) || os.IsPermission(err) || strings.Contains(strings.ToLower(err.Error()), "permission denied") {
			return fmt.Errorf("cache persistence permission error: %w", fs.ErrPermission)
		}
		return err
	}

	return nil
}

func loadCacheFromFile(path string, maxEntries int) (_ *fastcache.Cache[string, cacheEntry], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("load cache panic: %v", r)
		}
	}()

	cache, err := fastcache.LoadFromFile[string, cacheEntry](path)
	if err != nil {
		return nil, err
	}

	if cache == nil {
		cache = fastcache.New[string, cacheEntry](maxEntries)
	}

	return cache, nil
}

// getOrLoad returns the document for files from the cache, parsing and
// caching it on a miss. Failed parses are never cached.
func (s *Slashdoc) getOrLoad(files []string) (*Document, error) {
	cache, err := getCache()
	if err != nil {
		return nil, err
	}

	if cache == nil {
		return s.load(files)
	}

	key, err := getCacheKey(files, s.token, s.indent)
	if err != nil {
		return nil, err
	}

	if entry, ok := getValidCacheEntry(cache, key); ok {
		logger.Debugf("cache hit for %d files", len(entry.Files))
		for _, n := range entry.Nodes {
			n.link()
		}

		return s.newDocument(entry.Nodes), nil
	}

	doc, err := s.load(files)
	if err != nil {
		return nil, err
	}

	entry := cacheEntry{
		Files: append([]string(nil), files...),
		Nodes: doc.Nodes,
	}

	if err := setCacheEntry(cache, entry, key); err != nil {
		return nil, err
	}

	return doc, nil
}
