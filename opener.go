package catena

import (
	"bytes"
	"io"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Opener acquires a readable source for a path-like name, or fails with
// whatever error the backing store reports. FileReader treats the Opener
// as opaque: errors pass through to the caller unchanged.
type Opener interface {
	Open(name string) (io.ReadCloser, error)
}

// OpenerFunc converts an Open function into an Opener type.
type OpenerFunc func(name string) (io.ReadCloser, error)

func (o OpenerFunc) Open(name string) (io.ReadCloser, error) {
	return o(name)
}

// osOpener opens files from the local filesystem.
var osOpener = OpenerFunc(func(name string) (io.ReadCloser, error) {
	return os.Open(name)
})

// Loader implements a Load method that returns the full contents of a
// named source as a byte slice.
//
// Load should be safe to call from multiple goroutines so that loaders
// can be shared between readers.
type Loader interface {
	Load(name string) ([]byte, error)
}

// LoaderFunc converts a Load function into a Loader type.
type LoaderFunc func(name string) ([]byte, error)

func (l LoaderFunc) Load(name string) ([]byte, error) {
	return l(name)
}

// LoaderOpener adapts a Loader into an Opener. The loader is invoked at
// open time, so a FileReader built on it stays lazy: nothing is loaded
// until the first byte of a source is requested.
func LoaderOpener(loader Loader) Opener {
	return OpenerFunc(func(name string) (io.ReadCloser, error) {
		data, err := loader.Load(name)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// WrapLoaderWithSingleFlight wraps a Loader to ensure that only one call
// at a time for a given name is made to the wrapped loader. Concurrent
// loads of the same name share a single result. Loads for different names
// can still happen in parallel.
func WrapLoaderWithSingleFlight(loader Loader) Loader {
	group := new(singleflight.Group)
	return LoaderFunc(func(name string) ([]byte, error) {
		data, err, _ := group.Do(name, func() (interface{}, error) {
			return loader.Load(name)
		})
		if err != nil {
			return nil, err
		}
		return data.([]byte), nil
	})
}

// WrapLoaderWithLRUCache wraps a loader to cache the contents returned by
// the inner loader in an LRU cache with the given slot count. Errors are
// not cached, so a failing source is retried on the next load. For best
// results, wrap the returned Loader with WrapLoaderWithSingleFlight to
// make sure multiple calls are not made while the cache is being filled.
//
// If the given slots count is less than one, a single slot is used.
func WrapLoaderWithLRUCache(loader Loader, slots int) Loader {
	cache, _ := lru.New[string, []byte](max(slots, 1))
	return LoaderFunc(func(name string) ([]byte, error) {
		if data, found := cache.Get(name); found {
			return data, nil
		}

		data, err := loader.Load(name)
		if err == nil {
			cache.Add(name, data)
		}

		return data, err
	})
}
