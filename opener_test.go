package catena

import (
	"errors"
	"io"
	"io/fs"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoaderOpenerServesLoaderContents(t *testing.T) {
	loader := LoaderFunc(func(name string) ([]byte, error) {
		if name == "a" {
			return []byte("alpha"), nil
		}
		return nil, fs.ErrNotExist
	})
	opener := LoaderOpener(loader)

	src, err := opener.Open("a")
	assert.NoError(t, err)
	data, err := io.ReadAll(src)
	assert.NoError(t, err)
	assert.Equal(t, "alpha", string(data))
	assert.NoError(t, src.Close())

	_, err = opener.Open("b")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFileReaderWithLoaderOpener(t *testing.T) {
	loader := LoaderFunc(func(name string) ([]byte, error) {
		return []byte(name), nil
	})
	reader := NewFileReaderWithOpener(LoaderOpener(loader), "foo", "bar")

	data, err := io.ReadAll(reader)
	assert.NoError(t, err)
	assert.Equal(t, "foobar", string(data))
}

func TestWrapLoaderWithLRUCache(t *testing.T) {
	var calls int
	loader := LoaderFunc(func(name string) ([]byte, error) {
		calls++
		if name == "bad" {
			return nil, errors.New("load failed")
		}
		return []byte(name), nil
	})
	cached := WrapLoaderWithLRUCache(loader, 8)

	for i := 0; i < 2; i++ {
		data, err := cached.Load("a")
		assert.NoError(t, err)
		assert.Equal(t, "a", string(data))
	}
	assert.Equal(t, 1, calls)

	_, err := cached.Load("b")
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)

	// Errors are not cached, so a failing source is retried.
	_, err = cached.Load("bad")
	assert.Error(t, err)
	_, err = cached.Load("bad")
	assert.Error(t, err)
	assert.Equal(t, 4, calls)
}

func TestWrapLoaderWithLRUCacheEvicts(t *testing.T) {
	var calls int
	loader := LoaderFunc(func(name string) ([]byte, error) {
		calls++
		return []byte(name), nil
	})
	cached := WrapLoaderWithLRUCache(loader, 1)

	_, _ = cached.Load("a")
	_, _ = cached.Load("b")
	_, _ = cached.Load("a")
	assert.Equal(t, 3, calls)
}

func TestWrapLoaderWithSingleFlight(t *testing.T) {
	var calls atomic.Int64
	loader := LoaderFunc(func(name string) ([]byte, error) {
		calls.Add(1)
		time.Sleep(100 * time.Millisecond)
		return []byte("data"), nil
	})
	flight := WrapLoaderWithSingleFlight(loader)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := flight.Load("a")
			assert.NoError(t, err)
			assert.Equal(t, "data", string(data))
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load())
}

func TestWrapLoaderWithSingleFlightForwardsErrors(t *testing.T) {
	boom := errors.New("boom")
	flight := WrapLoaderWithSingleFlight(LoaderFunc(func(name string) ([]byte, error) {
		return nil, boom
	}))

	_, err := flight.Load("a")
	assert.Equal(t, boom, err)
}
