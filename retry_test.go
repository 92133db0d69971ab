package localcache

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
)

// errLocked stands in for the platform sharing-violation errno so the
// retry loop can be exercised on any OS and on the in-memory filesystem.
var errLocked = errors.New("file locked by another process")

// flakyOpenFs fails OpenFile a fixed number of times before delegating.
type flakyOpenFs struct {
	afero.Fs
	mu       sync.Mutex
	failures int
	openErr  error
	attempts int
}

func (f *flakyOpenFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	f.mu.Lock()
	f.attempts++
	if f.failures > 0 {
		f.failures--
		f.mu.Unlock()
		return nil, &os.PathError{Op: "open", Path: name, Err: f.openErr}
	}
	f.mu.Unlock()
	return f.Fs.OpenFile(name, flag, perm)
}

func lockedRetryPolicy(maxAttempts int, slept *int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		Interval:    15 * time.Millisecond,
		Retryable:   func(err error) bool { return errors.Is(err, errLocked) },
		Sleep: func(time.Duration) {
			if slept != nil {
				*slept++
			}
		},
	}
}

func TestOpenRetriesThroughContention(t *testing.T) {
	flaky := &flakyOpenFs{Fs: afero.NewMemMapFs(), failures: 3, openErr: errLocked}
	slept := 0
	cache := New(Config{AppDataDir: "appdata"},
		WithFs(flaky),
		WithNowFunc(fixedNowFunc),
		WithRetryPolicy(lockedRetryPolicy(10, &slept)),
	)

	err := cache.Add("key", fixedNowFunc().Add(time.Hour), []byte("payload"))
	if err != nil {
		t.Fatalf("Add should survive transient contention: %v", err)
	}
	if slept != 3 {
		t.Fatalf("expected 3 retry sleeps, got %d", slept)
	}
}

func TestOpenRetryBudgetExhausted(t *testing.T) {
	flaky := &flakyOpenFs{Fs: afero.NewMemMapFs(), failures: 1 << 30, openErr: errLocked}
	cache := New(Config{AppDataDir: "appdata"},
		WithFs(flaky),
		WithNowFunc(fixedNowFunc),
		WithRetryPolicy(lockedRetryPolicy(5, nil)),
	)

	err := cache.Add("key", fixedNowFunc().Add(time.Hour), []byte("payload"))
	if !errors.Is(err, ErrRetryExhausted) {
		t.Fatalf("expected ErrRetryExhausted, got %v", err)
	}
	if flaky.attempts != 5 {
		t.Fatalf("expected exactly 5 open attempts, got %d", flaky.attempts)
	}
}

func TestOpenNonRetryableFailsImmediately(t *testing.T) {
	flaky := &flakyOpenFs{Fs: afero.NewMemMapFs(), failures: 1 << 30, openErr: os.ErrPermission}
	slept := 0
	cache := New(Config{AppDataDir: "appdata"},
		WithFs(flaky),
		WithNowFunc(fixedNowFunc),
		WithRetryPolicy(lockedRetryPolicy(100, &slept)),
	)

	err := cache.Add("key", fixedNowFunc().Add(time.Hour), []byte("payload"))
	if err == nil {
		t.Fatal("expected open to fail")
	}
	if errors.Is(err, ErrRetryExhausted) {
		t.Fatalf("permission error must not be retried: %v", err)
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("expected underlying permission error, got %v", err)
	}
	if flaky.attempts != 1 || slept != 0 {
		t.Fatalf("expected a single attempt with no sleeps, got attempts=%d slept=%d", flaky.attempts, slept)
	}
}
