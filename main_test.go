package localcache

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestMain(t *testing.M) {
	code := t.Run()

	os.Exit(code)
}

func fixedNowFunc() time.Time {
	return time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
}

// newTestCache returns a memfs-backed cache with a deterministic clock
// and a retry policy that never sleeps for real.
func newTestCache(t *testing.T, options ...Option) (*Cache, afero.Fs) {
	t.Helper()

	memFs := afero.NewMemMapFs()
	policy := DefaultRetryPolicy()
	policy.Sleep = func(time.Duration) {}

	base := []Option{
		WithFs(memFs),
		WithNowFunc(fixedNowFunc),
		WithRetryPolicy(policy),
	}
	cache := New(Config{AppDataDir: "appdata"}, append(base, options...)...)
	return cache, memFs
}
