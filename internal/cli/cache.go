package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/campushq/schoolapi/common"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Response cache diagnostics",
}

// cacheSelftestCmd runs the in-memory response cache through its paces:
// write/read, TTL expiry, invalidation, clear, and the cached-fetch wrapper's
// read-through and failure semantics.
var cacheSelftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run the response cache health checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		ttl := e.cfg.CacheTTL()

		failed := 0
		check := func(name string, ok bool) {
			status := "ok"
			if !ok {
				status = "FAIL"
				failed++
			}
			fmt.Fprintf(os.Stdout, "%-40s %s\n", name, status)
		}

		store := common.NewMemoryCache[string]()

		store.Set("a", "v1", 50*time.Millisecond)
		got, found := store.Get("a")
		check("set then get returns value", found && got == "v1")

		check("isExpired false while fresh", !store.IsExpired("a"))

		time.Sleep(60 * time.Millisecond)
		_, found = store.Get("a")
		check("get after ttl returns nothing", !found)
		check("expired entry evicted lazily", store.IsExpired("a"))

		store.Set("a", "v2", ttl)
		got, _ = store.Get("a")
		check("overwrite after expiry returns new value", got == "v2")

		store.Set("b", "v3", ttl)
		store.Clear()
		_, foundA := store.Get("a")
		_, foundB := store.Get("b")
		check("clear empties all keys", !foundA && !foundB)

		// cached-fetch wrapper
		calls := 0
		fetcher := common.NewCachedFetcher(store, "selftest_key", ttl,
			func(ctx context.Context) (common.Result[string], error) {
				calls++
				return common.Result[string]{Success: true, Data: "fetched"}, nil
			})

		ctx := cmd.Context()
		v, ok := fetcher.Execute(ctx, false)
		check("fetcher populates on miss", ok && v == "fetched" && calls == 1)

		_, _ = fetcher.Execute(ctx, false)
		check("fetcher serves second call from cache", calls == 1)

		_, _ = fetcher.Execute(ctx, true)
		check("force refresh bypasses cache", calls == 2)

		fetcher.Invalidate()
		_, _ = fetcher.Execute(ctx, false)
		check("invalidate forces next fetch", calls == 3)

		failing := common.NewCachedFetcher(store, "selftest_fail", ttl,
			func(ctx context.Context) (common.Result[string], error) {
				return common.Result[string]{Success: false, Message: "boom"}, nil
			})
		_, ok = failing.Execute(ctx, false)
		check("failure not cached and message surfaced",
			!ok && failing.Err() == "boom" && store.IsExpired("selftest_fail"))

		if failed > 0 {
			return runtimeErr(fmt.Errorf("%d cache check(s) failed", failed))
		}
		fmt.Fprintln(os.Stdout, "All cache checks passed.")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheSelftestCmd)
}
