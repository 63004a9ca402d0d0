package sink_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/jonwraymond/warden/run"
	"github.com/jonwraymond/warden/sink"
	"github.com/jonwraymond/warden/watch"
)

func ExampleState() {
	state := sink.NewState()

	cfg := run.Config{
		Iterations: 1,
		Watchers: []run.WatcherEntry{
			{Watcher: watch.NewWatcherFunc("ping", func(ctx context.Context) (watch.Outcome, error) {
				return watch.Valid("ok"), nil
			})},
		},
	}
	state.AttachRun(&cfg.Hooks)

	s, err := run.New(cfg)
	if err != nil {
		panic(err)
	}
	if err := s.Start(context.Background()); err != nil {
		panic(err)
	}

	rec := httptest.NewRecorder()
	state.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	fmt.Println("status:", rec.Code)
	fmt.Println("checks:", len(state.Latest().Results))
	// Output:
	// status: 200
	// checks: 1
}
