package config_test

import (
	"fmt"

	"github.com/jonwraymond/warden/config"
)

func ExampleParse() {
	f, err := config.Parse([]byte(`
iterations: 10
delay: 30s
watchers:
  - name: api
    type: http
    options:
      url: http://localhost:8080/healthz
  - name: heap
    type: memory
`))
	if err != nil {
		panic(err)
	}

	cfg, err := f.Build()
	if err != nil {
		panic(err)
	}
	fmt.Println("iterations:", cfg.Iterations)
	fmt.Println("delay:", cfg.Delay)
	for _, entry := range cfg.Watchers {
		fmt.Println("watcher:", entry.Watcher.Name())
	}
	// Output:
	// iterations: 10
	// delay: 30s
	// watcher: api
	// watcher: heap
}
