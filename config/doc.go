// Package config loads run configurations from YAML files.
//
// A file declares the run shape (iterations, delay or cron schedule) and the
// watchers to execute, by probe type. Load reads and expands the file, Build
// turns it into a run.Config ready for run.New. Hooks are code, not
// configuration: attach them to the built config before starting the run.
//
// # File Format
//
//	iterations: 0          # 0 = run until stopped
//	delay: 30s             # fixed pause between iterations
//	schedule: "*/5 * * * *" # cron expression; overrides delay when set
//	watchers:
//	  - name: api
//	    type: http
//	    timeout: 5s
//	    options:
//	      url: https://api.example.com/healthz
//	      expect_status: 200
//	  - name: db-port
//	    type: tcp
//	    options:
//	      address: ${DB_HOST}:5432
//
// Probe types: http, tcp, ping, dns, memory. The options block is decoded
// into the matching probe config; field names are lower_snake_case.
//
// # Environment Expansion
//
// `$VAR` and `${VAR}` expand from the environment before parsing. A `${VAR}`
// whose variable is unset is an error, so missing secrets fail at load time
// instead of producing silently broken probes. `$$` emits a literal `$`.
//
// # Reloading
//
// Reloader watches the file with fsnotify and delivers each changed, valid
// File on a channel. Deciding what to do with an update (typically stopping
// the current run and starting a new one) is left to the host.
package config
