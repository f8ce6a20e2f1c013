// Package main is the entry point for the routewire CLI, which drives a
// route table from JSON command frames on stdin and prints lifecycle
// events as NDJSON on stdout.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/mveldt/routewire"
	"github.com/mveldt/routewire/cmd/routewire/internal/config"
	"github.com/mveldt/routewire/diag"
	"github.com/mveldt/routewire/lifecycle"
	"github.com/mveldt/routewire/memrouter"
	"github.com/mveldt/routewire/route"
	"github.com/mveldt/routewire/sink"
	"github.com/mveldt/routewire/stream"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	configPath string
	verbose    bool
}

func run() int {
	opts := parseFlags()

	res, err := config.Resolve(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	level := res.LogLevel
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	rtrOpts := []memrouter.RouterOption{}
	if res.BaseURL != "" {
		rtrOpts = append(rtrOpts, memrouter.WithBaseURL(res.BaseURL))
	}
	if res.DefaultRoute != "" {
		rtrOpts = append(rtrOpts, memrouter.WithDefaultRoute(res.DefaultRoute, res.DefaultParams))
	}
	rtr := memrouter.New(res.Routes, rtrOpts...)

	bridgeOpts := []routewire.Option{
		routewire.WithObserver(diag.NewSlog(logger)),
	}
	if !res.Autostart {
		bridgeOpts = append(bridgeOpts, routewire.WithoutAutostart())
	}
	if res.Trace || opts.verbose {
		bridgeOpts = append(bridgeOpts, routewire.WithCommandTrace())
	}

	bridge, err := routewire.New(rtr, bridgeOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	commands := stream.New[any]()
	driver, err := bridge.Drive(commands)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer driver.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	printer := &eventPrinter{out: out}
	if err := printer.attach(driver); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		raw, err := sink.ParseJSON([]byte(line))
		if err != nil {
			logger.Warn("bad command frame", "error", err)
			continue
		}
		commands.Emit(raw)
		out.Flush()
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading stdin: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "routewire.yaml", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "routewire.yaml", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose diagnostics on stderr")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Reads JSON command frames from stdin, one per line, e.g.\n")
		fmt.Fprintf(os.Stderr, "  [\"navigate\", \"users.detail\", {\"id\": \"42\"}]\n")
		fmt.Fprintf(os.Stderr, "and prints route lifecycle events as NDJSON on stdout.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("routewire %s (%s)\n", version, commit)
		os.Exit(0)
	}

	return opts
}

// eventPrinter renders lifecycle events as one JSON object per line.
type eventPrinter struct {
	out *bufio.Writer
}

func (p *eventPrinter) attach(d *routewire.Driver) error {
	subs := []struct {
		s  *stream.Stream[lifecycle.Transition]
		ev string
	}{
		{d.TransitionStarts(), lifecycle.KindTransitionStart.String()},
		{d.TransitionSuccesses(), lifecycle.KindTransitionSuccess.String()},
		{d.TransitionCancels(), lifecycle.KindTransitionCancel.String()},
	}
	for _, su := range subs {
		ev := su.ev
		if _, err := su.s.Subscribe(func(tr lifecycle.Transition) {
			p.print(ev, tr.To, tr.From, nil)
		}); err != nil {
			return err
		}
	}
	if _, err := d.Starts().Subscribe(func(struct{}) {
		p.print(lifecycle.KindStart.String(), nil, nil, nil)
	}); err != nil {
		return err
	}
	if _, err := d.Stops().Subscribe(func(struct{}) {
		p.print(lifecycle.KindStop.String(), nil, nil, nil)
	}); err != nil {
		return err
	}
	if _, err := d.TransitionErrors().Subscribe(func(te lifecycle.TransitionError) {
		p.print(lifecycle.KindTransitionError.String(), te.To, te.From, te.Err)
	}); err != nil {
		return err
	}
	if _, err := d.CommandErrors().Subscribe(func(cerr error) {
		p.print("command.error", nil, nil, cerr)
	}); err != nil {
		return err
	}
	return nil
}

func (p *eventPrinter) print(event string, to, from *route.State, cause error) {
	line := []byte(`{}`)
	line, _ = sjson.SetBytes(line, "event", event)
	line = setState(line, "to", to)
	line = setState(line, "from", from)
	if cause != nil {
		line, _ = sjson.SetBytes(line, "error", cause.Error())
	}
	p.out.Write(line)
	p.out.WriteByte('\n')
}

func setState(line []byte, key string, st *route.State) []byte {
	if st == nil {
		return line
	}
	line, _ = sjson.SetBytes(line, key+".name", string(st.Name))
	line, _ = sjson.SetBytes(line, key+".path", st.Path)
	for k, v := range st.Params {
		line, _ = sjson.SetBytes(line, key+".params."+k, v)
	}
	return line
}
