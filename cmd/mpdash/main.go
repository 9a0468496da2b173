package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/mpdash/mpdash/internal/app"
	"github.com/mpdash/mpdash/internal/config"
	"github.com/mpdash/mpdash/internal/mpd"
)

const version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	address := flag.String("address", "", "daemon address (host:port or socket path)")
	configPath := flag.StringP("config", "c", "", "settings file path")
	layoutPath := flag.String("layout", "", "layout file path")
	jumpLines := flag.Int("jump-lines", 0, "rows a half-page jump moves the selection")
	seekSecs := flag.Float64("seek-secs", 0, "seconds a seek moves within the song")
	ups := flag.Float64("ups", 0, "status refreshes per second")

	var cycle, clearQuery bool
	pairVar(&cycle, true, "cycle", "wrap the selection past either end of the queue")
	pairVar(&cycle, false, "no-cycle", "clamp the selection at the ends of the queue")
	pairVar(&clearQuery, true, "clear-query-on-play", "clear the search query when playing a song")
	pairVar(&clearQuery, false, "no-clear-query-on-play", "keep the search query when playing a song")

	rawMode := flag.BoolP("cmd", "C", false, "send the remaining arguments as one raw command and exit")
	showVersion := flag.BoolP("version", "V", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("mpdash " + version)
		return 0
	}
	if !*rawMode && flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "mpdash: unexpected argument %q\n", flag.Arg(0))
		return 1
	}

	cfg, err := config.Load(*configPath, *layoutPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mpdash: %v\n", err)
		return 1
	}

	// Address precedence: flag, then environment, then settings file.
	if addr := addressFromEnv(); addr != "" {
		cfg.Address = addr
	}
	if flag.Lookup("address").Changed {
		cfg.Address = *address
	}
	if flag.Lookup("jump-lines").Changed {
		cfg.JumpLines = *jumpLines
	}
	if flag.Lookup("seek-secs").Changed {
		cfg.SeekSecs = *seekSecs
	}
	if flag.Lookup("ups").Changed {
		cfg.UPS = *ups
	}
	if flag.Lookup("cycle").Changed || flag.Lookup("no-cycle").Changed {
		cfg.Cycle = cycle
	}
	if flag.Lookup("clear-query-on-play").Changed || flag.Lookup("no-clear-query-on-play").Changed {
		cfg.ClearQueryOnPlay = clearQuery
	}

	if *rawMode {
		if flag.NArg() == 0 {
			fmt.Fprintln(os.Stderr, "mpdash: --cmd needs a command to send")
			return 1
		}
		command := strings.Join(flag.Args(), " ")
		if err := mpd.ExecRaw(context.Background(), cfg.Address, []string{command}, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "mpdash: %v\n", err)
			return 1
		}
		return 0
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "mpdash: %v\n", err)
		return 1
	}
	return 0
}

// addressFromEnv reads MPD_HOST and MPD_PORT. A host containing a
// slash is a unix socket path; otherwise the port defaults to 6600.
func addressFromEnv() string {
	host := os.Getenv("MPD_HOST")
	if host == "" {
		return ""
	}
	if strings.Contains(host, "/") {
		return host
	}
	port := os.Getenv("MPD_PORT")
	if port == "" {
		port = "6600"
	}
	return net.JoinHostPort(host, port)
}

// pairVar registers one half of an on/off flag pair writing to dest.
func pairVar(dest *bool, on bool, name, usage string) {
	flag.Var(&pairValue{dest: dest, on: on}, name, usage)
	flag.Lookup(name).NoOptDefVal = "true"
}

// pairValue makes --flag and --no-flag share a destination. Flags
// apply in command-line order, so the one given last wins.
type pairValue struct {
	dest *bool
	on   bool
}

func (p *pairValue) String() string { return "" }

func (p *pairValue) Type() string { return "bool" }

func (p *pairValue) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*p.dest = v == p.on
	return nil
}
