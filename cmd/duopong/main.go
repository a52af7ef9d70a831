package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/diegok/duopong/internal/app"
	"github.com/diegok/duopong/internal/config"
	"github.com/diegok/duopong/internal/server"
)

func main() {
	cfg, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	if cfg.HTTPAddr != "" {
		showServerInfo(cfg.HTTPAddr)
	}

	application := app.NewApp(cfg)
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  duopong [options]                 Play a two-player match in this terminal")
	fmt.Fprintln(os.Stderr, "  duopong --http :3000 [options]    Play and let others watch in a browser")
	fmt.Fprintln(os.Stderr, "  duopong --watch <address>         Watch a match served with --http")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintf(os.Stderr, "  --points <n>        Points to win, 1-%d (default: %d)\n", config.MaxPoints, config.DefaultPoints)
	fmt.Fprintln(os.Stderr, "  --config <file>     Settings file (.yaml, .yml or .toml)")
	fmt.Fprintf(os.Stderr, "  --tick-rate <n>     Frames per second (default: %d)\n", config.DefaultTickRate)
	fmt.Fprintln(os.Stderr, "  --seed <n>          Random seed for serves (default: random)")
	fmt.Fprintln(os.Stderr, "  --no-sound          Disable sound effects")
	fmt.Fprintln(os.Stderr, "  --log <file>        Append logs to a file")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Controls:")
	fmt.Fprintln(os.Stderr, "  w / s               P1 paddle")
	fmt.Fprintln(os.Stderr, "  up / down           P2 paddle")
	fmt.Fprintln(os.Stderr, "  ENTER / space       Serve")
	fmt.Fprintln(os.Stderr, "  r                   Reset")
	fmt.Fprintln(os.Stderr, "  + / -               Points to win")
	fmt.Fprintln(os.Stderr, "  h                   Rules")
	fmt.Fprintln(os.Stderr, "  x                   Close the winner dialog")
	fmt.Fprintln(os.Stderr, "  q                   Quit")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  duopong --points 11")
	fmt.Fprintln(os.Stderr, "  duopong --http :3000 --config court.yaml")
	fmt.Fprintln(os.Stderr, "  duopong --watch 192.168.1.100")
}

func showServerInfo(addr string) {
	port := strconv.Itoa(config.DefaultHTTPPort)
	if _, p, err := net.SplitHostPort(addr); err == nil {
		port = p
	}

	fmt.Printf("Serving the match on %s\n", addr)
	fmt.Println("Spectators can open a browser or run:")
	fmt.Println("")

	for _, a := range server.LocalAddresses(port) {
		fmt.Printf("  duopong --watch %s    (http://%s)\n", a, a)
	}

	fmt.Printf("  duopong --watch localhost:%s  (same machine)\n", port)
	fmt.Println("")
}
