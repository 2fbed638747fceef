package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/skycast/skycast/internal/client"
	"github.com/skycast/skycast/internal/domain"
	"github.com/skycast/skycast/internal/view"
)

// lookup describes one weather request the presenter wants to run.
type lookup struct {
	kind      view.LookupKind
	city      string
	latitude  string
	longitude string
}

// outcome carries the result of a finished lookup back to the state loop,
// tagged with the generation that started it.
type outcome struct {
	generation uint64
	kind       view.LookupKind
	report     *domain.WeatherReport
	err        error
}

func main() {
	addr := flag.String("addr", envOr("SKYCAST_ADDR", "http://localhost:8080"), "gateway base URL")
	city := flag.String("city", "", "look up weather by city name")
	lat := flag.String("lat", "", "latitude for a coordinate lookup")
	lon := flag.String("lon", "", "longitude for a coordinate lookup")
	celsius := flag.Bool("celsius", false, "display temperatures in Celsius")
	interactive := flag.Bool("interactive", false, "start an interactive session")
	timeout := flag.Duration("timeout", 30*time.Second, "per-request timeout")
	flag.Parse()

	api := client.New(*addr, *timeout)

	state := view.NewState()
	if *celsius {
		state = state.ToggleUnit()
	}

	first, state := initialLookup(*city, *lat, *lon, state)

	if *interactive {
		runLoop(api, *timeout, state, first)
		return
	}
	runOnce(api, *timeout, state, first)
}

// initialLookup picks the first request from the flags. With no location
// flags it falls back to the default coordinates, like a client that could
// not obtain a position.
func initialLookup(city, lat, lon string, state view.State) (lookup, view.State) {
	switch {
	case city != "":
		return lookup{kind: view.LookupCity, city: city}, state
	case lat != "" || lon != "":
		return lookup{kind: view.LookupCoordinates, latitude: lat, longitude: lon}, state
	default:
		state = state.WithNotice("No location given, showing the default location.")
		return lookup{
			kind:      view.LookupCoordinates,
			latitude:  strconv.FormatFloat(view.DefaultLatitude, 'f', -1, 64),
			longitude: strconv.FormatFloat(view.DefaultLongitude, 'f', -1, 64),
		}, state
	}
}

// runOnce performs a single lookup, renders the result and exits.
func runOnce(api *client.Client, timeout time.Duration, state view.State, req lookup) {
	state = state.StartLookup()
	generation := state.Generation

	report, err := execute(api, timeout, req)
	if err != nil {
		log.Printf("lookup failed: %v", err)
		state = state.Fail(generation, req.kind)
	} else {
		state = state.Resolve(generation, report)
	}

	fmt.Print(view.Render(state))
	if state.Phase == view.PhaseError {
		os.Exit(1)
	}
}

// runLoop is the interactive session. Input is read on its own goroutine and
// lookups run concurrently; outcomes carry the generation that started them,
// so a slow response can never clobber a newer one.
func runLoop(api *client.Client, timeout time.Duration, state view.State, first lookup) {
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	outcomes := make(chan outcome, 4)
	last := first

	dispatch := func(req lookup) {
		last = req
		state = state.StartLookup()
		generation := state.Generation
		go func() {
			report, err := execute(api, timeout, req)
			outcomes <- outcome{generation: generation, kind: req.kind, report: report, err: err}
		}()
	}

	fmt.Println("Type help for commands.")
	dispatch(first)
	fmt.Print(view.Render(state))

	for {
		select {
		case out := <-outcomes:
			if out.err != nil {
				log.Printf("lookup failed: %v", out.err)
				state = state.Fail(out.generation, out.kind)
			} else {
				state = state.Resolve(out.generation, out.report)
			}
			fmt.Print(view.Render(state))

		case line, ok := <-lines:
			if !ok {
				return
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			switch fields[0] {
			case "city":
				if len(fields) < 2 {
					fmt.Println("usage: city <name>")
					continue
				}
				state = state.WithNotice("")
				dispatch(lookup{kind: view.LookupCity, city: strings.Join(fields[1:], " ")})
				fmt.Print(view.Render(state))
			case "coords":
				if len(fields) != 3 {
					fmt.Println("usage: coords <latitude> <longitude>")
					continue
				}
				state = state.WithNotice("")
				dispatch(lookup{kind: view.LookupCoordinates, latitude: fields[1], longitude: fields[2]})
				fmt.Print(view.Render(state))
			case "units":
				state = state.ToggleUnit()
				fmt.Print(view.Render(state))
			case "refresh":
				dispatch(last)
				fmt.Print(view.Render(state))
			case "help":
				printHelp()
			case "quit", "exit":
				return
			default:
				fmt.Printf("unknown command %q; type help for commands\n", fields[0])
			}
		}
	}
}

// execute runs one lookup against the gateway.
func execute(api *client.Client, timeout time.Duration, req lookup) (*domain.WeatherReport, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if req.kind == view.LookupCity {
		return api.CurrentByCity(ctx, req.city)
	}
	return api.CurrentByCoordinates(ctx, req.latitude, req.longitude)
}

func printHelp() {
	fmt.Println("commands:")
	fmt.Println("  city <name>                    look up weather by city")
	fmt.Println("  coords <latitude> <longitude>  look up weather by coordinates")
	fmt.Println("  units                          toggle between °F and °C")
	fmt.Println("  refresh                        repeat the last lookup")
	fmt.Println("  quit                           exit")
}

// envOr reads an environment variable with a fallback default.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
