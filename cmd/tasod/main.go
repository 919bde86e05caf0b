// Command tasod runs taso.Run against a host circuit and an ECC rewrite
// set, exposing the live optimisation over HTTP/websocket via statusserver
// while it runs.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qcopt/taso/core"
	"github.com/qcopt/taso/resultstore"
	"github.com/qcopt/taso/rewrite"
	"github.com/qcopt/taso/statusserver"
	"github.com/qcopt/taso/taso"
)

func main() {
	circuitPath := flag.String("circuit", "", "path to the host circuit JSON file (required)")
	eccPath := flag.String("ecc", "", "path to the ECC rewrite-set JSON file (required)")
	addr := flag.String("addr", ":8080", "HTTP listen address for the status server")
	threads := flag.Int("threads", 1, "number of worker threads (1 = single-threaded)")
	timeout := flag.Duration("timeout", 0, "optimisation deadline (0 = unbounded)")
	flag.Parse()

	if *circuitPath == "" || *eccPath == "" {
		log.Fatal("tasod: -circuit and -ecc are required")
	}

	host, err := loadCircuit(*circuitPath)
	if err != nil {
		log.Fatalf("tasod: %v", err)
	}
	rewriter, err := loadRewriter(*eccPath)
	if err != nil {
		log.Fatalf("tasod: %v", err)
	}

	hub := statusserver.NewHub()
	go hub.Run()
	tracker := statusserver.NewTracker()

	var persistent interface {
		SaveBest(runID string, circLen int, cost int, at time.Time) error
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		store, err := resultstore.Connect(context.Background(), dbURL)
		if err != nil {
			log.Printf("tasod: DATABASE_URL set but connect failed, continuing without persistence: %v", err)
		} else {
			defer store.Close()
			if err := store.InitSchema(context.Background()); err != nil {
				log.Printf("tasod: schema init failed: %v", err)
			}
			persistent = store
		}
	}
	broadcaster := statusserver.NewBroadcaster(tracker, hub, persistent)

	router := statusserver.NewRouter(tracker, hub)
	go func() {
		if err := router.Run(*addr); err != nil {
			log.Printf("tasod: status server stopped: %v", err)
		}
	}()
	log.Printf("tasod: status server listening on %s", *addr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := []taso.Option{taso.WithThreads(*threads)}
	if *timeout > 0 {
		opts = append(opts, taso.WithTimeout(*timeout))
	}
	opts = append(opts, taso.WithResultStore(broadcaster))

	result, err := taso.Run(ctx, host, rewriter, rewrite.ExhaustiveStrategy{}, costNumNodes, opts...)
	if err != nil {
		log.Fatalf("tasod: run failed: %v", err)
	}
	log.Printf("tasod: run %s complete: cost=%d timed_out=%v seen=%d elapsed=%s",
		result.RunID, result.Cost, result.TimedOut, result.SeenCount, result.Elapsed)
}

// costNumNodes is the default cost function: total node count, a simple
// stand-in for "count of two-qubit gates" (spec §4.5) until a caller wants
// a gate-weighted cost instead.
func costNumNodes(c *core.Circuit) int { return c.NumNodes() }

func loadCircuit(path string) (*core.Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return rewrite.DecodeCircuitJSON(data)
}

func loadRewriter(path string) (*rewrite.ECCRewriter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	classes, err := rewrite.DecodeECCJSON(data)
	if err != nil {
		return nil, err
	}
	return rewrite.NewECCRewriter(classes)
}
