// Command tasoctl is a thin, one-shot CLI wrapper around taso.Run: load a
// circuit and an ECC rewrite set, optimise, print the result. Unlike
// cmd/tasod it does not expose a status server — for quick local runs and
// scripting.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/qcopt/taso/core"
	"github.com/qcopt/taso/rewrite"
	"github.com/qcopt/taso/taso"
)

func main() {
	circuitPath := flag.String("circuit", "", "path to the host circuit JSON file (required)")
	eccPath := flag.String("ecc", "", "path to the ECC rewrite-set JSON file (required)")
	threads := flag.Int("threads", 1, "number of worker threads (1 = single-threaded)")
	timeout := flag.Duration("timeout", 0, "optimisation deadline (0 = unbounded)")
	csvPath := flag.String("csv", "", "optional path to write a best-candidate CSV log")
	flag.Parse()

	if *circuitPath == "" || *eccPath == "" {
		fmt.Fprintln(os.Stderr, "usage: tasoctl -circuit <file> -ecc <file> [-threads N] [-timeout D] [-csv file]")
		os.Exit(2)
	}

	circData, err := os.ReadFile(*circuitPath)
	if err != nil {
		log.Fatalf("tasoctl: reading circuit: %v", err)
	}
	host, err := rewrite.DecodeCircuitJSON(circData)
	if err != nil {
		log.Fatalf("tasoctl: decoding circuit: %v", err)
	}

	eccData, err := os.ReadFile(*eccPath)
	if err != nil {
		log.Fatalf("tasoctl: reading ECC set: %v", err)
	}
	classes, err := rewrite.DecodeECCJSON(eccData)
	if err != nil {
		log.Fatalf("tasoctl: decoding ECC set: %v", err)
	}
	rewriter, err := rewrite.NewECCRewriter(classes)
	if err != nil {
		log.Fatalf("tasoctl: building rewriter: %v", err)
	}

	opts := []taso.Option{taso.WithThreads(*threads)}
	if *timeout > 0 {
		opts = append(opts, taso.WithTimeout(*timeout))
	}
	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			log.Fatalf("tasoctl: creating csv file: %v", err)
		}
		defer f.Close()
		opts = append(opts, taso.WithCSVSink(taso.NewCSVSink(f)))
	}

	start := time.Now()
	result, err := taso.Run(context.Background(), host, rewriter, rewrite.ExhaustiveStrategy{}, nodeCountCost, opts...)
	if err != nil {
		log.Fatalf("tasoctl: run failed: %v", err)
	}

	fmt.Printf("run_id=%s cost=%d seen=%d timed_out=%v wall_time=%s\n",
		result.RunID, result.Cost, result.SeenCount, result.TimedOut, time.Since(start))
}

func nodeCountCost(c *core.Circuit) int { return c.NumNodes() }
