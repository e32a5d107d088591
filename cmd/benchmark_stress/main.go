package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/afterparty/deferred"
	"github.com/delaneyj/afterparty/reactive"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// Stresses the write-triggered reordering path: one cascade effect rewrites
// signals mid-flush, pushing every dependent reader back to the queue tail,
// so readers replay more than once per tick.

func main() {
	log.Print("Starting reorder stress benchmark, please wait...")
	defer log.Print("Finished reorder stress benchmark")

	cfgs := []stressConfig{
		{
			name:       "narrow",
			signals:    2,
			readers:    10,
			rewrites:   1,
			iterations: 100_000,
		},
		{
			name:       "wide fanout",
			signals:    10,
			readers:    1_000,
			rewrites:   2,
			iterations: 1_000,
		},
		{
			name:       "rewrite heavy",
			signals:    50,
			readers:    100,
			rewrites:   25,
			iterations: 5_000,
		},
		{
			name:       "large graph",
			signals:    200,
			readers:    5_000,
			rewrites:   10,
			iterations: 200,
		},
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"test", "signals", "readers", "rewrites",
		"nTimes", "replays", "time", "replayRate",
	})

	testRepeats := 5
	for _, cfg := range cfgs {
		log.Printf("Running '%s' config", cfg.name)

		best := stressResult{duration: time.Hour}
		for i := 0; i < testRepeats; i++ {
			res := runStress(cfg)
			if res.duration < best.duration {
				best = res
			}
		}

		replayRate := float64(best.replays) / (float64(best.duration) / float64(time.Millisecond))

		table.Append([]string{
			cfg.name,
			fmt.Sprint(cfg.signals),
			fmt.Sprint(cfg.readers),
			fmt.Sprint(cfg.rewrites),
			humanize.Comma(int64(cfg.iterations)),
			humanize.Comma(best.replays),
			fmt.Sprint(best.duration),
			humanize.Comma(int64(replayRate)),
		})
	}
	table.Render()
}

type stressConfig struct {
	name       string // friendly name for the test, should be unique
	signals    int    // tracked signals shared between readers
	readers    int    // reader effects, two signals each
	rewrites   int    // signals the cascade effect rewrites during the flush
	iterations int    // write+flush ticks
}

type stressResult struct {
	replays  int64
	duration time.Duration
}

func runStress(cfg stressConfig) stressResult {
	rt := &reactive.Runtime{}
	sc := deferred.NewScheduler(rt)

	gets := make([]deferred.Getter[int], cfg.signals)
	sets := make([]deferred.Setter[int], cfg.signals)
	for i := range gets {
		gets[i], sets[i] = deferred.Signal(sc, 0)
	}

	var replays int64
	for i := 0; i < cfg.readers; i++ {
		a := gets[i%cfg.signals]
		b := gets[(i+1)%cfg.signals]
		if err := deferred.Effect2(sc, a, b, func(x, y int) error {
			replays++
			return nil
		}); err != nil {
			log.Panic(err)
		}
	}

	// The cascade: triggered from outside the flush, rewrites the first
	// rewrites signals while the queue is draining
	trigger, setTrigger := deferred.Signal(sc, 0)
	if err := deferred.Effect(sc, func(prev int) (int, error) {
		v := trigger()
		for i := 0; i < cfg.rewrites; i++ {
			sets[i](v)
		}
		return v, nil
	}, 0); err != nil {
		log.Panic(err)
	}

	replays = 0
	start := time.Now()
	for i := 1; i <= cfg.iterations; i++ {
		setTrigger(i)
		if err := rt.Flush(); err != nil {
			log.Panic(err)
		}
	}
	return stressResult{
		replays:  replays,
		duration: time.Since(start),
	}
}
