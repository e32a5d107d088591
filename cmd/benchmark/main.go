package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/afterparty/deferred"
	"github.com/delaneyj/afterparty/reactive"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

func main() {
	flag.Parse()

	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	log.Printf("warming up")

	benchmarkBase(true)
	benchmarkDeferred(true)
}

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100}
	iters = 100
)

func benchmarkBase(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Base Effects (synchronous re-runs)")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := &reactive.Runtime{}
			src, setSrc := reactive.Signal(rt, 1)
			for i := 0; i < w; i++ {
				last := src
				for j := 0; j < h; j++ {
					prev := last
					next, err := reactive.Memo(rt, func(oldValue int) (int, error) {
						return prev() + 1, nil
					}, 0)
					if err != nil {
						log.Panic(err)
					}
					last = next
				}

				if err := reactive.Effect(rt, func(prev int) (int, error) {
					return last(), nil
				}, 0); err != nil {
					log.Panic(err)
				}
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				setSrc(src() + 1)
				tach.AddTime(time.Since(start))
			}

			appendCalc(tbl, fmt.Sprintf("propagate: %d * %d", w, h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func benchmarkDeferred(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Deferred Effects (coalesced flush)")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := &reactive.Runtime{}
			sc := deferred.NewScheduler(rt)
			src, setSrc := deferred.Signal(sc, 1)
			for i := 0; i < w*h; i++ {
				if err := deferred.Effect(sc, func(prev int) (int, error) {
					return src(), nil
				}, 0); err != nil {
					log.Panic(err)
				}
			}

			value := 1
			for i := 0; i < iters; i++ {
				start := time.Now()
				value++
				setSrc(value)
				if err := rt.Flush(); err != nil {
					log.Panic(err)
				}
				tach.AddTime(time.Since(start))
			}

			appendCalc(tbl, fmt.Sprintf("write+flush: %d effects", w*h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func appendCalc(tbl table.Writer, name string, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRows([]table.Row{
		{
			name,
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		},
	})
}
