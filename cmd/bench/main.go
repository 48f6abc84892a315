package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/viniciusth/closematch"
)

type memMonitor struct {
	maxAlloc uint64
	stop     chan struct{}
	done     chan struct{}
}

func newMemMonitor() *memMonitor {
	mm := &memMonitor{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(mm.done)
		for {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			if m.Alloc > mm.maxAlloc {
				mm.maxAlloc = m.Alloc
			}
			select {
			case <-mm.stop:
				return
			default:
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()
	return mm
}

func (mm *memMonitor) Stop() uint64 {
	close(mm.stop)
	<-mm.done
	return mm.maxAlloc
}

func getCurrentAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func measureBuild(seq []uint32, algorithm closematch.Algorithm, concurrency int) (time.Duration, uint64, uint64, []int64) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	sa, err := closematch.NewBuilder(seq).
		WithAlgorithm(algorithm).
		WithConcurrency(concurrency).
		Build()
	if err != nil {
		panic(err)
	}
	dur := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	alloc := getCurrentAlloc()
	return dur, peak, alloc, sa
}

func measureMatches(sa []int64, queryLen int) time.Duration {
	start := time.Now()
	if _, err := closematch.FindCloseMatches(sa, queryLen); err != nil {
		panic(err)
	}
	return time.Since(start)
}

func runBenchmark(algorithm closematch.Algorithm, n, alphabet, runs, concurrency int) {
	for run := 0; run < runs; run++ {
		r := rand.New(rand.NewSource(int64(run)))
		seq := make([]uint32, n)
		for i := range seq {
			seq[i] = uint32(r.Intn(alphabet))
		}

		bt, bp, ba, sa := measureBuild(seq, algorithm, concurrency)
		mt := measureMatches(sa, n/2)
		fmt.Printf("%s,%d,%d,%d,%.0f,%d,%d,%.0f\n",
			algorithm, n, alphabet, concurrency,
			float64(bt.Nanoseconds()), bp, ba,
			float64(mt.Nanoseconds()))
	}
}

func main() {
	algorithmName := flag.String("algorithm", "", "Algorithm to benchmark")
	n := flag.Int("n", 0, "Sequence length")
	alphabet := flag.Int("alphabet", 4, "Number of distinct symbols")
	runs := flag.Int("runs", 3, "Number of runs for averaging")
	concurrency := flag.Int("concurrency", 1, "Goroutines for the doubling sorter")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *algorithmName == "" || *n <= 0 || *alphabet <= 0 || *runs <= 0 {
		fmt.Println("Usage: go run main.go -algorithm=<algorithm> -n=<N> [-alphabet=<A>] [-runs=<runs>] [-concurrency=<C>]")
		fmt.Println("Available algorithms:", strings.Join([]string{"auto", "sais", "dc3", "doubling", "gosaca"}, ", "))
		os.Exit(1)
	}

	algorithm, err := closematch.ParseAlgorithm(*algorithmName)
	if err != nil {
		fmt.Println("Invalid algorithm:", *algorithmName)
		os.Exit(1)
	}

	runBenchmark(algorithm, *n, *alphabet, *runs, *concurrency)
}
