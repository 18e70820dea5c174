package conduct

import (
	"context"
	"runtime"
	"sync"

	"mea-core/spike"
)

// Tagger marks conductance artifacts on a spike table.
type Tagger struct {
	Params  Params
	Threads int // worker goroutines; <=0 means all CPUs
}

// NewTagger returns a Tagger with the default thresholds.
func NewTagger() Tagger { return Tagger{Params: DefaultParams()} }

// Tag enumerates every unordered pair of non-analog electrodes in t, detects
// each pair's cofiring events, and for pairs classified as conductance
// artifacts flags the rows of all non-kept event members. All other rows end
// up unflagged, so tagging an already-tagged table reproduces the same
// flags. Pairs with fewer than two events are degenerate and skipped: a pair
// that cannot be proven an artifact is treated as genuine.
//
// Pair analyses are independent and read-only; each returns a private set of
// row indices which a single collector merges before the one write pass over
// the table. Returns the number of flagged rows.
func (tg Tagger) Tag(ctx context.Context, t *spike.Table) (int, error) {
	var tags []string
	for _, tag := range t.Tags() {
		if !spike.IsAnalog(tag) {
			tags = append(tags, tag)
		}
	}

	threads := tg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	type pair struct{ a, b string }
	jobs := make(chan pair, threads*2)
	results := make(chan []int, threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case p, ok := <-jobs:
					if !ok {
						return
					}
					locs := tg.analyzePair(t, p.a, p.b)
					if locs == nil {
						continue
					}
					select {
					case results <- locs:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	flagged := make(map[int]struct{})
	var cwg sync.WaitGroup
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for locs := range results {
			for _, i := range locs {
				flagged[i] = struct{}{}
			}
		}
	}()

	// Feed all unordered pairs.
feed:
	for i := 0; i < len(tags); i++ {
		for j := i + 1; j < len(tags); j++ {
			select {
			case <-ctx.Done():
				break feed
			case jobs <- pair{tags[i], tags[j]}:
			}
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	t.ClearConductance()
	for i := range flagged {
		t.SetConductance(i, true)
	}
	return len(flagged), nil
}

// analyzePair runs detection, classification and keep-electrode selection
// for one electrode pair and returns the row indices to flag, or nil.
func (tg Tagger) analyzePair(t *spike.Table, a, b string) []int {
	rows := make([]Row, 0, len(t.GroupRows(a))+len(t.GroupRows(b)))
	for _, tag := range [2]string{a, b} {
		for _, i := range t.GroupRows(tag) {
			rows = append(rows, Row{Index: i, Spike: t.Row(i)})
		}
	}

	events := CofiringEvents(rows, tg.Params.MinSep)
	if len(events) < 2 {
		return nil // degenerate pair, cannot be proven an artifact
	}
	if !Classify(events, tg.Params) {
		return nil
	}

	keep := ChooseKeepElectrode(events)
	var locs []int
	for _, e := range events {
		for _, r := range e.Members() {
			if r.Spike.Electrode != keep {
				locs = append(locs, r.Index)
			}
		}
	}
	return locs
}
