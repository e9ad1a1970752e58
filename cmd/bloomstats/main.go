// Command bloomstats exercises the bloomset types and prints their
// statistics: a standalone optimal filter and a scalable collection fed the
// same key stream.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/jcalabro/bloomset"
)

func main() {
	items := flag.Int("items", 100_000, "number of keys to insert")
	probability := flag.Float64("p", 0.01, "target false positive probability")
	perFilter := flag.Int("per-filter", 10_000, "expected items per filter in the scalable collection")
	flag.Parse()

	f, err := bloomset.NewOptimalFilter(*probability, *items)
	if err != nil {
		log.Fatalf("building optimal filter: %v", err)
	}

	sc := bloomset.NewScalable(func(*bloomset.ScalableCollection) (bloomset.Interface, error) {
		return bloomset.NewOptimalFilter(*probability, *perFilter)
	})

	for i := range *items {
		key := fmt.Appendf(nil, "key-%d", i)
		if _, err := f.Add(key); err != nil {
			log.Fatalf("filter add: %v", err)
		}
		if _, err := sc.Add(key); err != nil {
			log.Fatalf("collection add: %v", err)
		}
	}

	// Empirical false positive rate over keys never inserted.
	probes := *items
	fpFilter, fpColl := 0, 0
	for i := range probes {
		key := fmt.Appendf(nil, "probe-%d", i)
		if f.Has(key) {
			fpFilter++
		}
		if sc.Has(key) {
			fpColl++
		}
	}

	capacity, err := f.EstimateCapacity(*probability)
	if err != nil {
		log.Fatalf("estimating capacity: %v", err)
	}
	fillRate, err := f.EstimateFillRate(*probability)
	if err != nil {
		log.Fatalf("estimating fill rate: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "standalone filter\t\n")
	fmt.Fprintf(w, "  size (bits)\t%d\n", f.Size())
	fmt.Fprintf(w, "  hash algorithms\t%v\n", f.Algorithms())
	fmt.Fprintf(w, "  inserts\t%d\n", f.Count())
	fmt.Fprintf(w, "  fill ratio\t%.4f\n", f.FillRatio())
	fmt.Fprintf(w, "  est. capacity @p\t%.0f\n", capacity)
	fmt.Fprintf(w, "  est. fill rate @p\t%.4f\n", fillRate)
	fmt.Fprintf(w, "  predicted FP rate\t%.6f\n", f.FalsePositiveProbability())
	fmt.Fprintf(w, "  empirical FP rate\t%.6f\n", float64(fpFilter)/float64(probes))
	fmt.Fprintf(w, "scalable collection\t\n")
	fmt.Fprintf(w, "  children\t%d\n", sc.Len())
	fmt.Fprintf(w, "  inserts\t%d\n", sc.Count())
	fmt.Fprintf(w, "  worst-case FP rate\t%.6f\n", sc.FalsePositiveProbability())
	fmt.Fprintf(w, "  empirical FP rate\t%.6f\n", float64(fpColl)/float64(probes))
	w.Flush()
}
