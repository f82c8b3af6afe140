package cmd

import (
	"fmt"

	"github.com/simkit/simkit/sim/rng"
	"github.com/simkit/simkit/sim/stats"
)

// runStatsDemo feeds samples from a normal stream through the variance,
// precision histogram, simple histogram and quantile aggregators and prints
// their summaries. No scheduler is involved.
func runStatsDemo() error {
	stream, err := rng.NewNormal(50.0, 10.0)
	if err != nil {
		return err
	}

	variance := stats.NewVariance()
	precision := stats.NewPrecisionHistogram()
	simple, err := stats.NewSimpleHistogram(10.0, 10)
	if err != nil {
		return err
	}
	quantile, err := stats.NewQuantile(0.95)
	if err != nil {
		return err
	}

	const n = 1000
	for i := 0; i < n; i++ {
		v := stream.Sample()
		variance.Add(v)
		precision.Add(float64(int(v))) // integer magnitudes keep the bucket count readable
		simple.Add(v)
		quantile.Add(v)
	}

	fmt.Println("VARIANCE")
	fmt.Printf("Number of samples : %d\n", variance.Count())
	fmt.Printf("Mean              : %.4f\n", variance.Mean())
	if v, err := variance.Variance(); err == nil {
		fmt.Printf("Variance          : %.4f\n", v)
	}
	if sd, err := variance.StdDev(); err == nil {
		fmt.Printf("Standard deviation: %.4f\n", sd)
	}
	if ci, err := variance.Confidence(95); err == nil {
		fmt.Printf("95%% confidence    : +/- %.4f\n", ci)
	}
	fmt.Printf("Min / Max         : %.4f / %.4f\n", variance.Min(), variance.Max())

	fmt.Println()
	fmt.Println("PRECISION HISTOGRAM")
	fmt.Printf("Distinct magnitudes: %d\n", precision.NumBuckets())

	fmt.Println()
	fmt.Println("SIMPLE HISTOGRAM (width 10, 10 buckets)")
	for i := 0; i < simple.NumBuckets(); i++ {
		fmt.Printf("Bucket [%3.0f, %3.0f): %d\n", float64(i)*simple.Width(), float64(i+1)*simple.Width(), simple.CountAt(i))
	}
	fmt.Printf("Overflow: %d, rejected: %d\n", simple.Overflow(), simple.Rejected())

	fmt.Println()
	fmt.Println("QUANTILE")
	if v, err := quantile.Value(); err == nil {
		fmt.Printf("95th percentile: %.4f\n", v)
	}
	return nil
}
