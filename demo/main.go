package main

import (
	"fmt"
	"math/rand"

	"github.com/axiomhq/exactq"
	"github.com/beorn7/perks/quantile"
	"github.com/stripe/veneur/tdigest"
)

// Feeds one million samples into the exact state and two approximate
// summaries, then prints the estimates side by side.
func main() {
	const n = 1_000_000
	levels := []float64{0.5, 0.9, 0.99}
	indices := []int{0, 1, 2}

	exact := &exactq.ExactInclusive[float64]{}
	stream := quantile.NewTargeted(map[float64]float64{
		0.5:  0.001,
		0.9:  0.001,
		0.99: 0.0001,
	})
	td := tdigest.NewMerging(100, false)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < n; i++ {
		v := rng.NormFloat64()*10 + 100
		exact.Add(v)
		stream.Insert(v)
		td.Add(v, 1)
	}

	if err := exact.FinalizeMany(levels, indices); err != nil {
		panic(err)
	}
	result := make([]float64, len(levels))
	if err := exact.GetManyFloat(levels, indices, result); err != nil {
		panic(err)
	}

	fmt.Printf("%d samples\n", exact.Count())
	for i, level := range levels {
		fmt.Printf("q%v exact=%.4f perks=%.4f tdigest=%.4f\n",
			level, result[i], stream.Query(level), td.Quantile(level))
	}
}
