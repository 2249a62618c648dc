package matchgo_test

import (
	"fmt"

	"github.com/hupe1980/matchgo"
	"github.com/hupe1980/matchgo/metric"
	"github.com/hupe1980/matchgo/selector"
	"github.com/hupe1980/matchgo/tags"
)

func Example() {
	hamming, err := metric.NewHamming(8)
	if err != nil {
		panic(err)
	}

	bin, err := matchgo.New[tags.BitVector, string](hamming, selector.NewRanked(-1))
	if err != nil {
		panic(err)
	}

	bin.Put(tags.MustParse("00000000"), "zero")
	bin.Put(tags.MustParse("00001111"), "low nibble")
	bin.Put(tags.MustParse("11110000"), "high nibble")
	bin.Put(tags.MustParse("11111111"), "ones")

	for _, value := range bin.QueryValues(tags.MustParse("00000001"), 2) {
		fmt.Println(value)
	}

	// Output:
	// zero
	// low nibble
}
