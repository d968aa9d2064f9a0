package regression

import (
	"math"
	"math/rand/v2"

	"github.com/cockroachdb/errors"
)

// Split holds row indices of a train/test partition.
type Split struct {
	Train []int
	Test  []int
}

// TrainTestSplit shuffles row indices 0..n-1 with a PCG source seeded by seed and
// assigns the first ceil(n·testRatio) of the permutation to the test partition.
// The same n, testRatio and seed always produce the same partition.
func TrainTestSplit(n int, testRatio float64, seed uint64) (Split, error) {
	if testRatio <= 0 || testRatio >= 1 {
		return Split{}, errors.Newf("regression: test ratio must be in (0, 1), got %v", testRatio)
	}
	nTest := int(math.Ceil(float64(n) * testRatio))
	nTrain := n - nTest
	if nTest < 1 || nTrain < 1 {
		return Split{}, errors.Wrapf(ErrEmptyData, "TrainTestSplit: %d rows cannot fill both partitions", n)
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(n)

	return Split{
		Train: perm[nTest:],
		Test:  perm[:nTest],
	}, nil
}
