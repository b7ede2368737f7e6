package dataset

import (
	"math/rand/v2"
)

// Counts holds the number of images to draw for each split.
type Counts struct {
	Train int `json:"train_images"`
	Val   int `json:"val_images"`
	Eval  int `json:"eval_images"`
}

// Split is a sampled subset of a pool.
type Split struct {
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

// Splits is the result of one partition call.
type Splits struct {
	Seed       int64 `json:"seed"`
	Training   Split `json:"training"`
	Validation Split `json:"validation"`
	Evaluation Split `json:"evaluation"`
}

// Sampler draws samples without replacement from one seeded PRNG stream.
// Successive calls continue the same stream, so the order of calls is part
// of the result.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler seeded with seed.
func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)))}
}

// Sample draws k images uniformly without replacement from the pool.
//
// A partial Fisher-Yates shuffle runs over a copy of the pool; the first k
// positions are the sample, in draw order.
func (s *Sampler) Sample(pool *ImagePool, k int) ([]string, error) {
	if k < 0 || k > pool.Len() {
		return nil, &SamplingError{Pool: pool.Name(), Requested: k, Available: pool.Len()}
	}

	items := pool.Images()
	for i := 0; i < k; i++ {
		j := i + s.rng.IntN(len(items)-i)
		items[i], items[j] = items[j], items[i]
	}
	return items[:k:k], nil
}

// Partition samples the training, validation and evaluation splits.
//
// Training images come from trainingPool, validation images from
// validationPool, and evaluation images from validationPool minus the
// validation split. All three draws share one PRNG seeded with seed and run
// in that order. The two input pools are assumed to be disjoint.
func Partition(trainingPool, validationPool *ImagePool, counts Counts, seed int64) (*Splits, error) {
	sampler := NewSampler(seed)

	train, err := sampler.Sample(trainingPool, counts.Train)
	if err != nil {
		return nil, err
	}

	val, err := sampler.Sample(validationPool, counts.Val)
	if err != nil {
		return nil, err
	}

	evalPool := validationPool.Without(Evaluation, val)
	eval, err := sampler.Sample(evalPool, counts.Eval)
	if err != nil {
		return nil, err
	}

	return &Splits{
		Seed:       seed,
		Training:   Split{Name: Training, Images: train},
		Validation: Split{Name: Validation, Images: val},
		Evaluation: Split{Name: Evaluation, Images: eval},
	}, nil
}
