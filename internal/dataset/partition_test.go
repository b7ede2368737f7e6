package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func makePool(name string, n int) *ImagePool {
	images := make([]string, n)
	for i := range images {
		images[i] = fmt.Sprintf("/data/unzipped/%s/images/page%03d.jpg", name, i)
	}
	return NewPool(name, images)
}

func TestPartition_Deterministic(t *testing.T) {
	train := makePool(Training, 50)
	val := makePool(Validation, 30)
	counts := Counts{Train: 20, Val: 10, Eval: 5}

	first, err := Partition(train, val, counts, 42)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	second, err := Partition(train, val, counts, 42)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different splits:\n%v\n%v", first, second)
	}
}

func TestPartition_IndependentOfEnumerationOrder(t *testing.T) {
	images := makePool(Training, 40).Images()
	reversed := make([]string, len(images))
	for i, img := range images {
		reversed[len(images)-1-i] = img
	}
	val := makePool(Validation, 10)
	counts := Counts{Train: 15, Val: 3, Eval: 3}

	a, err := Partition(NewPool(Training, images), val, counts, 7)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	b, err := Partition(NewPool(Training, reversed), val, counts, 7)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	if !reflect.DeepEqual(a.Training.Images, b.Training.Images) {
		t.Error("training split depends on enumeration order")
	}
}

func TestPartition_SeedChangesSplits(t *testing.T) {
	train := makePool(Training, 100)
	val := makePool(Validation, 100)
	counts := Counts{Train: 10, Val: 10, Eval: 10}

	a, err := Partition(train, val, counts, 1)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	b, err := Partition(train, val, counts, 2)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	if reflect.DeepEqual(a.Training.Images, b.Training.Images) {
		t.Error("different seeds produced the same training split")
	}
}

func TestPartition_SizesAndDisjointness(t *testing.T) {
	train := makePool(Training, 50)
	val := makePool(Validation, 30)
	counts := Counts{Train: 20, Val: 10, Eval: 5}

	splits, err := Partition(train, val, counts, 42)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	if len(splits.Training.Images) != 20 || len(splits.Validation.Images) != 10 || len(splits.Evaluation.Images) != 5 {
		t.Fatalf("unexpected split sizes: %d/%d/%d",
			len(splits.Training.Images), len(splits.Validation.Images), len(splits.Evaluation.Images))
	}
	if splits.Seed != 42 {
		t.Errorf("Seed = %d, want 42", splits.Seed)
	}

	inPool := func(p *ImagePool, img string) bool {
		for _, candidate := range p.Images() {
			if candidate == img {
				return true
			}
		}
		return false
	}

	seen := make(map[string]string)
	for _, split := range []Split{splits.Training, splits.Validation, splits.Evaluation} {
		for _, img := range split.Images {
			if prev, ok := seen[img]; ok {
				t.Errorf("%s appears in both %s and %s", img, prev, split.Name)
			}
			seen[img] = split.Name
		}
	}

	for _, img := range splits.Training.Images {
		if !inPool(train, img) {
			t.Errorf("training image %s not from training pool", img)
		}
	}
	for _, img := range append(splits.Validation.Images, splits.Evaluation.Images...) {
		if !inPool(val, img) {
			t.Errorf("image %s not from validation pool", img)
		}
	}
}

func TestPartition_FullPool(t *testing.T) {
	train := makePool(Training, 8)
	val := makePool(Validation, 6)

	splits, err := Partition(train, val, Counts{Train: 8, Val: 4, Eval: 2}, 3)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	got := NewPool("sorted", splits.Training.Images).Images()
	if !reflect.DeepEqual(got, train.Images()) {
		t.Error("sampling the whole pool should return a permutation of it")
	}
}

func TestPartition_ZeroCounts(t *testing.T) {
	splits, err := Partition(makePool(Training, 5), makePool(Validation, 5), Counts{}, 1)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	if len(splits.Training.Images)+len(splits.Validation.Images)+len(splits.Evaluation.Images) != 0 {
		t.Error("zero counts should produce empty splits")
	}
}

func TestPartition_SamplingErrors(t *testing.T) {
	tests := []struct {
		name      string
		counts    Counts
		pool      string
		available int
	}{
		{"training too large", Counts{Train: 12, Val: 1, Eval: 1}, Training, 10},
		{"validation too large", Counts{Train: 1, Val: 11, Eval: 0}, Validation, 10},
		{"evaluation exceeds remainder", Counts{Train: 1, Val: 6, Eval: 5}, Evaluation, 4},
		{"negative count", Counts{Train: -1}, Training, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Partition(makePool(Training, 10), makePool(Validation, 10), tt.counts, 42)
			var sampling *SamplingError
			if !errors.As(err, &sampling) {
				t.Fatalf("expected *SamplingError, got %v", err)
			}
			if sampling.Pool != tt.pool {
				t.Errorf("Pool = %q, want %q", sampling.Pool, tt.pool)
			}
			if sampling.Available != tt.available {
				t.Errorf("Available = %d, want %d", sampling.Available, tt.available)
			}
			if sampling.Code() != ErrorSampling {
				t.Errorf("Code = %s, want %s", sampling.Code(), ErrorSampling)
			}
		})
	}
}

func TestSampler_ContinuesStream(t *testing.T) {
	pool := makePool(Training, 30)

	s := NewSampler(9)
	first, _ := s.Sample(pool, 5)
	second, _ := s.Sample(pool, 5)

	fresh, _ := NewSampler(9).Sample(pool, 5)
	if !reflect.DeepEqual(first, fresh) {
		t.Error("first draw should match a fresh sampler with the same seed")
	}
	if reflect.DeepEqual(first, second) {
		t.Error("second draw should continue the stream, not restart it")
	}
}

func TestImagePool_Without(t *testing.T) {
	pool := NewPool("p", []string{"c.jpg", "a.jpg", "b.jpg", "d.jpg"})
	rest := pool.Without("rest", []string{"b.jpg", "x.jpg"})

	want := []string{"a.jpg", "c.jpg", "d.jpg"}
	if !reflect.DeepEqual(rest.Images(), want) {
		t.Errorf("Without = %v, want %v", rest.Images(), want)
	}
	if rest.Name() != "rest" {
		t.Errorf("Name = %q, want rest", rest.Name())
	}
	if pool.Len() != 4 {
		t.Error("Without must not modify the source pool")
	}
}

func TestImagePool_ImagesIsCopy(t *testing.T) {
	pool := NewPool("p", []string{"a.jpg", "b.jpg"})
	images := pool.Images()
	images[0] = "changed.jpg"

	if pool.Images()[0] != "a.jpg" {
		t.Error("mutating Images() result changed the pool")
	}
}

func TestLoadPool(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jpg", "a.JPG", "notes.txt", "scan.png", filepath.Join("sub", "c.jpg")} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	pool, err := LoadPool(Training, dir)
	if err != nil {
		t.Fatalf("LoadPool failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.JPG"),
		filepath.Join(dir, "b.jpg"),
		filepath.Join(dir, "sub", "c.jpg"),
	}
	if !reflect.DeepEqual(pool.Images(), want) {
		t.Errorf("LoadPool = %v, want %v", pool.Images(), want)
	}
}

func TestLoadPool_MissingDirectory(t *testing.T) {
	if _, err := LoadPool(Training, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
