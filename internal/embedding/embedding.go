// Package embedding produces small deterministic text vectors used to rank
// food catalog entries by name similarity.
package embedding

import (
	"hash/fnv"
	"math"
	"strings"

	pgvector "github.com/pgvector/pgvector-go"
)

// Text hashes the character trigrams of text into a vector of the given
// width and L2-normalizes it. Similar names share trigrams and therefore
// end up close in euclidean distance.
func Text(text string, dims int) pgvector.Vector {
	vec := make([]float32, dims)
	for _, gram := range trigrams(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(gram))
		sum := h.Sum32()
		sign := float32(1)
		if sum&1 == 1 {
			sign = -1
		}
		vec[int(sum>>1)%dims] += sign
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	if norm == 0 {
		// An all-zero vector cannot be compared; mark it with a unit component.
		vec[0] = 1
		return pgvector.NewVector(vec)
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return pgvector.NewVector(vec)
}

// Distance is the euclidean distance between two vectors of equal width.
func Distance(a, b pgvector.Vector) float64 {
	as, bs := a.Slice(), b.Slice()
	if len(as) != len(bs) {
		return math.Inf(1)
	}
	var sum float64
	for i := range as {
		d := float64(as[i] - bs[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

func trigrams(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	var out []string
	for _, w := range words {
		padded := []rune(" " + w + " ")
		if len(padded) < 3 {
			continue
		}
		for i := 0; i+3 <= len(padded); i++ {
			out = append(out, string(padded[i:i+3]))
		}
	}
	return out
}
