package naam

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Reserved vocabulary indices. Artifact vocabulary entries start at index 2.
const (
	padIndex = 0
	unkIndex = 1
)

// Featurizer turns raw names into fixed-width index sequences using the
// vocabulary shipped with a model artifact. Encoding is deterministic: the
// same name under the same language always yields the same vector.
type Featurizer struct {
	lang   Language
	vocab  map[string]int
	seqLen int
}

// NewFeaturizer builds a featurizer from an artifact vocabulary and input
// width. Neither is hardcoded here; they must match training time exactly.
func NewFeaturizer(lang Language, vocab []string, seqLen int) *Featurizer {
	index := make(map[string]int, len(vocab))
	for i, token := range vocab {
		index[token] = i + 2
	}
	return &Featurizer{lang: lang, vocab: index, seqLen: seqLen}
}

// SeqLen returns the fixed input width.
func (f *Featurizer) SeqLen() int {
	return f.seqLen
}

// normalize applies the per-language cleanup used at training time: English
// is lowercased, Hindi is NFC-normalized without case folding, and runs of
// whitespace collapse to a single space in both.
func (f *Featurizer) normalize(name string) string {
	s := strings.TrimSpace(name)
	if f.lang == LangHindi {
		s = norm.NFC.String(s)
	} else {
		s = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(s), " ")
}

// Encode maps a batch of names to index sequences, preserving order.
func (f *Featurizer) Encode(names []string) [][]int {
	vectors := make([][]int, len(names))
	for i, name := range names {
		vectors[i] = f.encodeOne(name)
	}
	return vectors
}

// encodeOne produces one fixed-width vector: characters beyond seqLen are
// truncated, shorter names are right-padded, unknown characters map to the
// reserved unknown index. An empty name encodes to the all-pad vector.
func (f *Featurizer) encodeOne(name string) []int {
	runes := []rune(f.normalize(name))
	vector := make([]int, f.seqLen)
	for i := 0; i < f.seqLen && i < len(runes); i++ {
		idx, ok := f.vocab[string(runes[i])]
		if !ok {
			idx = unkIndex
		}
		vector[i] = idx
	}
	return vector
}
