package naam

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"pranaam/models"
)

// Model is the narrow capability any inference backend must satisfy: one
// forward pass over a whole batch, returning the raw probability of the
// "muslim" class in [0,1] per input row.
type Model interface {
	Infer(batch [][]int) ([]float64, error)
}

// artifact is the on-disk model format: the featurization vocabulary plus
// the trained weights of an embedding + single-hidden-layer network.
type artifact struct {
	SeqLen    int         `json:"seq_len"`
	Vocab     []string    `json:"vocab"`
	Embedding [][]float64 `json:"embedding"`
	HiddenW   [][]float64 `json:"hidden_weights"`
	HiddenB   []float64   `json:"hidden_bias"`
	OutputW   []float64   `json:"output_weights"`
	OutputB   float64     `json:"output_bias"`
}

func (a *artifact) validate() error {
	if a.SeqLen <= 0 {
		return errors.New("non-positive seq_len")
	}
	if len(a.Embedding) != len(a.Vocab)+2 {
		return fmt.Errorf("embedding rows %d do not match vocab size %d plus reserved indices", len(a.Embedding), len(a.Vocab))
	}
	if len(a.Embedding) == 0 || len(a.Embedding[0]) == 0 {
		return errors.New("empty embedding table")
	}
	embDim := len(a.Embedding[0])
	for i, row := range a.Embedding {
		if len(row) != embDim {
			return fmt.Errorf("embedding row %d has %d values, want %d", i, len(row), embDim)
		}
	}
	if len(a.HiddenW) != embDim {
		return fmt.Errorf("hidden weights have %d rows, want %d", len(a.HiddenW), embDim)
	}
	hiddenDim := len(a.HiddenB)
	for i, row := range a.HiddenW {
		if len(row) != hiddenDim {
			return fmt.Errorf("hidden weight row %d has %d values, want %d", i, len(row), hiddenDim)
		}
	}
	if len(a.OutputW) != hiddenDim {
		return fmt.Errorf("output weights have %d values, want %d", len(a.OutputW), hiddenDim)
	}
	return nil
}

// seqModel is the concrete inference backend for the shipped artifacts:
// mean-pooled character embeddings through one ReLU layer into a sigmoid.
type seqModel struct {
	art artifact
}

// loadModel reads and validates the artifact in dir and returns the model
// together with the featurizer reproducing its training-time encoding.
func loadModel(dir string, lang Language) (Model, *Featurizer, error) {
	path := filepath.Join(dir, models.ModelFile)
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading model artifact: %w", err)
	}

	var art artifact
	if err := json.Unmarshal(payload, &art); err != nil {
		return nil, nil, fmt.Errorf("decoding model artifact %s: %w", path, err)
	}
	if err := art.validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}

	feat := NewFeaturizer(lang, art.Vocab, art.SeqLen)
	return &seqModel{art: art}, feat, nil
}

// Infer runs one forward pass over the batch. Output index i corresponds to
// batch row i.
func (m *seqModel) Infer(batch [][]int) ([]float64, error) {
	embDim := len(m.art.Embedding[0])
	hiddenDim := len(m.art.HiddenB)

	probs := make([]float64, len(batch))
	pooled := make([]float64, embDim)
	hidden := make([]float64, hiddenDim)

	for row, seq := range batch {
		if len(seq) != m.art.SeqLen {
			return nil, fmt.Errorf("row %d has width %d, model expects %d", row, len(seq), m.art.SeqLen)
		}

		for j := range pooled {
			pooled[j] = 0
		}
		for _, idx := range seq {
			if idx < 0 || idx >= len(m.art.Embedding) {
				return nil, fmt.Errorf("row %d: index %d outside embedding table", row, idx)
			}
			emb := m.art.Embedding[idx]
			for j, v := range emb {
				pooled[j] += v
			}
		}
		for j := range pooled {
			pooled[j] /= float64(len(seq))
		}

		for k := 0; k < hiddenDim; k++ {
			sum := m.art.HiddenB[k]
			for j, v := range pooled {
				sum += v * m.art.HiddenW[j][k]
			}
			if sum < 0 {
				sum = 0
			}
			hidden[k] = sum
		}

		z := m.art.OutputB
		for k, v := range hidden {
			z += v * m.art.OutputW[k]
		}
		probs[row] = sigmoid(z)
	}

	return probs, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
