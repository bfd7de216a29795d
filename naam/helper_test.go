package naam

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"pranaam/models"
)

// testArtifact builds a tiny deterministic model: two-dimensional embeddings
// pooled through an identity hidden layer into a sigmoid driven by the first
// embedding dimension. Names made of "a" score high, names made of "b" score
// low, and an all-pad input scores exactly 0.5.
func testArtifact(vocab []string) map[string]any {
	embedding := [][]float64{{0, 0}, {0, 0}}
	for i := range vocab {
		switch i % 2 {
		case 0:
			embedding = append(embedding, []float64{1, 0})
		default:
			embedding = append(embedding, []float64{-1, 0})
		}
	}
	return map[string]any{
		"seq_len":        8,
		"vocab":          vocab,
		"embedding":      embedding,
		"hidden_weights": [][]float64{{1, 0}, {0, 1}},
		"hidden_bias":    []float64{0, 0},
		"output_weights": []float64{10, 0},
		"output_bias":    0.0,
	}
}

// engTestVocab puts "a" at an even position (positive embedding) and "b" at
// an odd one (negative embedding).
var engTestVocab = []string{"a", "b", "k", "h", "n", " ", "s", "r"}

var hinTestVocab = []string{"श", "ख", "अ", "म", "र", " ", "क़", "ब"}

func writeModelDir(t *testing.T, dir string, vocab []string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	payload, err := json.Marshal(testArtifact(vocab))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, models.ModelFile), payload, 0o644); err != nil {
		t.Fatal(err)
	}
}

// fakeResolver serves model dirs from a local root and counts calls, so
// tests can assert cache behavior and absence of network access.
type fakeResolver struct {
	root        string
	calls       int
	latestCalls int
	err         error
}

func newFakeResolver(t *testing.T) *fakeResolver {
	t.Helper()
	root := t.TempDir()
	writeModelDir(t, filepath.Join(root, "eng_model"), engTestVocab)
	writeModelDir(t, filepath.Join(root, "hin_model"), hinTestVocab)
	return &fakeResolver{root: root}
}

func (f *fakeResolver) Resolve(ctx context.Context, lang string, latest bool) (models.LocalModel, error) {
	f.calls++
	if latest {
		f.latestCalls++
	}
	if f.err != nil {
		return models.LocalModel{}, f.err
	}
	return models.LocalModel{
		Lang:    lang,
		Version: models.BundleVersion,
		Dir:     filepath.Join(f.root, lang+"_model"),
	}, nil
}
