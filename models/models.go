package models

// BundleName is the model bundle shipped for both languages. Downloading it
// once installs the English and the Hindi model together.
const BundleName = "eng_and_hindi_models_v1"

// BundleVersion is the version encoded in the bundle name.
const BundleVersion = "v1"

// langSubdir maps a language code to its model directory inside the bundle.
var langSubdir = map[string]string{
	"eng": "eng_model",
	"hin": "hin_model",
}

// LocalModel points at a ready-to-load model on the local filesystem.
type LocalModel struct {
	Lang    string
	Version string
	// Dir contains model.json for this language.
	Dir string
}

// ModelFile is the artifact file name inside each language directory.
const ModelFile = "model.json"
