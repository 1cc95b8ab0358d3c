package nlp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/jdkato/prose/v2"
	"github.com/spf13/afero"
)

// ModelDirEnv overrides where tagging models are cached.
const ModelDirEnv = "GITCH_MODEL_DIR"

// ModelName is the directory name of the tagging model inside the cache.
const ModelName = "en-v2"

// perceptronWeights is the file whose presence marks a materialized model.
const perceptronWeights = "AveragedPerceptron/weights.gob"

// ModelDir resolves the model cache directory: the GITCH_MODEL_DIR
// environment variable when set, the XDG cache home otherwise.
func ModelDir() string {
	if dir := os.Getenv(ModelDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(xdg.CacheHome, "gitch")
}

// ModelUnavailableError reports that no tagging model is materialized in the
// cache directory.
type ModelUnavailableError struct {
	Dir string
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("parts-of-speech tagging model not found at %q", filepath.Join(e.Dir, ModelName))
}

// DiskLoader loads tagging models from a cache directory, materializing the
// packaged model data on demand.
type DiskLoader struct {
	fs  afero.Fs
	dir string
}

// NewDiskLoader creates a loader for the given cache directory.
func NewDiskLoader(dir string) *DiskLoader {
	return &DiskLoader{fs: afero.NewOsFs(), dir: dir}
}

// Dir returns the cache directory the loader reads from.
func (l *DiskLoader) Dir() string { return l.dir }

func (l *DiskLoader) modelPath() string {
	return filepath.Join(l.dir, ModelName)
}

// Load reads the model from the cache directory. A missing model is
// reported as *ModelUnavailableError so callers can Fetch and retry.
func (l *DiskLoader) Load() (Tagger, error) {
	marker := filepath.Join(l.modelPath(), filepath.FromSlash(perceptronWeights))
	if exists, err := afero.Exists(l.fs, marker); err != nil || !exists {
		return nil, &ModelUnavailableError{Dir: l.dir}
	}

	return &ProseTagger{model: prose.ModelFromDisk(l.modelPath())}, nil
}

// Fetch materializes the model into the cache directory. The English model
// ships with the tagging library, so this unpacks the packaged data rather
// than reaching over the network; a custom model dropped at the same path
// takes priority on the next Load. The cache is durable: later runs load
// from disk without re-materializing.
func (l *DiskLoader) Fetch() error {
	if err := l.fs.MkdirAll(l.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create model directory %s: %w", l.dir, err)
	}

	if err := prose.ModelFromData(ModelName).Write(l.modelPath()); err != nil {
		return fmt.Errorf("failed to materialize tagging model at %s: %w", l.modelPath(), err)
	}
	return nil
}
