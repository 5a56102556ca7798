package repository

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"glosskeep/internal/model"
)

const learningPathsFile = "learning_paths.json"

// LoadLearningPaths reads the static learning-path definitions from the
// data directory. Path definitions are curriculum metadata, not live
// records; both store backends share this file. A missing file just means
// no learning paths.
func LoadLearningPaths(dataDir string, logger *slog.Logger) ([]*model.LearningPath, error) {
	path := filepath.Join(dataDir, learningPathsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Learning paths file not found", "path", path)
			return []*model.LearningPath{}, nil
		}
		return nil, err
	}

	var paths []*model.LearningPath
	if err := json.Unmarshal(data, &paths); err != nil {
		return nil, err
	}
	logger.Info("Learning paths loaded", "count", len(paths), "path", path)
	return paths, nil
}
