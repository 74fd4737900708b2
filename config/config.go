package config

import (
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/teardown_browser/scene"
)

// Settings is the program configuration loaded from settings.yaml.
// Only ambient configuration lives here; import diagnostics stay in
// the per-import Report.
type Settings struct {
	ListenAddr            string  `yaml:"listen_addr"`
	MaxVoxels             int     `yaml:"max_voxels"`
	VoxelScale            float32 `yaml:"voxel_scale"`
	ParentLargeRootBodies bool    `yaml:"parent_large_root_bodies"`
}

var settings = Settings{
	ListenAddr: ":8000",
	MaxVoxels:  scene.DefaultMaxVoxels,
	VoxelScale: scene.DefaultVoxelScale,
}

func GetSettings() Settings {
	return settings
}

func SetSettings(s Settings) {
	settings = s
}

// LoadSettings overlays settings from a yaml file. A missing file is
// not an error; the defaults stay in effect.
func LoadSettings(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "read %q", path)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return errors.Wrapf(err, "parse %q", path)
	}
	return nil
}

// ImportOptions converts the settings into scene import options.
func (s Settings) ImportOptions() scene.Options {
	return scene.Options{
		MaxVoxels:             s.MaxVoxels,
		VoxelScale:            s.VoxelScale,
		ParentLargeRootBodies: s.ParentLargeRootBodies,
	}
}
