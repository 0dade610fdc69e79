package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/hickb/hdcycles/engine/core"
)

/**
 * @brief Render-session configuration. Passed explicitly into every mesh
 * primitive at construction; nothing reads it from ambient global state.
 */
type Config struct {
	EnableSubdivision     bool    `toml:"enable_subdivision"`
	SubdivisionDicingRate float32 `toml:"subdivision_dicing_rate"`
	MaxSubdivision        int     `toml:"max_subdivision"`
	EnableMotionBlur      bool    `toml:"enable_motion_blur"`
	DeformMotionBlur      bool    `toml:"deform_motion_blur"`
	MotionSteps           int     `toml:"motion_steps"`
	VelocityScale         float32 `toml:"velocity_scale"`
}

func Default() Config {
	return Config{
		EnableSubdivision:     true,
		SubdivisionDicingRate: 1.0,
		MaxSubdivision:        12,
		EnableMotionBlur:      true,
		DeformMotionBlur:      true,
		MotionSteps:           3,
		VelocityScale:         1.0,
	}
}

// Load reads a TOML file over the defaults. A missing file is not an error;
// the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		core.LogError("failed to read config %s: %s", path, err.Error())
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		core.LogError("failed to parse config %s: %s", path, err.Error())
		return Default(), err
	}

	return cfg, nil
}
