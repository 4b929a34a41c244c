package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the scaffold description read from a YAML file. The context
// fields sit at the top level of the file:
//
//	addon_folder: my_rifle
//	weapon_class: My_Rifle_556
//	magazines: [rhs_mag_30Rnd_556x45_M855A1_Stanag]
//	assets:
//	  model: ./build/my_rifle.p3d
//	  color: ./textures/my_rifle_co.paa
//	output: ./dist/my_rifle_scaffold.zip
type Config struct {
	Context `yaml:",inline"`

	// Assets are local files to place in the scaffold.
	Assets AssetPaths `yaml:"assets"`

	// Output is where the archive is written. Empty means ArchiveName in
	// the working directory.
	Output string `yaml:"output"`
}

// AssetPaths names the local file for each upload slot. Empty paths are skipped.
type AssetPaths struct {
	Model      string `yaml:"model"`
	Optic      string `yaml:"optic"`
	Color      string `yaml:"color"`
	Normal     string `yaml:"normal"`
	Roughness  string `yaml:"roughness"`
	Metalness  string `yaml:"metalness"`
	AO         string `yaml:"ao"`
	WeaponIcon string `yaml:"weapon_icon"`
	OpticIcon  string `yaml:"optic_icon"`
}

// DefaultConfig returns DefaultContext with no assets and no output path.
func DefaultConfig() *Config {
	return &Config{Context: DefaultContext()}
}

// LoadConfig reads path over the defaults. Keys missing from the file keep
// their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every problem that would produce an unusable addon.
func (c *Config) Validate() error {
	var errs []error

	required := []struct {
		key   string
		value string
	}{
		{"addon_prefix", c.AddonPrefix},
		{"addon_folder", c.AddonFolder},
		{"weapon_class", c.WeaponClass},
		{"model_filename", c.ModelFilename},
		{"weapon_icon", c.WeaponIcon},
		{"optic_class", c.OpticClass},
		{"optic_model", c.OpticModel},
		{"optic_icon", c.OpticIcon},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.key))
		}
	}

	if strings.ContainsAny(c.AddonFolder, `/\`) {
		errs = append(errs, fmt.Errorf("addon_folder must be a single folder name, got %q", c.AddonFolder))
	}
	if !p3dSuffix.MatchString(c.ModelFilename) {
		errs = append(errs, fmt.Errorf("model_filename must end in .p3d, got %q", c.ModelFilename))
	}
	if quoteList(c.RequiredAddons) == "" {
		errs = append(errs, fmt.Errorf("required_addons must list at least one addon"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LoadAssets reads every configured asset file into memory. Each upload
// is named after the base name of its file.
func LoadAssets(paths AssetPaths) (Assets, error) {
	var assets Assets
	slots := []struct {
		role   string
		path   string
		target **Upload
	}{
		{"model", paths.Model, &assets.Model},
		{"optic", paths.Optic, &assets.Optic},
		{"color", paths.Color, &assets.Color},
		{"normal", paths.Normal, &assets.Normal},
		{"roughness", paths.Roughness, &assets.Roughness},
		{"metalness", paths.Metalness, &assets.Metalness},
		{"ao", paths.AO, &assets.AO},
		{"weapon_icon", paths.WeaponIcon, &assets.WeaponIcon},
		{"optic_icon", paths.OpticIcon, &assets.OpticIcon},
	}
	for _, slot := range slots {
		if slot.path == "" {
			continue
		}
		data, err := os.ReadFile(slot.path)
		if err != nil {
			return Assets{}, fmt.Errorf("reading %s asset: %w", slot.role, err)
		}
		*slot.target = &Upload{Name: filepath.Base(slot.path), Bytes: data}
	}
	return assets, nil
}
