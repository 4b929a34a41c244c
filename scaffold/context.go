// Package scaffold generates the starter files of an Arma 3 weapon addon
// that depends on RHS, and bundles them into a store-only zip.
package scaffold

import (
	"regexp"
	"strings"
)

// Context holds the values substituted into config.cpp and model.cfg.
type Context struct {
	AddonPrefix    string   `yaml:"addon_prefix"`
	AddonFolder    string   `yaml:"addon_folder"`
	Author         string   `yaml:"author"`
	WeaponClass    string   `yaml:"weapon_class"`
	WeaponName     string   `yaml:"weapon_name"`
	ModelFilename  string   `yaml:"model_filename"`
	WeaponIcon     string   `yaml:"weapon_icon"`
	OpticClass     string   `yaml:"optic_class"`
	OpticName      string   `yaml:"optic_name"`
	OpticModel     string   `yaml:"optic_model"`
	OpticIcon      string   `yaml:"optic_icon"`
	MagazineWells  []string `yaml:"magazine_wells"`
	Magazines      []string `yaml:"magazines"`
	RequiredAddons []string `yaml:"required_addons"`
}

// DefaultContext returns the Steyr DMR values used when nothing is configured.
func DefaultContext() Context {
	return Context{
		AddonPrefix:    "my_mod",
		AddonFolder:    "steyr_dmr_rhs",
		Author:         "YourName",
		WeaponClass:    "Steyr_DMR_762",
		WeaponName:     "Steyr Arms DMR 7.62",
		ModelFilename:  "Rifle_SteyrArms_DMR_762_v01.p3d",
		WeaponIcon:     "steyr_dmr_icon_ca.paa",
		OpticClass:     "Steyr_DMR_Scope",
		OpticName:      "Steyr DMR Scope 6-24x",
		OpticModel:     "steyr_scope.p3d",
		OpticIcon:      "scope_icon_ca.paa",
		MagazineWells:  []string{"SR25"},
		Magazines:      []string{"rhs_mag_20Rnd_762x51_M118_special_Mag"},
		RequiredAddons: []string{"A3_Weapons_F", "rhsusf_main", "rhs_c_weapons"},
	}
}

var p3dSuffix = regexp.MustCompile(`(?i)\.p3d$`)

// ModelClass is the CfgModels class name: the model file without .p3d.
func (c Context) ModelClass() string {
	return p3dSuffix.ReplaceAllString(c.ModelFilename, "")
}

// quoteList renders items as a config array body: "a", "b".
// Items are trimmed and blanks dropped.
func quoteList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		quoted = append(quoted, `"`+item+`"`)
	}
	return strings.Join(quoted, ", ")
}
