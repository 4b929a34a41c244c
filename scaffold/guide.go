package scaffold

import (
	"fmt"
	"strings"
)

// Steps is the high-level checklist for building an RHS-based rifle mod.
var Steps = []string{
	"Prepare and convert your model (Blender/Object Builder, LODs, proxies, textures).",
	"Set up the mod folder (@MyWeaponMod/addons/your_addon) with model, textures, config.cpp, and model.cfg.",
	"Write config.cpp (CfgPatches, CfgWeapons, optional CfgMagazines/Ammo) with RHS dependencies.",
	"Define model.cfg animations (bolt, trigger, magazine hide) tied to animation sources.",
	"Wire modular attachments (optics, suppressor, lasers, bipod) using RHS slot classes.",
	"Verify animations, sounds, muzzle and ejection memory points in-game.",
	"Package as a PBO, sign it, and publish with RHS listed as a dependency.",
}

// Tips are printed after the checklist.
var Tips = []string{
	"Keep texture paths relative (avoid pink textures).",
	"Use RHS attachment slots for instant suppressor/scope/bipod compatibility.",
	"Test in Virtual Arsenal with RHS loaded; inspect RPT if something is missing.",
}

// GuideTopics lists the guide sections in display order.
var GuideTopics = []string{"model", "textures", "attachments", "packaging"}

var guides = map[string]string{
	"model":       "Prepare geometry LODs, memory points (usti hlavne, konec hlavne, nabojnicestart, nabojniceend) and proxies for TOP/SIDE/MUZZLE/UNDERBARREL in Object Builder.",
	"textures":    "Convert textures to .paa (_co, _nohq, _smdi) and reference them via an RVMAT with relative paths to avoid pink materials.",
	"attachments": "Use rhs_western_rifle_muzzle_slot, rhs_western_rifle_scopes_slot_short, rhs_western_rifle_laser_slot, and rhs_western_rifle_underbarrel_slot for plug-and-play RHS suppressors, optics, lasers, and bipods.",
	"packaging":   "Pack steyr_dmr_rhs into a PBO (Addon Builder or Mikero), binarize models, sign the PBO, and include the .bikey in a keys folder before publishing.",
}

// Guide returns the text for topic, or every section for "all".
func Guide(topic string) (string, error) {
	if topic == "all" {
		sections := make([]string, 0, len(GuideTopics))
		for _, key := range GuideTopics {
			sections = append(sections, fmt.Sprintf("[%s]\n%s", key, guides[key]))
		}
		return strings.Join(sections, "\n\n"), nil
	}
	text, ok := guides[topic]
	if !ok {
		return "", fmt.Errorf("unknown guide topic %q, choose from: all, %s", topic, strings.Join(GuideTopics, ", "))
	}
	return text, nil
}
