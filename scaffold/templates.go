package scaffold

import (
	"strings"
	"text/template"
)

// Config arrays use braces, so actions are delimited with << >>.
var templateFuncs = template.FuncMap{"quote": quoteList}

var configTemplate = template.Must(template.New("config.cpp").
	Delims("<<", ">>").Funcs(templateFuncs).Parse(configSource))

var modelCfgTemplate = template.Must(template.New("model.cfg").
	Delims("<<", ">>").Funcs(templateFuncs).Parse(modelCfgSource))

// RenderConfig returns config.cpp declaring the weapon and its optic.
func RenderConfig(ctx Context) (string, error) {
	return render(configTemplate, ctx)
}

// RenderModelCfg returns model.cfg with bolt, magazine and trigger animations.
func RenderModelCfg(ctx Context) (string, error) {
	return render(modelCfgTemplate, ctx)
}

func render(t *template.Template, ctx Context) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, ctx); err != nil {
		return "", err
	}
	return sb.String(), nil
}

const configSource = `#include "basicDefines_A3.hpp"

class CfgPatches {
    class <<.AddonFolder>> {
        author = "<<.Author>>";
        name = "<<.WeaponName>> (RHS Mod)";
        url = "";
        units[] = {};
        weapons[] = {"<<.WeaponClass>>"};
        requiredVersion = 1.0;
        requiredAddons[] = {<<quote .RequiredAddons>>};
    };
};

class Mode_SemiAuto;
class Mode_FullAuto;
class SlotInfo;
class MuzzleSlot;
class CowsSlot;
class PointerSlot;
class UnderBarrelSlot;
class InventoryOpticsItem_Base_F;
class InventoryMuzzleItem_Base_F;
class InventoryUnderItem_Base_F;

class CfgWeapons {
    class Rifle_Base_F;
    class <<.WeaponClass>>: Rifle_Base_F {
        author = "<<.Author>>";
        displayName = "<<.WeaponName>>";
        descriptionShort = "DMR (7.62x51) using RHS attachments";
        model = "\<<.AddonPrefix>>\addons\<<.AddonFolder>>\<<.ModelFilename>>";
        picture = "\<<.AddonPrefix>>\addons\<<.AddonFolder>>\data\UI\<<.WeaponIcon>>";
        modes[] = {"Single"};
        magazineWell[] = {<<quote .MagazineWells>>};
        magazines[] = {<<quote .Magazines>>};
        reloadAction = "GestureReloadDMR";
        reloadTime = 0.1;
        recoil = "recoil_dmr_06";
        discreteDistance[] = {100, 200, 300, 400};
        maxZeroing = 1200;

        drySound[] = {"\A3\Sounds_F\arsenal\weapons\LongRangeRifles\DMR_06\dry_DMR_06", db-5, 1, 10};
        reloadMagazineSound[] = {"\A3\Sounds_F\arsenal\weapons\LongRangeRifles\DMR_06\reload_DMR_06", 1, 1, 10};

        class WeaponSlotsInfo: WeaponSlotsInfo {
            mass = 120;
            allowedSlots[] = {901};
            class MuzzleSlot: rhs_western_rifle_muzzle_slot {};
            class CowsSlot: rhs_western_rifle_scopes_slot_short {};
            class PointerSlot: rhs_western_rifle_laser_slot {};
            class UnderBarrelSlot: rhs_western_rifle_underbarrel_slot {};
        };

        handAnim[] = {"OFP2_ManSkeleton", "\A3\Weapons_F_Mark\LongRangeRifles\GM6\handanim_GM6.rtm"};

        class Single: Mode_SemiAuto {
            sounds[] = {"StandardSound", "SilencedSound"};
            reloadTime = 0.1;
            dispersion = 0.00087;
        };
    };

    class <<.OpticClass>>: ItemCore {
        scope = 2; scopeCurator = 2;
        displayName = "<<.OpticName>>";
        model = "\<<.AddonPrefix>>\addons\<<.AddonFolder>>\<<.OpticModel>>";
        picture = "\<<.AddonPrefix>>\addons\<<.AddonFolder>>\data\UI\<<.OpticIcon>>";
        descriptionShort = "Optical sight for the <<.WeaponName>>";
        weaponInfoType = "RscWeaponZeroing";
        class ItemInfo: InventoryOpticsItem_Base_F {
            mass = 10;
            opticType = 2;
            optics = 1;
            modelOptics = "\A3\Weapons_F\acc\reticle_sniper_F.p3d";
            class OpticsModes {
                class Snip {
                    opticsZoomMin = 0.041; opticsZoomMax = 0.125; opticsZoomInit = 0.125;
                    distanceZoomMin = 100; distanceZoomMax = 1000;
                    memoryPointCamera = "eye";
                    opticsID = 1;
                    useModelOptics = 1;
                    opticsPPEffects[] = {"OpticsCHAbera1", "OpticsBlur1"};
                    opticsDisablePeripherialVision = 1;
                    visionMode[] = {"Normal"};
                };
            };
        };
    };
};
`

const modelCfgSource = `class CfgSkeletons {
    class WeaponSkeleton {
        isDiscrete = 1;
        skeletonInherit = "";
        skeletonBones[] = {};
    };
};

class CfgModels {
    class Default {
        sections[] = {};
        skeletonName = "";
    };
    class <<.ModelClass>>: Default {
        skeletonName = "WeaponSkeleton";
        sections[] = {"bolt", "magazine"};
        class Animations {
            class BoltMovement {
                source = "reload";
                selection = "bolt";
                axis = "bolt_axis";
                type = "translation";
                minValue = 0; maxValue = 1;
                offset0 = 0; offset1 = -0.1;
            };
            class MagHide {
                source = "reloadMagazine";
                selection = "magazine";
                type = "hide";
                minValue = 0; maxValue = 1;
            };
            class TriggerPull {
                source = "trigger";
                selection = "trigger";
                axis = "trigger_axis";
                type = "rotation";
                angle0 = 0; angle1 = -0.1;
            };
        };
    };
};
`
