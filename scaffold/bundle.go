package scaffold

import (
	"fmt"
	"path"

	"ModScaffold/zip"
)

// ModRoot is the mod folder every scaffold is placed under.
const ModRoot = "@MyWeaponMod"

// Upload is a user supplied asset, already read into memory.
type Upload struct {
	Name  string
	Bytes []byte
}

// Assets are the optional uploads. A nil field becomes an empty placeholder
// under its default name.
type Assets struct {
	Model      *Upload
	Optic      *Upload
	Color      *Upload
	Normal     *Upload
	Roughness  *Upload
	Metalness  *Upload
	AO         *Upload
	WeaponIcon *Upload
	OpticIcon  *Upload
}

func (u *Upload) content() []byte {
	if u == nil || u.Bytes == nil {
		return []byte{}
	}
	return u.Bytes
}

func (u *Upload) nameOr(fallback string) string {
	if u == nil {
		return fallback
	}
	return u.Name
}

// AddonPath is the slash-separated directory of the addon, relative to the
// archive or tree root.
func AddonPath(ctx Context) string {
	return path.Join(ModRoot, "addons", ctx.AddonFolder)
}

// ArchiveName is the file name offered for the generated zip.
func ArchiveName(ctx Context) string {
	return ctx.AddonFolder + "_scaffold.zip"
}

// Files lays out the scaffold: generated configs, the models, textures,
// material and icons. Provided textures are also kept under data/src with
// their original names.
func Files(ctx Context, assets Assets) ([]zip.FileEntry, error) {
	// Uploaded icons keep their own names, and config.cpp must point at them.
	ctx.WeaponIcon = assets.WeaponIcon.nameOr(ctx.WeaponIcon)
	ctx.OpticIcon = assets.OpticIcon.nameOr(ctx.OpticIcon)

	config, err := RenderConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("rendering config.cpp: %w", err)
	}
	modelCfg, err := RenderModelCfg(ctx)
	if err != nil {
		return nil, fmt.Errorf("rendering model.cfg: %w", err)
	}

	smdi := assets.Roughness
	if smdi == nil {
		smdi = assets.Metalness
	}

	base := AddonPath(ctx)
	files := []zip.FileEntry{
		{Path: base + "/config.cpp", Content: []byte(config)},
		{Path: base + "/model.cfg", Content: []byte(modelCfg)},
		{Path: base + "/" + ctx.ModelFilename, Content: assets.Model.content()},
		{Path: base + "/" + ctx.OpticModel, Content: assets.Optic.content()},
		{Path: base + "/data/" + assets.Color.nameOr("rifle_dmr_co.paa"), Content: assets.Color.content()},
		{Path: base + "/data/" + assets.Normal.nameOr("rifle_dmr_nohq.paa"), Content: assets.Normal.content()},
		{Path: base + "/data/" + smdi.nameOr("rifle_dmr_smdi.paa"), Content: smdi.content()},
		{Path: base + "/data/rifle_dmr.rvmat", Content: []byte{}},
		{Path: base + "/data/UI/" + ctx.WeaponIcon, Content: assets.WeaponIcon.content()},
		{Path: base + "/data/UI/" + ctx.OpticIcon, Content: assets.OpticIcon.content()},
	}

	for _, src := range []*Upload{assets.Color, assets.Normal, assets.Roughness, assets.Metalness, assets.AO} {
		if src != nil {
			files = append(files, zip.FileEntry{Path: base + "/data/src/" + src.Name, Content: src.content()})
		}
	}
	return files, nil
}

// Bundle renders the scaffold and returns it as a zip archive.
func Bundle(ctx Context, assets Assets, opts ...zip.Option) ([]byte, error) {
	files, err := Files(ctx, assets)
	if err != nil {
		return nil, err
	}
	return zip.Build(files, opts...)
}
