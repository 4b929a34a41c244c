package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	kzip "github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRequiresCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Error(t, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage: modscaffold")

	assert.ErrorContains(t, run([]string{"frobnicate"}, &stdout, &stderr), `unknown command "frobnicate"`)
}

func TestRunPlanAndGuide(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"plan"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), " 7. Package as a PBO")

	stdout.Reset()
	require.NoError(t, run([]string{"guide", "packaging"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), ".bikey")

	assert.Error(t, run([]string{"guide", "nope"}, &stdout, &stderr))
}

func TestRunScaffoldAndInspect(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "my_rifle.p3d")
	require.NoError(t, os.WriteFile(model, []byte("MLOD"), 0o644))
	configPath := filepath.Join(dir, "scaffold.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("addon_folder: from_config\nauthor: Config Author\n"), 0o644))
	out := filepath.Join(dir, "dist", "rifle.zip")

	var stdout, stderr bytes.Buffer
	err := run([]string{
		"scaffold",
		"--config", configPath,
		"--addon-folder", "my_rifle",
		"--magazines", "mag_a,mag_b",
		"--model-file", model,
		"--output", out,
		"--concurrency", "4",
	}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), "Wrote "+out)
	assert.Contains(t, stdout.String(), "sha256:")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	zr, err := kzip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 10)
	assert.Equal(t, "@MyWeaponMod/addons/my_rifle/config.cpp", zr.File[0].Name)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	var config bytes.Buffer
	_, err = config.ReadFrom(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Contains(t, config.String(), `author = "Config Author";`)
	assert.Contains(t, config.String(), `magazines[] = {"mag_a", "mag_b"};`)
	assert.Equal(t, uint64(4), zr.File[2].UncompressedSize64)

	stdout.Reset()
	require.NoError(t, run([]string{"inspect", out}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "@MyWeaponMod/addons/my_rifle/model.cfg")
	assert.Contains(t, stdout.String(), "10 entries")
	assert.NotContains(t, stdout.String(), "checksum error")
}

func TestRunScaffoldRejectsInvalidConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"scaffold", "--addon-folder", "a/b", "--output", filepath.Join(t.TempDir(), "x.zip")}, &stdout, &stderr)
	assert.ErrorContains(t, err, "addon_folder must be a single folder name")
}

func TestRunScaffoldDir(t *testing.T) {
	base := t.TempDir()
	addon := filepath.Join(base, "@MyWeaponMod", "addons", "my_rifle")
	require.NoError(t, os.MkdirAll(addon, 0o755))
	model := filepath.Join(addon, "Rifle_SteyrArms_DMR_762_v01.p3d")
	require.NoError(t, os.WriteFile(model, []byte("converted"), 0o644))

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"scaffold", "--dir", base, "--addon-folder", "my_rifle"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Created "+filepath.Join(addon, "config.cpp"))
	assert.Contains(t, stdout.String(), "Kept "+model)
	assert.Contains(t, stdout.String(), "Scaffold ready in: "+addon)

	got, err := os.ReadFile(model)
	require.NoError(t, err)
	assert.Equal(t, "converted", string(got))
	assert.FileExists(t, filepath.Join(addon, "data", "UI", "steyr_dmr_icon_ca.paa"))
	assert.NoFileExists(t, filepath.Join(base, "my_rifle_scaffold.zip"))

	err = run([]string{"scaffold", "--dir", base, "--output", "x.zip"}, &stdout, &stderr)
	assert.ErrorContains(t, err, "cannot be used together")
}

func TestRunInspectDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "rifle.zip")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"scaffold", "--output", out}, &stdout, &stderr))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	// First byte of config.cpp content, after its 30-byte header and name.
	data[30+len("@MyWeaponMod/addons/steyr_dmr_rhs/config.cpp")] ^= 0xFF
	require.NoError(t, os.WriteFile(out, data, 0o644))

	stdout.Reset()
	err = run([]string{"inspect", out}, &stdout, &stderr)
	assert.ErrorContains(t, err, "1 of 10 entries failed verification")
	assert.Contains(t, stdout.String(), "checksum error")
}
