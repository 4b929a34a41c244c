// modscaffold helps build an Arma 3 rifle addon on top of RHS. It prints
// the build checklist and guides, generates a starter addon as a zip
// archive, and lists and verifies zip archives.
package main

import (
	_ "crypto/sha256" // registers the algorithm behind digest.FromBytes
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/opencontainers/go-digest"
	"github.com/spf13/pflag"

	"ModScaffold/scaffold"
	"ModScaffold/zip"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return errors.New("no command given")
	}

	switch args[0] {
	case "plan":
		return runPlan(stdout)
	case "guide":
		return runGuide(args[1:], stdout)
	case "scaffold":
		return runScaffold(args[1:], stdout, stderr)
	case "inspect":
		return runInspect(args[1:], stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: modscaffold <command> [flags]

Commands:
  plan                 print the high-level checklist
  guide [topic]        show focused tips (model, textures, attachments, packaging, all)
  scaffold [flags]     write a ready-to-fill addon as a zip archive, or a folder with --dir
  inspect <file.zip>   list archive entries and verify their checksums

Run "modscaffold scaffold --help" for scaffold flags.
`)
}

func runPlan(w io.Writer) error {
	fmt.Fprintln(w, "\nGuided checklist for building the RHS-based Steyr DMR mod:")
	fmt.Fprintln(w)
	for i, step := range scaffold.Steps {
		fmt.Fprintf(w, " %d. %s\n", i+1, step)
	}
	fmt.Fprintln(w, "\nTips:")
	for _, tip := range scaffold.Tips {
		fmt.Fprintf(w, " - %s\n", tip)
	}
	return nil
}

func runGuide(args []string, w io.Writer) error {
	topic := "all"
	if len(args) > 0 {
		topic = args[0]
	}
	text, err := scaffold.Guide(topic)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, text)
	return nil
}

func runScaffold(args []string, stdout, stderr io.Writer) error {
	defaults := scaffold.DefaultContext()

	flagSet := pflag.NewFlagSet("scaffold", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	configPath := flagSet.String("config", "", "YAML scaffold description; flags override its values")
	output := flagSet.StringP("output", "o", "", "archive to write (default: <addon-folder>_scaffold.zip)")
	dir := flagSet.String("dir", "", "write the mod folder tree under this directory instead of an archive")
	concurrency := flagSet.Int("concurrency", 1, "goroutines used to checksum entries")
	verbose := flagSet.BoolP("verbose", "v", false, "log archive assembly at debug level")

	flagSet.String("addon-prefix", defaults.AddonPrefix, "mod prefix used in model paths")
	flagSet.String("addon-folder", defaults.AddonFolder, "addon folder and CfgPatches class")
	flagSet.String("author", defaults.Author, "author name")
	flagSet.String("weapon-class", defaults.WeaponClass, "weapon class name")
	flagSet.String("weapon-name", defaults.WeaponName, "weapon display name")
	flagSet.String("model-filename", defaults.ModelFilename, "weapon model file name")
	flagSet.String("weapon-icon", defaults.WeaponIcon, "weapon inventory icon")
	flagSet.String("optic-class", defaults.OpticClass, "optic class name")
	flagSet.String("optic-name", defaults.OpticName, "optic display name")
	flagSet.String("optic-model", defaults.OpticModel, "optic model file name")
	flagSet.String("optic-icon", defaults.OpticIcon, "optic inventory icon")
	flagSet.StringSlice("magazine-wells", defaults.MagazineWells, "comma-separated magazine wells")
	flagSet.StringSlice("magazines", defaults.Magazines, "comma-separated magazine class names")
	flagSet.StringSlice("required-addons", defaults.RequiredAddons, "comma-separated CfgPatches dependencies")

	for _, role := range []string{"model", "optic", "color", "normal", "roughness", "metalness", "ao", "weapon-icon", "optic-icon"} {
		flagSet.String(role+"-file", "", "local file for the "+role+" slot")
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}
	if *dir != "" && *output != "" {
		return errors.New("--dir and --output cannot be used together")
	}

	cfg := scaffold.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = scaffold.LoadConfig(*configPath); err != nil {
			return err
		}
	}
	applyFlags(flagSet, cfg)
	if *output != "" {
		cfg.Output = *output
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	assets, err := scaffold.LoadAssets(cfg.Assets)
	if err != nil {
		return err
	}
	if *dir != "" {
		return writeTree(stdout, *dir, cfg.Context, assets)
	}

	data, err := scaffold.Bundle(cfg.Context, assets, zip.WithLogger(logger), zip.WithConcurrency(*concurrency))
	if err != nil {
		return err
	}

	path := cfg.Output
	if path == "" {
		path = scaffold.ArchiveName(cfg.Context)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Wrote %s (%s, %s)\n", path, humanize.IBytes(uint64(len(data))), digest.FromBytes(data))
	fmt.Fprintln(stdout, "Replace placeholder .p3d and .paa files with your converted assets before packing.")
	return nil
}

func writeTree(w io.Writer, base string, ctx scaffold.Context, assets scaffold.Assets) error {
	written, err := scaffold.WriteTree(base, ctx, assets)
	for _, file := range written {
		if file.Kept {
			fmt.Fprintf(w, "Kept %s\n", file.Path)
		} else {
			fmt.Fprintf(w, "Created %s\n", file.Path)
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nScaffold ready in: %s\n", filepath.Join(base, filepath.FromSlash(scaffold.AddonPath(ctx))))
	fmt.Fprintln(w, "Replace placeholder .p3d and .paa files with your converted assets before packing.")
	return nil
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(flagSet *pflag.FlagSet, cfg *scaffold.Config) {
	stringFlags := map[string]*string{
		"addon-prefix":     &cfg.AddonPrefix,
		"addon-folder":     &cfg.AddonFolder,
		"author":           &cfg.Author,
		"weapon-class":     &cfg.WeaponClass,
		"weapon-name":      &cfg.WeaponName,
		"model-filename":   &cfg.ModelFilename,
		"weapon-icon":      &cfg.WeaponIcon,
		"optic-class":      &cfg.OpticClass,
		"optic-name":       &cfg.OpticName,
		"optic-model":      &cfg.OpticModel,
		"optic-icon":       &cfg.OpticIcon,
		"model-file":       &cfg.Assets.Model,
		"optic-file":       &cfg.Assets.Optic,
		"color-file":       &cfg.Assets.Color,
		"normal-file":      &cfg.Assets.Normal,
		"roughness-file":   &cfg.Assets.Roughness,
		"metalness-file":   &cfg.Assets.Metalness,
		"ao-file":          &cfg.Assets.AO,
		"weapon-icon-file": &cfg.Assets.WeaponIcon,
		"optic-icon-file":  &cfg.Assets.OpticIcon,
	}
	lists := map[string]*[]string{
		"magazine-wells":  &cfg.MagazineWells,
		"magazines":       &cfg.Magazines,
		"required-addons": &cfg.RequiredAddons,
	}

	flagSet.Visit(func(f *pflag.Flag) {
		if target, ok := stringFlags[f.Name]; ok {
			*target = f.Value.String()
		}
		if target, ok := lists[f.Name]; ok {
			*target, _ = flagSet.GetStringSlice(f.Name)
		}
	})
}

func runInspect(args []string, w io.Writer) error {
	if len(args) != 1 {
		return errors.New("inspect takes exactly one archive path")
	}

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}
	zr, err := zip.NewReader(file, info.Size())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tCRC32\tOFFSET\tSTATUS")
	failed := 0
	for _, f := range zr.Files {
		status := "ok"
		if _, err := f.ReadAll(); err != nil {
			status = err.Error()
			failed++
		}
		fmt.Fprintf(tw, "%s\t%s\t%08x\t%d\t%s\n", f.Name, humanize.IBytes(uint64(f.UncompressedSize)), f.CRC32, f.LocalHeaderOffset, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d entries, central directory at %d (%d bytes)\n", len(zr.Files), zr.EOCD.CentralDirOffset, zr.EOCD.CentralDirSize)

	if failed > 0 {
		return fmt.Errorf("%d of %d entries failed verification", failed, len(zr.Files))
	}
	return nil
}
