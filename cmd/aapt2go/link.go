package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/resourcepack/aapt2go/aaptcontext"
	"github.com/resourcepack/aapt2go/archive"
	"github.com/resourcepack/aapt2go/container"
	"github.com/resourcepack/aapt2go/link"
	"github.com/resourcepack/aapt2go/merge"
	"github.com/resourcepack/aapt2go/restable"
	"github.com/resourcepack/aapt2go/wire/binary"
	"github.com/resourcepack/aapt2go/wire/protores"
)

func newLinkCmd() *cobra.Command {
	var (
		inDir         string
		outFile       string
		pkgName       string
		minSdk        int
		sharedLibrary bool
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link compiled flat containers into a packaged resource archive",
		Long:  "Merges every flat container under --dir into one resource table, resolves/assigns/versions/dedupes it, and writes resources.arsc plus every compiled file into a zip archive (spec.md §4.5-§4.9)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(inDir, outFile, pkgName, minSdk, sharedLibrary)
		},
	}

	cmd.Flags().StringVar(&inDir, "dir", "compiled", "directory of flat containers produced by compile")
	cmd.Flags().StringVarP(&outFile, "output", "o", "out.apk", "path to the packaged output archive")
	cmd.Flags().StringVar(&pkgName, "package", "com.example.app", "compiling package name")
	cmd.Flags().IntVar(&minSdk, "min-sdk", 21, "minimum platform version the output must support")
	cmd.Flags().BoolVar(&sharedLibrary, "shared-lib", false, "link as a shared library (package id 0x00)")
	return cmd
}

func runLink(inDir, outFile, pkgName string, minSdk int, sharedLibrary bool) error {
	ctx := aaptcontext.New(aaptcontext.Options{
		CompilationPackage: pkgName,
		MinSdkVersion:      minSdk,
		SharedLibraryMode:  sharedLibrary,
	})

	table := restable.NewTable()
	merger := &merge.Merger{Mode: merge.ModeAppend}
	var rawFiles []binary.CompiledFileHeader
	var rawPayloads [][]byte

	err := filepath.Walk(inDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".flat" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		payloads, err := container.Read(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, p := range payloads {
			switch p.Kind {
			case container.KindResTable:
				src, err := protores.DecodeTable(p.Data)
				if err != nil {
					return fmt.Errorf("decoding resource table in %s: %w", path, err)
				}
				if errs := merger.Merge(table, src); len(errs) > 0 {
					return errs[0]
				}
			case container.KindResFile:
				header, raw, err := binary.DecodeCompiledFile(p.Data)
				if err != nil {
					return fmt.Errorf("decoding compiled file in %s: %w", path, err)
				}
				rawFiles = append(rawFiles, header)
				rawPayloads = append(rawPayloads, raw)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	assigner := &link.Assigner{SharedLibraryMode: sharedLibrary}
	if errs := assigner.AssignTable(table); len(errs) > 0 {
		for _, e := range errs {
			ctx.Logger.Errorf("%s", e.Error())
		}
		return errs[0]
	}

	ctx.Symbols.Sources = append(ctx.Symbols.Sources, &link.TableSymbolSource{Table: table})
	resolver := &link.Resolver{Chain: ctx.Symbols, Options: link.Options{SharedLibraryMode: sharedLibrary}, DefiningPackage: pkgName}
	if errs := resolver.ResolveTable(table); len(errs) > 0 {
		for _, e := range errs {
			ctx.Logger.Errorf("%s", e.Error())
		}
		return errs[0]
	}

	(&link.AutoVersioner{}).VersionTable(table)
	(&link.Deduper{}).DedupeTable(table)

	tableBytes, err := binary.EncodeTable(table)
	if err != nil {
		return fmt.Errorf("encoding resources.arsc: %w", err)
	}

	sink, err := archive.CreateZipFileArchiveWriter(outFile)
	if err != nil {
		return err
	}
	if err := sink.WriteFile("resources.arsc", archive.FlagAlign, tableBytes); err != nil {
		return err
	}
	for i, header := range rawFiles {
		if err := sink.WriteFile(header.SourcePath, archive.FlagCompress, rawPayloads[i]); err != nil {
			return err
		}
	}
	return sink.Close()
}
