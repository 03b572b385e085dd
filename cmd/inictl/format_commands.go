package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/ini"
)

// openInput opens a conversion source, reporting a missing or unreadable
// file as ini.ErrNotFound the same way loading an INI file does.
func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return nil, fmt.Errorf("%w: '%s': %w", ini.ErrNotFound, path, err)
	}
	return nil, fmt.Errorf("%w: failed to open '%s': %w", ini.ErrIO, path, err)
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var fromFlag string
	var toFlag string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert a settings file between INI, TOML, JSON and YAML",
		Long: "Convert a settings file to another format. The input format defaults to\n" +
			"the file extension; the output format defaults to the --output extension.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := resolveFormat(fromFlag, args[0])
			if err != nil {
				return err
			}
			if toFlag == "" && outputPath == "" {
				return fmt.Errorf("either --to or --output is required")
			}
			to, err := resolveFormat(toFlag, outputPath)
			if err != nil {
				return err
			}

			f, err := openInput(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			d, err := ini.Import(f, from, ini.WithLogger(ctx.logger()))
			if err != nil {
				return fmt.Errorf("read %s as %s: %w", args[0], from, err)
			}

			var buf bytes.Buffer
			if err := d.Export(&buf, to); err != nil {
				return fmt.Errorf("write %s: %w", to, err)
			}

			if outputPath == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outputPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d sections)\n", outputPath, d.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "Input format: ini, toml, json or yaml")
	cmd.Flags().StringVar(&toFlag, "to", "", "Output format: ini, toml, json or yaml")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func resolveFormat(name, path string) (ini.Format, error) {
	if name != "" {
		return ini.ParseFormat(name)
	}
	return ini.DetectFormat(path), nil
}

func newFmtCommand(ctx *commandContext) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Print a settings file in canonical form",
		Long: "Print the file as it would be saved: comments and blank lines dropped,\n" +
			"repeated sections merged, one key=value line per value. With --write the\n" +
			"file is rewritten in place.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := ctx.load(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			if !write {
				_, err := d.WriteTo(cmd.OutOrStdout())
				return err
			}
			if err := d.Save(args[0]); err != nil {
				return fmt.Errorf("save %s: %w", args[0], err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite the file instead of printing it")
	return cmd
}
