package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/ini"
)

func newGetCommand(ctx *commandContext) *cobra.Command {
	var all bool
	var def string

	cmd := &cobra.Command{
		Use:   "get FILE SECTION KEY",
		Short: "Print the value of a key",
		Long: "Print the first value of a key, or every value one per line with --all.\n" +
			"A missing key is an error unless --default is given.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := ctx.load(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			section, key := args[1], args[2]

			values := d.Values(section, key)
			if len(values) == 0 {
				if !cmd.Flags().Changed("default") {
					return fmt.Errorf("%s.%s is not set", section, key)
				}
				values = []string{def}
			}
			if !all {
				values = values[:1]
			}

			out := cmd.OutOrStdout()
			for _, v := range values {
				fmt.Fprintln(out, v)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Print every value of a multi-valued key")
	cmd.Flags().StringVarP(&def, "default", "d", "", "Value to print when the key is not set")
	return cmd
}

func newSetCommand(ctx *commandContext) *cobra.Command {
	var appendValues bool

	cmd := &cobra.Command{
		Use:   "set FILE SECTION KEY VALUE...",
		Short: "Set the values of a key",
		Long: "Replace the values of a key, or add to them with --append.\n" +
			"The file is created when it does not exist.",
		Args: cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			d, err := ctx.load(path)
			if errors.Is(err, ini.ErrNotFound) {
				d = ini.New(ini.WithLogger(ctx.logger()))
			} else if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}

			if err := d.SetValues(args[1], args[2], args[3:], appendValues); err != nil {
				return err
			}
			if err := d.Save(path); err != nil {
				return fmt.Errorf("save %s: %w", path, err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&appendValues, "append", false, "Append to the existing values instead of replacing them")
	return cmd
}

func newUnsetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unset FILE SECTION [KEY]",
		Short: "Remove a key, or a whole section",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			d, err := ctx.load(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}

			if len(args) == 3 {
				if !d.RemoveKey(args[1], args[2]) {
					return fmt.Errorf("%s.%s is not set", args[1], args[2])
				}
			} else if !d.RemoveSection(args[1]) {
				return fmt.Errorf("section %q does not exist", args[1])
			}

			if err := d.Save(path); err != nil {
				return fmt.Errorf("save %s: %w", path, err)
			}
			return nil
		},
	}
}

var listColumns = []column{
	{"Section", text.AlignLeft},
	{"Key", text.AlignLeft},
	{"Count", text.AlignRight},
	{"Values", text.AlignLeft},
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE [SECTION]",
		Short: "Show the sections and keys of a file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := ctx.load(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			sections := d.Sections()
			if len(args) == 2 {
				if !d.HasSection(args[1]) {
					return fmt.Errorf("section %q does not exist", args[1])
				}
				sections = []string{args[1]}
			}

			rows := make([][]string, 0)
			for _, name := range sections {
				s := d.Section(name)
				if s.Len() == 0 {
					rows = append(rows, []string{name, "", "0", ""})
					continue
				}
				for _, key := range s.Keys() {
					values := s.Values(key)
					rows = append(rows, []string{name, key, strconv.Itoa(len(values)), strings.Join(values, ", ")})
				}
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No settings")
				return nil
			}
			fmt.Fprintln(out, renderTable(listColumns, rows))
			return nil
		},
	}
}
