package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/bobmcallan/abacus/internal/models"
)

func (c *cli) listCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List calculators",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := models.Category(category)
			if cat != "" && !slices.Contains(models.Categories(), cat) {
				return fmt.Errorf("unknown category %q (want one of %v)", category, models.Categories())
			}
			defs := c.app.Registry.Definitions(cat)
			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), defs)
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Name", "Title", "Category", "Parameters"})
			for _, d := range defs {
				t.AppendRow(table.Row{d.Name, d.Title, d.Category, paramSummary(d.Params)})
			}
			t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d calculators", len(defs))})
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category")
	return cmd
}

func (c *cli) describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <calculator>",
		Short: "Show a calculator's parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, ok := c.app.Registry.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown calculator %q", args[0])
			}
			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), calc)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n%s\n", calc.Title, calc.Category, calc.Description)
			if calc.Formula != "" {
				fmt.Fprintf(out, "Formula: %s\n", calc.Formula)
			}

			t := newTable(out)
			t.AppendHeader(table.Row{"Parameter", "Type", "Required", "Default", "Description"})
			for _, p := range calc.Params {
				desc := p.Description
				if len(p.Enum) > 0 {
					desc += " [" + strings.Join(p.Enum, "|") + "]"
				}
				def := ""
				if p.Default != nil {
					def = fmt.Sprint(p.Default)
				}
				t.AppendRow(table.Row{p.Name, p.Type, yesNo(p.Required), def, desc})
			}
			t.Render()
			return nil
		},
	}
}

// paramSummary lists parameter names, required ones starred.
func paramSummary(params []models.ParamDefinition) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
		if p.Required {
			names[i] += "*"
		}
	}
	return strings.Join(names, " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
