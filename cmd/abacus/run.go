package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/abacus/internal/common"
	"github.com/bobmcallan/abacus/internal/models"
)

func (c *cli) runCmd() *cobra.Command {
	var flagArgs []string
	cmd := &cobra.Command{
		Use:   "run <calculator> [name=value ...]",
		Short: "Run a calculator",
		Long: `Run a calculator. Arguments are name=value pairs, given positionally or
with --arg. Arrays take JSON or comma-separated values:

  abacus run loan principal=300000 annual_rate=6 years=30
  abacus run statistics values=2,4,4,4,5,5,7,9
  abacus run gpa --arg 'courses=[{"grade":"A","credits":4}]'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := parseArgs(append(args[1:], flagArgs...))
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), c.app.Config.Clients.ExchangeRate.GetTimeout()+5*time.Second)
			defer cancel()

			res, err := c.app.Registry.Run(ctx, args[0], raw)
			if err != nil {
				return err
			}
			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			if conv, ok := res.(*models.CurrencyConversion); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n",
					common.FormatMoney(conv.Amount, conv.From),
					common.FormatMoney(conv.Converted, conv.To))
			}
			r := &renderer{w: cmd.OutOrStdout(), maxRows: c.rows}
			r.result(res)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&flagArgs, "arg", "a", nil, "calculator argument as name=value (repeatable)")
	return cmd
}

// parseArgs splits name=value pairs. Later pairs win.
func parseArgs(pairs []string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("argument %q must be name=value", p)
		}
		out[name] = value
	}
	return out, nil
}
