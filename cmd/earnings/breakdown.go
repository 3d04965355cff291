package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DheemanKumar/lead-manager/internal/application/dto"
)

//nolint:gochecknoglobals // Cobra boilerplate
var breakdownCmd = &cobra.Command{
	Use:   "breakdown <email>",
	Short: "Desglose de ganancias de un empleado (recalcula y persiste)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			out, err := e.earnings.BreakdownByEmail(ctx, args[0])
			if err != nil {
				return err
			}
			return printBreakdown(cmd.OutOrStdout(), out)
		})
	},
}

func printBreakdown(w io.Writer, b *dto.EarningBreakdownResponse) error {
	if jsonOutput {
		return writeJSON(w, b)
	}
	fmt.Fprintf(w, "%s <%s> %s\n\n", b.Name, b.Email, b.EmployeeID)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEAD\tCANDIDATO\tESTADO\tELEGIBLE\tDUPLICADO\tCRÉDITOS")
	for _, l := range b.Leads {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%t\t%d\n", l.LeadID, l.Name, l.Status, l.IsEligible, l.IsDuplicate, l.Credits)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTotal: %d  Contratados: %d  Bono: %d  Final: %d  Pago: %s\n",
		b.Total, b.JoinedCount, b.Bonus, b.Final, b.Payout.StringFixed(2))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
