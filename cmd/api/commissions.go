package main

import (
	"errors"
	"fmt"

	domain "crediasesor-backoffice/internal/domain/commission"
	"crediasesor-backoffice/internal/usecase/commission"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var commissionsCmd = &cobra.Command{
	Use:   "commissions",
	Short: "Commission maintenance.",
}

var computeFlags struct {
	period    string
	advisorID uint64
	recompute bool
}

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute (or recompute) the commissions of a period.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := computeFlags
		if f.period == "" {
			return errors.New("--periodo is required (YYYY-MM)")
		}
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		rdb := openRedis(cmd.Context(), a)
		if rdb != nil {
			defer rdb.Close()
		}
		uc := newCommissionUsecase(a, rdb)

		in := commission.ComputeInput{Period: f.period}
		if f.advisorID != 0 {
			in.AdvisorID = &f.advisorID
		}
		run := uc.Compute
		if f.recompute {
			run = uc.Recompute
		}
		res, err := run(cmd.Context(), in)
		var oe *domain.OutcomeError
		if errors.As(err, &oe) {
			a.log.Warn("nothing computed", zap.String("periodo", f.period), zap.String("tipo", string(oe.Kind)))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.File.Content)
		a.log.Info("report written", zap.String("file", res.File.Path))
		return nil
	},
}

func init() {
	fl := computeCmd.Flags()
	fl.StringVar(&computeFlags.period, "periodo", "", "period to compute, YYYY-MM")
	fl.Uint64Var(&computeFlags.advisorID, "asesor", 0, "restrict to one advisor id")
	fl.BoolVar(&computeFlags.recompute, "recompute", false, "delete the period's rows first")
	commissionsCmd.AddCommand(computeCmd)
}
