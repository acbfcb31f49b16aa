// Package cmd is the Cobra command tree for the divengine CLI.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/m5lapp/divengine"
	"github.com/m5lapp/divengine/gasmix"
	"github.com/m5lapp/divengine/internal/config"
)

var (
	logLevel   string
	cfgPath    string
	cfg        config.Config
	depthM     float64
	bottomTime float64
	gfLow      float64
	gfHigh     float64
	o2Pct      float64
	hePct      float64
	model      string
	models     []string
	atDepthM   float64
)

var rootCmd = &cobra.Command{
	Use:   "divengine",
	Short: "Dive decompression planning engine",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg = config.Default()
		if cfgPath != "" {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				logrus.Fatalf("loading config: %v", err)
			}
			cfg = loaded
		}

		if f := cmd.Flags().Lookup("gf-low"); f != nil && !f.Changed {
			gfLow = cfg.GradientFactors.Low
		}
		if f := cmd.Flags().Lookup("gf-high"); f != nil && !f.Changed {
			gfHigh = cfg.GradientFactors.High
		}
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a single-level dive",
	Run: func(cmd *cobra.Command, args []string) {
		gas := gasmix.GasMix{O2: o2Pct, He: hePct, N2: 1 - o2Pct - hePct}
		params := divengine.SingleLevelParameters{
			DepthM:     depthM,
			BottomTime: bottomTime,
			Gas:        gas,
			GFLow:      gfLow,
			GFHigh:     gfHigh,
		}

		var (
			p   divengine.DiveProfile
			err error
		)
		switch model {
		case "buhlmann":
			p, err = divengine.PlanSingleLevel(params)
		case "vpmb":
			p, err = divengine.PlanVPMB(params)
		case "navy":
			p, err = divengine.PlanNavy(depthM, bottomTime, gas)
		default:
			logrus.Fatalf("unknown model %q", model)
		}
		if err != nil {
			logrus.Fatalf("planning failed: %v", err)
		}

		logrus.Infof("computed %s plan: %d stop(s), %.1f min deco, %.1f min total", model, len(p.Stops), p.TotalDecoTime, p.TotalDiveTime)
		printJSON(p)
	},
}

var ndlCmd = &cobra.Command{
	Use:   "ndl",
	Short: "Compute the no-decompression limit at a depth",
	Run: func(cmd *cobra.Command, args []string) {
		gas := gasmix.GasMix{O2: o2Pct, He: hePct, N2: 1 - o2Pct - hePct}
		params := divengine.SingleLevelParameters{Gas: gas, GFLow: gfLow, GFHigh: gfHigh}

		ndl, err := divengine.ComputeNDL(depthM, params)
		if err != nil {
			logrus.Fatalf("NDL computation failed: %v", err)
		}
		fmt.Printf("%.1f\n", ndl)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report per-compartment saturation, margin and ceiling at a depth",
	Run: func(cmd *cobra.Command, args []string) {
		gas := gasmix.GasMix{O2: o2Pct, He: hePct, N2: 1 - o2Pct - hePct}
		params := divengine.SingleLevelParameters{
			DepthM:     depthM,
			BottomTime: bottomTime,
			Gas:        gas,
			GFLow:      gfLow,
			GFHigh:     gfHigh,
		}

		var (
			p   divengine.DiveProfile
			err error
		)
		switch model {
		case "buhlmann":
			p, err = divengine.PlanSingleLevel(params)
		case "vpmb":
			p, err = divengine.PlanVPMB(params)
		case "navy":
			p, err = divengine.PlanNavy(depthM, bottomTime, gas)
		default:
			logrus.Fatalf("unknown model %q", model)
		}
		if err != nil {
			logrus.Fatalf("planning failed: %v", err)
		}

		report, err := divengine.AnalyzeAtDepth(p, atDepthM, gfHigh)
		if err != nil {
			logrus.Fatalf("analysis failed: %v", err)
		}
		printJSON(report)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare several planner models over identical parameters",
	Run: func(cmd *cobra.Command, args []string) {
		gas := gasmix.GasMix{O2: o2Pct, He: hePct, N2: 1 - o2Pct - hePct}
		params := divengine.SingleLevelParameters{
			DepthM:     depthM,
			BottomTime: bottomTime,
			Gas:        gas,
			GFLow:      gfLow,
			GFHigh:     gfHigh,
		}

		names := models
		if len(names) == 0 {
			names = cfg.CompareModels
		}

		report, err := divengine.Compare(params, names)
		if err != nil {
			logrus.Fatalf("comparison failed: %v", err)
		}
		printJSON(report)
	},
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logrus.Fatalf("encoding output: %v", err)
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to a defaults.yaml config file")

	for _, c := range []*cobra.Command{planCmd, ndlCmd, analyzeCmd, compareCmd} {
		c.Flags().Float64Var(&depthM, "depth", 30, "Depth in metres")
		c.Flags().Float64Var(&bottomTime, "bottom-time", 20, "Bottom time in minutes")
		c.Flags().Float64Var(&gfLow, "gf-low", 30, "Low gradient factor")
		c.Flags().Float64Var(&gfHigh, "gf-high", 85, "High gradient factor")
		c.Flags().Float64Var(&o2Pct, "o2", 0.21, "Fraction of O2 in the breathing gas")
		c.Flags().Float64Var(&hePct, "he", 0, "Fraction of He in the breathing gas")
	}
	planCmd.Flags().StringVar(&model, "model", "buhlmann", "Planner model (buhlmann, vpmb, navy)")
	analyzeCmd.Flags().StringVar(&model, "model", "buhlmann", "Planner model (buhlmann, vpmb, navy)")
	analyzeCmd.Flags().Float64Var(&atDepthM, "at-depth", 0, "Depth in metres to report tissue state at, 0 for surface")
	compareCmd.Flags().StringSliceVar(&models, "models", nil, "Models to compare (defaults to the config's compare_models)")

	rootCmd.AddCommand(planCmd, ndlCmd, analyzeCmd, compareCmd)
}
