package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

const (
	trainingDataSet = "data/train.csv"
	testDataSet     = "data/test.csv"
)

// config holds everything one run needs. The defaults reproduce the fixed
// paths and constants of the program.
type config struct {
	TrainPath string
	TestPath  string
	Options   Options
	// Marks is the feature value of the ad hoc prediction.
	Marks float64

	Describe bool
	Baseline bool
	Curve    bool
	PlotPath string
}

func defaultConfig() config {
	return config{
		TrainPath: trainingDataSet,
		TestPath:  testDataSet,
		Options:   DefaultOptions(),
		Marks:     20.0,
	}
}

func newRootCommand() *cobra.Command {
	cfg := defaultConfig()

	cmd := &cobra.Command{
		Use:   "logistic-regression",
		Short: "Multinomial logistic regression on student marks",
		Long: `Trains a multinomial logistic regression on the training CSV, evaluates it
on the test CSV with a confusion matrix, accuracy and MCC, and classifies
one ad hoc value of marks.

Both CSV files have a header line followed by rows of "marks,result", where
result 1.0 is a pass, 0.5 is a half pass and anything else is a fail.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg, cmd.OutOrStdout())
		},
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	f := cmd.Flags()
	f.StringVar(&cfg.TrainPath, "train", cfg.TrainPath, "Training CSV file")
	f.StringVar(&cfg.TestPath, "test", cfg.TestPath, "Test CSV file")
	f.IntVar(&cfg.Options.MaxIterations, "max-iter", cfg.Options.MaxIterations, "Maximum optimizer iterations")
	f.Float64Var(&cfg.Options.Alpha, "alpha", cfg.Options.Alpha, "L2 penalty on the weights")
	f.Float64Var(&cfg.Marks, "marks", cfg.Marks, "Marks of the ad hoc prediction")
	f.BoolVar(&cfg.Describe, "describe", false, "Print summary statistics of the training data")
	f.BoolVar(&cfg.Baseline, "baseline", false, "Compare with a least squares baseline")
	f.BoolVar(&cfg.Curve, "curve", false, "Print class probability curves")
	f.StringVar(&cfg.PlotPath, "plot", "", "Save class probability curves to this PNG file")

	return cmd
}
