package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/heartbeats/poet-go/pkg/poet"
	"github.com/heartbeats/poet-go/pkg/poet/telemetry"
)

var (
	runInterval time.Duration
	runRate     float64
	runPower    float64
	runStdin    bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive a POET control loop",
	Long: `Open a native POET controller and feed it one observation per interval.

Observations are synthetic by default (--rate and --power); with --stdin each
input line supplies one "tag rate power" observation, which is how an
instrumented application pipes its heartbeat data in.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().DurationVar(&runInterval, "interval", 100*time.Millisecond, "time between synthetic observations")
	runCmd.Flags().Float64Var(&runRate, "rate", 1.0, "synthetic heartbeat rate per window")
	runCmd.Flags().Float64Var(&runPower, "power", 1.0, "synthetic power draw per window")
	runCmd.Flags().BoolVar(&runStdin, "stdin", false, "read \"tag rate power\" observations from stdin")

	runCmd.Flags().Float64("goal", 0, "performance goal (heartbeat rate)")
	runCmd.Flags().Uint32("period", 20, "observations per control window")
	runCmd.Flags().Uint32("buffer-depth", 1, "observation history buffer depth")
	runCmd.Flags().String("states", "", "TOML file holding both state tables")
	runCmd.Flags().String("control", "", "control state file (id speedup cost)")
	runCmd.Flags().String("cpu", "", "cpu state file (id freq cores)")
	runCmd.Flags().String("log-file", "", "native controller log file")
	runCmd.Flags().String("listen", "", "address for the /metrics and /state server")

	viper.BindPFlag("goal", runCmd.Flags().Lookup("goal"))
	viper.BindPFlag("period", runCmd.Flags().Lookup("period"))
	viper.BindPFlag("buffer_depth", runCmd.Flags().Lookup("buffer-depth"))
	viper.BindPFlag("states_file", runCmd.Flags().Lookup("states"))
	viper.BindPFlag("control_file", runCmd.Flags().Lookup("control"))
	viper.BindPFlag("cpu_file", runCmd.Flags().Lookup("cpu"))
	viper.BindPFlag("log_file", runCmd.Flags().Lookup("log-file"))
	viper.BindPFlag("listen", runCmd.Flags().Lookup("listen"))
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}
	tables, err := cfg.loadTables()
	if err != nil {
		return err
	}

	metrics := telemetry.NewMetrics()
	status := newStatusTracker(cfg.Goal)

	state, err := poet.Open(poet.Config{
		PerformanceGoal: cfg.Goal,
		ControlStates:   tables.Control,
		CPUStates:       tables.CPU,
		Period:          cfg.Period,
		BufferDepth:     cfg.BufferDepth,
		LogFile:         cfg.LogFile,
		Observer:        metrics,
	})
	if err != nil {
		if errors.Is(err, poet.ErrNotBuilt) {
			fmt.Println("native library unavailable: rebuild with cgo and libpoet installed")
			return nil
		}
		return err
	}
	defer func() {
		if cerr := state.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "close error: %v\n", cerr)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Listen != "" {
		srv := newStatusServer(cfg.Listen, metrics, status)
		go srv.serve(ctx)
		fmt.Printf("status server on http://%s (/metrics, /state)\n", cfg.Listen)
	}

	if runStdin {
		return feedFromStdin(ctx, state, status)
	}
	return feedSynthetic(ctx, state, status)
}

func feedSynthetic(ctx context.Context, state *poet.State, status *statusTracker) error {
	ticker := time.NewTicker(runInterval)
	defer ticker.Stop()

	var tag uint64
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := state.ApplyControl(tag, runRate, runPower); err != nil {
				return err
			}
			status.record(tag, runRate, runPower)
			tag++
		}
	}
}

func feedFromStdin(ctx context.Context, state *poet.State, status *statusTracker) error {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) != 3 {
			return fmt.Errorf("bad observation %q: want \"tag rate power\"", sc.Text())
		}
		tag, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad tag %q: %w", fields[0], err)
		}
		rate, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("bad rate %q: %w", fields[1], err)
		}
		power, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("bad power %q: %w", fields[2], err)
		}
		if err := state.ApplyControl(tag, rate, power); err != nil {
			return err
		}
		status.record(tag, rate, power)
	}
	return sc.Err()
}
