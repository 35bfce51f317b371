// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/navwar/gomirror/pkg/fs"
	"github.com/navwar/gomirror/pkg/lfs"
	"github.com/navwar/gomirror/pkg/log"
	"github.com/navwar/gomirror/pkg/scheduler"
	"github.com/navwar/gomirror/pkg/ts"
)

const (
	GoMirrorVersion = "0.0.1"
)

const (
	usage = "Usage: gomirror SOURCE REPLICA INTERVAL LOG_PATH"
)

var (
	errUsage = errors.New(usage)
)

// Debug Flag
const (
	flagDebug = "debug"
)

// Mirror Flags
const (
	flagHash = "hash"
	flagOnce = "once"
)

// Time Flags
const (
	flagTimeLayout = "time-layout"
	flagTimeZone   = "time-zone"
)

// Log Flags
const (
	flagLogFormat = "log-format"
	flagLogPerm   = "log-perm"
)

// Defaults
const (
	DefaultLogFormat  = log.FormatText
	DefaultLogPerm    = "0600"
	DefaultTimeLayout = "Default"
	DefaultTimeZone   = "Local"
)

func initDebugFlags(flag *pflag.FlagSet) {
	flag.BoolP(flagDebug, "d", false, "print debug messages")
}

func initHashFlags(flag *pflag.FlagSet) {
	flag.String(flagHash, fs.DefaultHash.String(), "the digest used to compare file contents.  One of md5, sha1, sha256, or blake2b.")
}

func initMirrorFlags(flag *pflag.FlagSet) {
	flag.Bool(flagOnce, false, "run a single synchronization pass and exit")
}

func initTimeFlags(flag *pflag.FlagSet) {
	flag.StringP(flagTimeLayout, "t", DefaultTimeLayout, "the layout to use for log timestamps.  Use go layout format, or the name of a layout.  Use gomirror layouts to show all named layouts.")
	flag.StringP(flagTimeZone, "z", DefaultTimeZone, "the timezone to use for log timestamps")
}

func initLogFormatFlags(flag *pflag.FlagSet) {
	flag.StringP(flagLogFormat, "f", DefaultLogFormat, "output log format.  Either jsonl or text.")
}

func initLogPermFlags(flag *pflag.FlagSet) {
	flag.String(flagLogPerm, DefaultLogPerm, "file permissions for log output file as unix file mode.")
}

func initRootCommandFlags(flag *pflag.FlagSet) {
	initDebugFlags(flag)
	initHashFlags(flag)
	initMirrorFlags(flag)
	initTimeFlags(flag)
	initLogFormatFlags(flag)
	initLogPermFlags(flag)
}

func initPlanCommandFlags(flag *pflag.FlagSet) {
	initDebugFlags(flag)
	initHashFlags(flag)
	initTimeFlags(flag)
	initLogFormatFlags(flag)
}

func initViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	err := v.BindPFlags(cmd.Flags())
	if err != nil {
		return v, fmt.Errorf("error binding flag set to viper: %w", err)
	}
	v.SetEnvPrefix("GOMIRROR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // set environment variables to overwrite config
	return v, nil
}

func checkHashConfig(v *viper.Viper) error {
	if _, err := fs.ParseHashType(v.GetString(flagHash)); err != nil {
		return fmt.Errorf("invalid value for %q: %w", flagHash, err)
	}
	return nil
}

func checkTimeConfig(v *viper.Viper) error {
	if _, err := ts.ParseLocation(v.GetString(flagTimeZone)); err != nil {
		return fmt.Errorf("invalid value for %q: %w", flagTimeZone, err)
	}
	return nil
}

func checkLogConfig(v *viper.Viper) error {
	logFormat := v.GetString(flagLogFormat)
	if logFormat != log.FormatText && logFormat != log.FormatJSONL {
		return fmt.Errorf("invalid value for %q: expecting one of %q or %q, found %q", flagLogFormat, log.FormatText, log.FormatJSONL, logFormat)
	}
	return nil
}

func checkLogPermConfig(v *viper.Viper) error {
	logPerm := v.GetString(flagLogPerm)
	if len(logPerm) == 0 {
		return fmt.Errorf("log perm is missing")
	}
	_, err := strconv.ParseUint(logPerm, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid format for log perm: %s", logPerm)
	}
	return nil
}

func checkMirrorConfig(v *viper.Viper, args []string) error {
	if len(args) != 4 {
		return errUsage
	}
	if _, err := parseInterval(args[2]); err != nil {
		return err
	}
	if err := checkHashConfig(v); err != nil {
		return err
	}
	if err := checkTimeConfig(v); err != nil {
		return fmt.Errorf("error with time configuration: %w", err)
	}
	if err := checkLogConfig(v); err != nil {
		return fmt.Errorf("error with log configuration: %w", err)
	}
	if err := checkLogPermConfig(v); err != nil {
		return fmt.Errorf("error with log configuration: %w", err)
	}
	return nil
}

func checkPlanConfig(v *viper.Viper, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expecting 2 positional arguments for source and replica, but found %d arguments", len(args))
	}
	if err := checkHashConfig(v); err != nil {
		return err
	}
	if err := checkTimeConfig(v); err != nil {
		return fmt.Errorf("error with time configuration: %w", err)
	}
	if err := checkLogConfig(v); err != nil {
		return fmt.Errorf("error with log configuration: %w", err)
	}
	return nil
}

// parseInterval parses a positive whole number of seconds.
func parseInterval(str string) (time.Duration, error) {
	seconds, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q: expecting a whole number of seconds", str)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("invalid interval %q: expecting a positive number of seconds", str)
	}
	if int64(seconds) > math.MaxInt64/int64(time.Second) {
		return 0, fmt.Errorf("invalid interval %q: expecting at most %d seconds", str, math.MaxInt64/int64(time.Second))
	}
	return time.Duration(seconds) * time.Second, nil
}

// resolvePath expands a leading "~" and returns the absolute path.
func resolvePath(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("error expanding path %q: %w", p, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("error resolving absolute path for %q: %w", p, err)
	}
	return abs, nil
}

func initLoggerOptions(v *viper.Viper) ([]log.Option, error) {
	layout := ts.ParseLayout(v.GetString(flagTimeLayout))
	location, err := ts.ParseLocation(v.GetString(flagTimeZone))
	if err != nil {
		return nil, fmt.Errorf("error parsing time zone: %w", err)
	}
	formatter, err := log.NewFormatter(v.GetString(flagLogFormat), layout)
	if err != nil {
		return nil, fmt.Errorf("error creating log formatter: %w", err)
	}
	return []log.Option{
		log.WithFormatter(formatter),
		log.WithLocation(location),
	}, nil
}

// initLogger returns a logger writing to stdout and, unless path is "-", to the file at path.
// The returned closer is nil when no file was opened.
func initLogger(path string, perm string, stdout io.Writer, options ...log.Option) (*log.SimpleLogger, io.Closer, error) {

	if path == "-" {
		return log.NewSimpleLogger(stdout, options...), nil, nil
	}

	fileMode := os.FileMode(0600)

	if len(perm) > 0 {
		fm, err := strconv.ParseUint(perm, 8, 32)
		if err != nil {
			return nil, nil, fmt.Errorf("error parsing file permissions for log file from %q", perm)
		}
		fileMode = os.FileMode(fm)
	}

	parent := lfs.Dir(path)
	fi, err := os.Stat(parent)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening log file %q: parent directory %q: %w", path, parent, err)
	}
	if !fi.IsDir() {
		return nil, nil, fmt.Errorf("error opening log file %q: parent %q is not a directory", path, parent)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening log file %q: %w", path, err)
	}

	return log.NewSimpleLogger(io.MultiWriter(stdout, f), options...), f, nil
}

// run calls f with a context that is cancelled when the process receives SIGINT or SIGTERM.
// The signals are intercepted for as long as f runs.
func run(ctx context.Context, logger fs.Logger, debug bool, f func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return f(gctx)
	})

	g.Go(func() error {
		select {
		case sig := <-signals:
			defer cancel()
			if debug {
				if err := logger.Log("Received signal", map[string]interface{}{"signal": sig.String()}); err != nil {
					return fmt.Errorf("error writing log: %w", err)
				}
			}
		case <-gctx.Done():
		}
		return nil
	})

	return g.Wait()
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:                   "gomirror [flags] SOURCE REPLICA INTERVAL LOG_PATH",
		DisableFlagsInUseLine: true,
		Short:                 "gomirror periodically mirrors a source directory into a replica directory.",
		Long: strings.Join([]string{
			"gomirror periodically mirrors a source directory into a replica directory.",
			"Every INTERVAL seconds the replica is made an exact copy of the source.",
			"Every action is logged to stdout and appended to the file at LOG_PATH.",
			"Use \"-\" as LOG_PATH to log only to stdout.",
		}, "\n"),
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			if errConfig := checkMirrorConfig(v, args); errConfig != nil {
				return errConfig
			}

			debug := v.GetBool(flagDebug)

			source, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			replica, err := resolvePath(args[1])
			if err != nil {
				return err
			}

			if err := lfs.Check(source, replica); err != nil {
				return err
			}

			interval, err := parseInterval(args[2])
			if err != nil {
				return err
			}

			hash, err := fs.ParseHashType(v.GetString(flagHash))
			if err != nil {
				return err
			}

			logPath := args[3]
			if logPath != "-" {
				logPath, err = resolvePath(logPath)
				if err != nil {
					return err
				}
			}

			options, err := initLoggerOptions(v)
			if err != nil {
				return err
			}

			logger, closer, err := initLogger(logPath, v.GetString(flagLogPerm), cmd.OutOrStdout(), options...)
			if err != nil {
				return fmt.Errorf("error initializing logger: %w", err)
			}
			if closer != nil {
				defer func() {
					_ = closer.Close() // silently close log file
				}()
			}

			s, err := scheduler.New(&scheduler.Config{
				Debug:             debug,
				Hash:              hash,
				Interval:          interval,
				Logger:            logger,
				Replica:           replica,
				ReplicaFileSystem: lfs.NewOsFileSystem(),
				Source:            source,
				SourceFileSystem:  lfs.NewReadOnlyOsFileSystem(),
			})
			if err != nil {
				return fmt.Errorf("error creating scheduler: %w", err)
			}

			if debug {
				err := logger.Log("Configuration", map[string]interface{}{
					"source":   source,
					"replica":  replica,
					"interval": interval.String(),
					"hash":     hash.String(),
					"log_path": logPath,
					"once":     v.GetBool(flagOnce),
				})
				if err != nil {
					return fmt.Errorf("error writing log: %w", err)
				}
			}

			if v.GetBool(flagOnce) {
				return run(cmd.Context(), logger, debug, func(ctx context.Context) error {
					_, err := s.Pass(ctx)
					return err
				})
			}

			return run(cmd.Context(), logger, debug, s.Run)
		},
	}
	initRootCommandFlags(rootCommand.Flags())

	layoutsCommand := &cobra.Command{
		Use:                   "layouts",
		DisableFlagsInUseLine: true,
		Short:                 "show supported timestamp layouts",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range ts.LayoutNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, ts.NamedLayouts[name])
			}
			return nil
		},
	}

	planCommand := &cobra.Command{
		Use:                   "plan SOURCE REPLICA",
		DisableFlagsInUseLine: true,
		Short:                 "plan",
		Long:                  "show the actions a single pass would take without changing the replica",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			if errConfig := checkPlanConfig(v, args); errConfig != nil {
				return errConfig
			}

			source, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			replica, err := resolvePath(args[1])
			if err != nil {
				return err
			}

			if err := lfs.Check(source, replica); err != nil {
				return err
			}

			hash, err := fs.ParseHashType(v.GetString(flagHash))
			if err != nil {
				return err
			}

			options, err := initLoggerOptions(v)
			if err != nil {
				return err
			}

			logger := log.NewSimpleLogger(cmd.OutOrStdout(), options...)

			// the replica is opened read-only as nothing is written during a dry run
			output, err := fs.Sync(cmd.Context(), &fs.SyncInput{
				DryRun:            true,
				Hash:              hash,
				Logger:            logger,
				Source:            source,
				SourceFileSystem:  lfs.NewReadOnlyOsFileSystem(),
				Replica:           replica,
				ReplicaFileSystem: lfs.NewReadOnlyOsFileSystem(),
			})
			if err != nil {
				return fmt.Errorf("error planning synchronization: %w", err)
			}

			if v.GetBool(flagDebug) {
				if err := logger.Log("Done planning", output.Fields()); err != nil {
					return fmt.Errorf("error writing log: %w", err)
				}
			}

			fmt.Fprintf(
				cmd.OutOrStdout(),
				"%d file(s) to copy (%s), %d file(s) to delete, %d director(ies) to create, %d director(ies) to delete\n",
				output.FilesCopied,
				humanize.Bytes(uint64(output.BytesCopied)),
				output.FilesDeleted,
				output.DirectoriesCreated,
				output.DirectoriesDeleted)

			return nil
		},
	}
	initPlanCommandFlags(planCommand.Flags())

	versionCommand := &cobra.Command{
		Use:                   "version",
		DisableFlagsInUseLine: true,
		Short:                 "show version",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), GoMirrorVersion)
			return nil
		},
	}

	rootCommand.AddCommand(layoutsCommand, planCommand, versionCommand)

	return rootCommand
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "gomirror: "+err.Error())
		fmt.Fprintln(os.Stderr, "Try \"gomirror --help\" for more information.")
		os.Exit(1)
	}
}
