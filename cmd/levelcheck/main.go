// Command levelcheck validates level files and walks every pod to make sure
// its goal can be reached.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/milk9111/podescape/common"
	"github.com/milk9111/podescape/prefabs"
)

var errLevelIssues = errors.New("levelcheck: level has issues")

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		showMap  bool
		logLevel string
	)
	cmd := &cobra.Command{
		Use:          "levelcheck [level.yaml...]",
		Short:        "Validate podescape levels",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := common.NewLogger(cmd.ErrOrStderr(), logLevel)
			if len(args) == 0 {
				args = []string{prefabs.DefaultLevel}
			}
			failed := 0
			for _, path := range args {
				if !checkLevel(out, log, path, showMap) {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errLevelIssues, failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showMap, "map", false, "print every pod with its shortest route")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	return cmd
}

// checkLevel reports whether the level at path loads and every pod can be
// won.
func checkLevel(out io.Writer, log zerolog.Logger, path string, showMap bool) bool {
	if dir := filepath.Dir(path); dir != "." {
		prefabs.Dir = dir
	}
	name := filepath.Base(path)
	log = log.With().Str("level", path).Logger()

	spec, err := prefabs.LoadLevelSpec(name)
	if err != nil {
		log.Error().Err(err).Msg("load level")
		return false
	}
	if err := checkScript(spec.ReactionScript); err != nil {
		log.Error().Err(err).Str("script", spec.ReactionScript).Msg("reaction script")
		return false
	}

	ok := true
	for i, pod := range spec.Pods {
		report := solvePod(pod, spec.Tuning)
		if !report.Solvable {
			log.Error().Int("pod", i).Msg("goal cannot be reached from the start")
			ok = false
		} else {
			log.Info().Int("pod", i).Int("steps", report.Steps).Msg("pod solvable")
		}
		if showMap {
			fmt.Fprintf(out, "%s pod %d\n%s\n", spec.Name, i, drawPod(pod, spec.Tuning, report.Path))
		}
	}
	return ok
}

// checkScript compiles and runs the reaction script once and makes sure it
// defines react.
func checkScript(name string) error {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return err
	}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := script.Run()
	if err != nil {
		return fmt.Errorf("levelcheck: %s: %w", name, err)
	}
	if _, ok := compiled.Get("react").Object().(*tengo.CompiledFunction); !ok {
		return fmt.Errorf("levelcheck: %s: react is not defined as a function", name)
	}
	return nil
}
