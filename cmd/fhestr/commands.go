package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var flagInputs inputs

func addInputFlags(cmd *cobra.Command, in *inputs) {
	f := cmd.Flags()
	f.StringVar(&in.Str, "str", "", "subject string")
	f.IntVar(&in.StrPad, "str-pad", 0, "trailing padding of the subject")
	f.StringVar(&in.Pat, "pat", "", "pattern string")
	f.IntVar(&in.PatPad, "pat-pad", 0, "trailing padding of the pattern")
	f.BoolVar(&in.ClearPat, "clear-pat", false, "pass pattern, replacement and right operand in the clear")
	f.StringVar(&in.To, "to", "", "replacement string")
	f.IntVar(&in.ToPad, "to-pad", 0, "trailing padding of the replacement")
	f.StringVar(&in.Rhs, "rhs", "", "right operand of comparisons and concat")
	f.IntVar(&in.RhsPad, "rhs-pad", 0, "trailing padding of the right operand")
	f.IntVar(&in.N, "n", 0, "count for repeat, replacen, splitn and rsplitn")
	f.IntVar(&in.Max, "max", 0, "public bound of an encrypted count")
	f.BoolVar(&in.EncN, "enc-n", false, "encrypt the count")
}

var runCmd = &cobra.Command{
	Use:   "run <op>",
	Short: "Run one operation",
	Example: `  fhestr run split --str aXbXXc --str-pad 2 --pat X
  fhestr run repeat --str ab --n 3 --enc-n --max 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := flagInputs
		in.Op = args[0]
		return runInputs([]inputs{in})
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every operation on the same inputs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		batch := make([]inputs, 0, len(ops))
		for _, name := range opNames() {
			in := flagInputs
			in.Op = name
			batch = append(batch, in)
		}
		return runInputs(batch)
	},
}

var vectorsCmd = &cobra.Command{
	Use:   "vectors <file.yaml>",
	Short: "Run the operations listed in a YAML file",
	Long: `vectors reads a YAML sequence of operations, for example

  - op: replace
    str: aXbXXc
    pat: X
    to: "-"
    str_pad: 2
  - op: repeat
    str: ab
    n: 3
    enc_n: true
    max: 5

and runs each one. Missing fields default to empty strings, zero padding
and a clear count of zero.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		batch, err := loadVectors(args[0])
		if err != nil {
			return err
		}
		return runInputs(batch)
	},
}

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the supported operations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(opNames(), "\n"))
	},
}

func init() {
	addInputFlags(runCmd, &flagInputs)
	addInputFlags(allCmd, &flagInputs)
}

func loadVectors(path string) ([]inputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vectors: %w", err)
	}
	var batch []inputs
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for i, in := range batch {
		if _, ok := ops[in.Op]; !ok {
			return nil, fmt.Errorf("vector %d: unknown operation %q", i, in.Op)
		}
	}
	return batch, nil
}

func runInputs(batch []inputs) error {
	x, err := newSession()
	if err != nil {
		return err
	}
	logger.Info("running operations",
		zap.String("backend", backendName),
		zap.Int("count", len(batch)),
	)

	results := make([]result, 0, len(batch))
	for i := range batch {
		results = append(results, x.execute(&batch[i]))
	}
	if failed := printResults(os.Stdout, results); failed > 0 {
		return fmt.Errorf("%d of %d operations did not match the reference", failed, len(results))
	}
	return nil
}
