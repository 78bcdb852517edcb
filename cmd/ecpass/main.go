package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"ecpass/adapters/noise"
	"ecpass/adapters/observer"
	"ecpass/adapters/securefile"
	"ecpass/app"
	"ecpass/domain/core"
	"ecpass/domain/formula"
	"ecpass/internal"
	"ecpass/internal/config"
	apperrors "ecpass/internal/errors"
	"ecpass/internal/quality"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Exit codes
const (
	exitUsage          = 1
	exitUnknownFormula = 2
	exitGeneration     = 3
	exitWrite          = 4
)

func main() {
	// A missing .env is fine; the environment alone is enough
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ecpass:", err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ecpass",
		Short:         "Deterministic password strengthener driven by a chaotic formula",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newGenerateCmd(),
		newAnalyzeCmd(),
		newNoiseCmd(),
		newFormulasCmd(),
	)

	return rootCmd
}

// exitCode maps an error to the process status. Flag and argument errors
// from cobra carry no code and count as usage errors. Unknown formulas are
// input errors too but keep their own status, so that case comes first.
func exitCode(err error) int {
	switch code := apperrors.GetCode(err); {
	case code == apperrors.CodeUnknownFormula:
		return exitUnknownFormula
	case code == apperrors.CodeWriteFailed:
		return exitWrite
	case core.IsInputError(err), code == apperrors.CodeConfigInvalid, apperrors.IsClientError(code):
		return exitUsage
	case apperrors.IsAppError(err):
		return exitGeneration
	}
	return exitUsage
}

// input holds the flags shared by generate and analyze
type input struct {
	memorable string
	stdin     bool
	length    int
	formula   string
	debug     bool
}

func (in *input) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.memorable, "memorable", "m", "", "Memorable input text")
	cmd.Flags().BoolVar(&in.stdin, "stdin", false, "Read the memorable text from standard input")
	cmd.Flags().IntVarP(&in.length, "length", "l", 0, "Password length (default EC_DEFAULT_LENGTH)")
	cmd.Flags().StringVar(&in.formula, "formula", "", "Formula name (default EC_FORMULA)")
	cmd.Flags().BoolVar(&in.debug, "debug", false, "Log pipeline stages to stderr")
	cmd.MarkFlagsMutuallyExclusive("memorable", "stdin")
}

// setup loads configuration and builds the service for the selected formula.
// The returned name is the formula actually used.
func (in *input) setup(cmd *cobra.Command) (*config.Config, *app.PasswordService, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, "", err
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel), cmd.ErrOrStderr())
	if in.debug {
		logger.SetLevel(internal.LogLevelDebug)
	}

	name := in.formula
	if name == "" {
		name = cfg.Generator.Formula
	}
	svc, err := app.NewPasswordServiceForFormula(name, observer.NewLogObserver(logger))
	if err != nil {
		return nil, nil, "", apperrors.FromDomain(err)
	}
	return cfg, svc, name, nil
}

// request reads the memorable text and applies the configured input policy
func (in *input) request(cmd *cobra.Command, cfg *config.Config) (string, int, error) {
	memorable, err := in.read(cmd)
	if err != nil {
		return "", 0, err
	}
	var length *int
	if cmd.Flags().Changed("length") {
		length = &in.length
	}
	n, err := cfg.Generator.ResolveRequest(memorable, length)
	if err != nil {
		return "", 0, err
	}
	return memorable, n, nil
}

// read returns the memorable text from the flag or standard input.
// A single trailing line break from stdin is not part of the text.
func (in *input) read(cmd *cobra.Command) (string, error) {
	if !in.stdin {
		if !cmd.Flags().Changed("memorable") {
			return "", apperrors.InvalidInput("one of --memorable or --stdin is required")
		}
		return in.memorable, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", apperrors.Wrap(err, "failed to read standard input")
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}

func newGenerateCmd() *cobra.Command {
	var in input
	var outFile string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a strong password from memorable text",
		Long: `Generate a password deterministically from memorable text.

The same text, length and formula always produce the same password.

Example: ecpass generate -m myweakpass -l 32 -o secret.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, _, err := in.setup(cmd)
			if err != nil {
				return err
			}
			memorable, length, err := in.request(cmd, cfg)
			if err != nil {
				return err
			}

			pw, err := svc.GeneratePassword(memorable, length)
			if err != nil {
				return apperrors.FromDomain(err)
			}

			if outFile != "" {
				if err := securefile.WritePassword(outFile, pw, cfg.Output.FileMode); err != nil {
					return apperrors.WriteFailed(outFile, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d-character password to %s (fingerprint %s)\n",
					len(pw), outFile, core.Fingerprint(pw).Short())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), pw)
			return nil
		},
	}

	in.bind(cmd)
	cmd.Flags().StringVarP(&outFile, "out-file", "o", "", "Write the password to this file (mode EC_OUTPUT_MODE)")

	return cmd
}

type analyzeOutput struct {
	Formula     string         `json:"formula"`
	Fingerprint string         `json:"fingerprint"`
	Password    string         `json:"password,omitempty"`
	Report      quality.Report `json:"report"`
}

func newAnalyzeCmd() *cobra.Command {
	var in input
	var show bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print a JSON quality report for a generated password",
		Long: `Run the pipeline and report on the uniform stream and the password.

The password itself is only printed with --show.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, name, err := in.setup(cmd)
			if err != nil {
				return err
			}
			memorable, length, err := in.request(cmd, cfg)
			if err != nil {
				return err
			}

			res, err := svc.Generate(memorable, length)
			if err != nil {
				return apperrors.FromDomain(err)
			}

			out := analyzeOutput{
				Formula:     name,
				Fingerprint: core.Fingerprint(res.Password).String(),
				Report:      quality.Analyze(res),
			}
			if show {
				out.Password = res.Password
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	in.bind(cmd)
	cmd.Flags().BoolVar(&show, "show", false, "Include the password in the report")

	return cmd
}

func newNoiseCmd() *cobra.Command {
	var count int
	var outPath string
	var format string

	cmd := &cobra.Command{
		Use:   "noise",
		Short: "Write random samples in (0,1) for formula search",
		Long: `Write non-reproducible random samples for use as a target series when
searching for new chaotic formulas.

Example: ecpass noise --count 50 --out noise.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return apperrors.InvalidInput("--count must be positive")
			}
			f := noise.FormatForPath(outPath)
			if format != "" {
				parsed, err := noise.ParseFormat(format)
				if err != nil {
					return apperrors.InvalidInput(err.Error())
				}
				f = parsed
			}

			if err := noise.NewWriter(nil).WriteFile(outPath, count, f); err != nil {
				return apperrors.WriteFailed(outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d %s samples to %s\n", count, f, outPath)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", noise.DefaultCount, "Number of samples")
	cmd.Flags().StringVar(&outPath, "out", "noise.txt", "Output file")
	cmd.Flags().StringVar(&format, "format", "", "lines, xy or xlsx (default inferred from --out)")

	return cmd
}

func newFormulasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formulas",
		Short: "List registered formulas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			for _, f := range formula.All() {
				marker := " "
				if f.Name == cfg.Generator.Formula {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-14s %s\n", marker, f.Name, f.Description)
			}
			return nil
		},
	}
}
