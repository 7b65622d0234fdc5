// Command chtlc compiles CHTL sources into standalone HTML documents.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	chtl "github.com/dpotapov/go-chtl"
	"github.com/dpotapov/go-chtl/internal/config"
)

var (
	flagConfig string
	flagDebug  bool
)

func main() {
	root := &cobra.Command{
		Use:   "chtlc",
		Short: "CHTL to HTML compiler",
		Long: `chtlc translates CHTL template sources into standalone HTML documents
with the generated CSS and JavaScript spliced in.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default chtlc.yaml)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable classification and token tracing")

	root.AddCommand(newCompileCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "chtlc:", err)
		os.Exit(1)
	}
}

func loadCompiler() (*chtl.Compiler, *config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	if flagDebug {
		cfg.Debug = true
	}

	c := &chtl.Compiler{
		ModulePaths: cfg.ModulePaths,
		Debug:       cfg.Debug,
	}
	if cfg.Debug {
		c.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return c, cfg, nil
}

func newCompileCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compile <input.chtl>",
		Short: "Compile a CHTL file to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := loadCompiler()
			if err != nil {
				return err
			}

			in := args[0]
			out := output
			if out == "" {
				base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
				out = filepath.Join(cfg.Output.Dir, base+".html")
			}

			diags, err := c.CompileToFile(in, out)
			chtl.PrintDiagnostics(os.Stderr, diags)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")
	return cmd
}

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <input.chtl>",
		Short: "Serve a CHTL file with watch and livereload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := loadCompiler()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Serve.Addr
			}

			srv := &chtl.DevServer{
				Source:   args[0],
				Compiler: c,
				Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelInfo,
				})),
			}
			return srv.ListenAndServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address")
	return cmd
}
