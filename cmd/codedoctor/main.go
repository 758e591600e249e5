// Command codedoctor analyzes a repository and writes a markdown document
// describing its architecture, patterns, and dependencies, then answers
// follow-up questions against that document.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"codedoctor/internal/config"
	"codedoctor/internal/doctor"
	"codedoctor/internal/llmclient"
	"codedoctor/internal/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	provider string
	model    string
	apiKey   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "codedoctor",
		Short:         "Analyze a codebase and answer questions about it",
		Long:          "codedoctor scans a repository, extracts its structure and code patterns,\nand asks an AI model for an architecture analysis. The result is a markdown\ndocument that later questions are answered against.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.provider, "provider", "", "model provider (anthropic or gemini)")
	cmd.PersistentFlags().StringVar(&flags.model, "model", "", "model identifier")
	cmd.PersistentFlags().StringVar(&flags.apiKey, "api-key", "", "API key (overrides environment)")

	cmd.AddCommand(newAnalyzeCmd(flags))
	cmd.AddCommand(newAskCmd(flags))
	cmd.AddCommand(newInteractiveCmd(flags))
	return cmd
}

// loadConfig resolves configuration, folds in the global flags, and checks
// the API-key precondition. Every subcommand makes a model call, so the
// check lives here.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flags.provider != "" {
		cfg.Provider = strings.ToLower(flags.provider)
		switch cfg.Provider {
		case config.ProviderAnthropic:
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.APIKey == "" {
				cfg.APIKey = os.Getenv("CLAUDE_API_KEY")
			}
		case config.ProviderGemini:
			cfg.APIKey = os.Getenv("GEMINI_API_KEY")
			if cfg.Model == config.DefaultModel {
				cfg.Model = config.DefaultGeminiModel
			}
		default:
			return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
		}
	}
	if flags.model != "" {
		cfg.Model = flags.model
	}
	if flags.apiKey != "" {
		cfg.APIKey = flags.apiKey
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newClient(cmd *cobra.Command, cfg *config.Config) (llmclient.Client, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return llmclient.NewAnthropicClient(cfg.APIKey)
	case config.ProviderGemini:
		return llmclient.NewGeminiClient(cmd.Context(), cfg.APIKey)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func newAnalyzeCmd(flags *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a repository and write the analysis document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.Output
			}

			cli, err := newClient(cmd, cfg)
			if err != nil {
				return err
			}
			defer cli.Close()

			d, err := doctor.New(root, cli, cfg)
			if err != nil {
				return err
			}
			doc, err := d.Analyze(cmd.Context())
			if err != nil {
				return err
			}
			if err := report.WriteFile(output, doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Analysis written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default "+config.DefaultOutput+")")
	return cmd
}

func newAskCmd(flags *rootFlags) *cobra.Command {
	var docPath string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question against an existing analysis document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			cli, err := newClient(cmd, cfg)
			if err != nil {
				return err
			}
			defer cli.Close()

			answer, err := doctor.Ask(cmd.Context(), cli, cfg, docPath, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	cmd.Flags().StringVarP(&docPath, "doc", "d", config.DefaultOutput, "analysis document to answer from")
	return cmd
}

func newInteractiveCmd(flags *rootFlags) *cobra.Command {
	var docPath string

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Answer questions in a loop against an existing analysis document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			cli, err := newClient(cmd, cfg)
			if err != nil {
				return err
			}
			defer cli.Close()

			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for {
				fmt.Fprint(out, "\nAsk a question about the codebase (or 'exit' to quit): ")
				if !scanner.Scan() {
					break
				}
				question := strings.TrimSpace(scanner.Text())
				if question == "" {
					continue
				}
				if question == "exit" || question == "quit" {
					break
				}
				answer, err := doctor.Ask(cmd.Context(), cli, cfg, docPath, question)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\n%s\n", answer)
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVarP(&docPath, "doc", "d", config.DefaultOutput, "analysis document to answer from")
	return cmd
}
