// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianAnnotate/pkg/logging"
	"github.com/AleutianAI/AleutianAnnotate/services/annotate/assoc"
	"github.com/AleutianAI/AleutianAnnotate/services/annotate/ast"
	"github.com/AleutianAI/AleutianAnnotate/services/annotate/comment"
	"github.com/AleutianAI/AleutianAnnotate/services/annotate/syntax"
)

var (
	flagConfig  string
	flagPolicy  string
	flagCompact bool
	flagOut     string

	config = DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Reunite a parsed syntax tree with the comments from its source",
	Long: `annotate parses a source file with a grammar parser, recovers the
comments the grammar discards, matches each comment to the construct it
belongs to, and emits the annotated tree as JSON.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagConfig != "" {
			loaded, err := LoadConfig(flagConfig)
			if err != nil {
				return err
			}
			config = loaded
		}
		if flagPolicy != "" {
			config.Policy = flagPolicy
		}

		logger := logging.New(logging.Config{
			Level:  logging.ParseLevel(config.LogLevel),
			LogDir: config.LogDir,
		})
		slog.SetDefault(logger.Slog())
		return nil
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a file and emit the comment-annotated tree as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		runLog := slog.With(slog.String("run_id", uuid.NewString()), slog.String("file", path))

		result, content, err := parseFile(cmd, path)
		if err != nil {
			return err
		}
		for _, diag := range result.Errors {
			runLog.Warn("parser diagnostic", slog.String("detail", diag))
		}

		policy, err := assoc.ParsePolicy(config.Policy)
		if err != nil {
			return err
		}
		stats, err := assoc.Annotate(cmd.Context(), result.File, string(content), assoc.WithPolicy(policy))
		if err != nil {
			return err
		}
		runLog.Info("annotation complete",
			slog.Int("items", len(result.File.Items)),
			slog.Int("comments", stats.Comments),
			slog.Int("associated", stats.Associated),
			slog.Int("residual", stats.Residual))

		out := cmd.OutOrStdout()
		if flagOut != "" {
			f, err := os.Create(flagOut)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			out = f
		}
		if err := syntax.WriteFile(out, result.File, !flagCompact); err != nil {
			return err
		}

		printSummary(stats, len(result.File.Items))
		return nil
	},
}

var commentsCmd = &cobra.Command{
	Use:   "comments <file>",
	Short: "List the comments the lexical extractor recovers from a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		for _, c := range comment.Extract(string(content)) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %q\n", c.Span, c.Kind, c.Text)
		}
		return nil
	},
}

var spansCmd = &cobra.Command{
	Use:   "spans <file>",
	Short: "List the node spans collected from a file's parsed tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, _, err := parseFile(cmd, args[0])
		if err != nil {
			return err
		}

		for _, n := range assoc.Collect(result.File) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", n.ID, n.Span)
		}
		return nil
	},
}

// parseFile selects a parser by file extension and parses the file.
func parseFile(cmd *cobra.Command, path string) (*ast.Result, []byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	ext := filepath.Ext(path)
	parser, ok := ast.DefaultRegistry().ByExtension(ext)
	if !ok {
		return nil, nil, fmt.Errorf("file type %s: %w", ext, ast.ErrUnsupportedLanguage)
	}

	if config.MaxFileSizeBytes > 0 {
		if _, ok := parser.(*ast.RustParser); ok {
			parser = ast.NewRustParser(ast.WithMaxFileSize(config.MaxFileSizeBytes))
		}
	}

	result, err := parser.Parse(cmd.Context(), content, path)
	if err != nil {
		return nil, nil, err
	}
	return result, content, nil
}

// printSummary writes the run summary to stderr so stdout stays clean
// for the JSON artifact.
func printSummary(stats assoc.Stats, itemCount int) {
	green := color.New(color.FgGreen).FprintfFunc()
	yellow := color.New(color.FgYellow).FprintfFunc()

	green(os.Stderr, "✓ %d items, %d/%d comments associated (%s policy)\n",
		itemCount, stats.Associated, stats.Comments, stats.Policy)
	if stats.Residual > 0 {
		yellow(os.Stderr, "  %d comments retained at document root\n", stats.Residual)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagPolicy, "policy", "", "association policy: conservative or nearest")
	parseCmd.Flags().BoolVar(&flagCompact, "compact", false, "emit compact JSON instead of indented")
	parseCmd.Flags().StringVar(&flagOut, "out", "", "write JSON to this file instead of stdout")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(spansCmd)
}
