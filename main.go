// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

const asciiLogo = `
 █████╗ ██╗   ██╗██╗     ████████╗██████╗ ███████╗███████╗
██╔══██╗██║   ██║██║     ╚══██╔══╝██╔══██╗██╔════╝██╔════╝
███████║██║   ██║██║        ██║   ██████╔╝█████╗  █████╗
██╔══██║╚██╗ ██╔╝██║        ██║   ██╔══██╗██╔══╝  ██╔══╝
██║  ██║ ╚████╔╝ ███████╗   ██║   ██║  ██║███████╗███████╗
╚═╝  ╚═╝  ╚═══╝  ╚══════╝   ╚═╝   ╚═╝  ╚═╝╚══════╝╚══════╝
A workbench for self-balancing binary search trees [Version: %s%s%s]

`

// sessionConfig reads ~/.avltree.yaml and applies flag overrides.
func sessionConfig(cmd *cobra.Command) *Config {
	cfg := LoadConfig()

	if cmd.Flags().Changed("numeric") {
		cfg.Keys.Numeric, _ = cmd.Flags().GetBool("numeric")
	}
	if noProgress, _ := cmd.Flags().GetBool("no-progress"); noProgress {
		cfg.UI.ShowProgress = false
	}
	return cfg
}

// newSession builds a session and loads the given key files into it.
func newSession(cmd *cobra.Command, files []string) (*Session, error) {
	cfg := sessionConfig(cmd)
	session := NewSession(cfg)
	if len(files) == 0 {
		return session, nil
	}
	if _, err := loadKeyFiles(session, files, cfg.UI.ShowProgress); err != nil {
		return nil, err
	}
	return session, nil
}

// runScript executes one shell command per line of r, writing each
// command's output to w. It stops at the first failing line.
func runScript(session *Session, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out, err := session.Exec(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if out != "" {
			fmt.Fprintln(w, out)
		}
	}
	return scanner.Err()
}

func newRootCmd() *cobra.Command {
	logo := fmt.Sprintf(asciiLogo, Green, version, Reset)

	shell := func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd, args)
		if err != nil {
			return err
		}
		return runShell(session)
	}

	var cmdShell = &cobra.Command{
		Use:   "shell [FILE...]",
		Short: "Open the interactive tree shell",
		Long:  fmt.Sprintf("%s\n%s", logo, "Shell loads the key files, then lets you insert, delete and inspect keys interactively"),
		RunE:  shell,
	}

	var cmdLoad = &cobra.Command{
		Use:   "load FILE...",
		Short: "Load key files and print a summary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := sessionConfig(cmd)
			session := NewSession(cfg)
			stats, err := loadKeyFiles(session, args, cfg.UI.ShowProgress)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "added:      %d\n", stats.Added)
			fmt.Fprintf(out, "duplicates: %d\n", stats.Duplicates)
			fmt.Fprintf(out, "size:       %d\n", session.Size())
			fmt.Fprintf(out, "height:     %d\n", session.Height())
			return nil
		},
	}

	var cmdPrint = &cobra.Command{
		Use:   "print FILE...",
		Short: "Print the keys of the files in ascending order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSession(cmd, args)
			if err != nil {
				return err
			}

			var text string
			if asArray, _ := cmd.Flags().GetBool("array"); asArray {
				text = session.Array()
			} else if text, err = session.Listing(); err != nil {
				return err
			}

			if text != "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}

			if copyOut, _ := cmd.Flags().GetBool("copy"); copyOut {
				if err := clipboard.WriteAll(text); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintf(os.Stderr, "%sCopied %d keys to clipboard.%s\n", Green, session.Size(), Reset)
			}
			return nil
		},
	}
	cmdPrint.Flags().Bool("array", false, "print keys as [k1, k2, ...]")
	cmdPrint.Flags().Bool("copy", false, "copy the output to the clipboard")

	var cmdCheck = &cobra.Command{
		Use:   "check FILE...",
		Short: "Load key files and verify ordering, heights and balance",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSession(cmd, args)
			if err != nil {
				return err
			}
			if err := session.Check(); err != nil {
				return fmt.Errorf("tree invalid: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%sok%s: %d keys, height %d\n", Green, Reset, session.Size(), session.Height())
			return nil
		},
	}

	var cmdDump = &cobra.Command{
		Use:   "dump FILE...",
		Short: "Draw the tree built from the key files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSession(cmd, args)
			if err != nil {
				return err
			}
			if text := session.Dump(); text != "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			return nil
		},
	}

	var cmdExec = &cobra.Command{
		Use:   "exec SCRIPT",
		Short: "Run shell commands from a file, or stdin when SCRIPT is -",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyFiles, _ := cmd.Flags().GetStringSlice("keys")
			session, err := newSession(cmd, keyFiles)
			if err != nil {
				return err
			}

			if args[0] == "-" {
				return runScript(session, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()
			return runScript(session, file, cmd.OutOrStdout())
		},
	}
	cmdExec.Flags().StringSlice("keys", nil, "key files to load before running the script")

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print avltree usage guide",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), getHelpMessage())
		},
	}

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Show avltree settings, creating the default file if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return displaySettings()
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print avltree version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:           "avltree",
		Version:       version,
		Long:          logo,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          shell,
	}
	rootCmd.PersistentFlags().Bool("numeric", false, "treat keys as 64-bit integers")
	rootCmd.PersistentFlags().Bool("no-progress", false, "hide progress bars while loading")
	rootCmd.AddCommand(cmdShell, cmdLoad, cmdPrint, cmdCheck, cmdDump, cmdExec, cmdUsage, cmdSettings, cmdVersion)

	return rootCmd
}

func main() {
	InitializeColors()

	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("avltree: %v", err)
	}
}
