package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/heyeunseok/scripture-kiosk/internal/config"
	"github.com/heyeunseok/scripture-kiosk/internal/kioskinfo"
	"github.com/heyeunseok/scripture-kiosk/internal/scripture"
	"github.com/heyeunseok/scripture-kiosk/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "versectl",
		Short: "Inspect the scripture corpus and talk to a running kiosk",
		Long: `versectl resolves spoken scripture references offline and drives a
running kiosk over gRPC.

Example:
  versectl parse "창세기 일장 일절"
  versectl lookup --bible bible_ko.json "요한복음 3장 16절"
  versectl export-sqlite --bible bible_ko.json --out bible_ko.db
  versectl ask --addr 127.0.0.1:50061 "시편 23편 1절"
  versectl say --out greeting.wav "안녕하세요"`,
		Version:       kioskinfo.Info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Bool("verbose", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().Bool("mask-book-names", false, "Ignore numeral syllables inside the matched book name")

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(lookupCmd())
	rootCmd.AddCommand(infoCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(wakeCmd())
	rootCmd.AddCommand(resetCmd())
	rootCmd.AddCommand(sayCmd())
	return rootCmd
}

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <transcript>",
		Short: "Resolve a transcript to a reference without reading the corpus",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			ref, err := newParser(cmd).Parse(strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("%s (%w)", scripture.Message(err), err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), ref)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ref.String())
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the reference as JSON")
	return cmd
}

func lookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <transcript>",
		Short: "Resolve a transcript and print the passage from a local corpus",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cmdLogger(cmd)
			store, err := scripture.Load(biblePath(cmd), logger)
			if err != nil {
				return err
			}
			ref, err := newParser(cmd).Parse(strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("%s (%w)", scripture.Message(err), err)
			}
			text, err := store.Lookup(ref)
			if err != nil {
				return fmt.Errorf("%s (%w)", scripture.Message(err), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", ref.String(), text)
			return nil
		},
	}
	addBibleFlag(cmd)
	return cmd
}

func infoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Report corpus state and sample verses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := scripture.Load(biblePath(cmd), cmdLogger(cmd))
			if err != nil {
				cmdLogger(cmd).Warn("corpus not loaded", "error", err)
			}
			return writeJSON(cmd.OutOrStdout(), store.Info())
		},
	}
	addBibleFlag(cmd)
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-sqlite",
		Short: "Convert a corpus to the SQLite layout the kiosk can load",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				return fmt.Errorf("--out flag is required")
			}
			store, err := scripture.Load(biblePath(cmd), cmdLogger(cmd))
			if err != nil {
				return err
			}
			if err := scripture.ExportSQLite(cmd.Context(), store, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d books to %s\n", store.BookCount(), out)
			return nil
		},
	}
	addBibleFlag(cmd)
	cmd.Flags().StringP("out", "o", "", "Destination SQLite file (must not exist)")
	return cmd
}

func askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <transcript>",
		Short: "Send a passage request to a running kiosk",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client *server.Client) error {
				reply, err := client.ProcessBible(ctx, server.BibleRequest{Transcript: strings.Join(args, " ")})
				if err != nil {
					return err
				}
				return printReply(cmd, reply)
			})
		},
	}
	addRemoteFlags(cmd)
	return cmd
}

func wakeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wake <transcript>",
		Short: "Send a wake transcript with a speaker label to a running kiosk",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			speaker, _ := cmd.Flags().GetString("speaker")
			confidence, _ := cmd.Flags().GetFloat64("confidence")
			return withClient(cmd, func(ctx context.Context, client *server.Client) error {
				reply, err := client.ProcessWake(ctx, server.WakeRequest{
					Transcript: strings.Join(args, " "),
					Speaker:    speaker,
					Confidence: confidence,
				})
				if err != nil {
					return err
				}
				return printReply(cmd, reply)
			})
		},
	}
	addRemoteFlags(cmd)
	cmd.Flags().String("speaker", "unknown", "Speaker label (jiwon, moksa, hyanguk, unknown)")
	cmd.Flags().Float64("confidence", 1, "Speaker verification confidence")
	return cmd
}

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the strike counter of a running kiosk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client *server.Client) error {
				reply, err := client.ResetStrikes(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "strikes: %d\n", reply.Strikes)
				return nil
			})
		},
	}
	addRemoteFlags(cmd)
	return cmd
}

func sayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "say <text>",
		Short: "Synthesize text on a running kiosk",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			return withClient(cmd, func(ctx context.Context, client *server.Client) error {
				reply, err := client.Synthesize(ctx, server.SynthesizeRequest{Text: strings.Join(args, " ")})
				if err != nil {
					return err
				}
				if out != "" {
					if err := os.WriteFile(out, reply.Audio, 0o644); err != nil {
						return fmt.Errorf("write audio: %w", err)
					}
				}
				return printReply(cmd, reply)
			})
		},
	}
	addRemoteFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "Write the audio to this file")
	return cmd
}

func addBibleFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("bible", "b", "", "Corpus path (.json, .json.xz, .db); defaults to the kiosk configuration")
}

func addRemoteFlags(cmd *cobra.Command) {
	cmd.Flags().String("addr", "", "Kiosk gRPC address; defaults to the kiosk configuration")
	cmd.Flags().Duration("timeout", 10*time.Second, "Request timeout")
}

// biblePath prefers the --bible flag and falls back to the kiosk configuration.
func biblePath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("bible"); path != "" {
		return path
	}
	if cfg, err := (config.Loader{}).Load(); err == nil {
		return cfg.BiblePath
	}
	return config.DefaultBiblePath
}

func remoteAddr(cmd *cobra.Command) string {
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		return addr
	}
	if cfg, err := (config.Loader{}).Load(); err == nil {
		return cfg.ListenAddr
	}
	return config.DefaultListenAddr
}

func withClient(cmd *cobra.Command, fn func(context.Context, *server.Client) error) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	addr := remoteAddr(cmd)

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("connect %s: %w", addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	return fn(ctx, server.NewClient(conn))
}

func printReply(cmd *cobra.Command, reply server.Reply) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "request: %s\naction: %s\n", reply.RequestID, reply.Action)
	if reply.Reference != nil {
		fmt.Fprintf(out, "reference: %s\n", reply.Reference.String())
	}
	if reply.Text != "" {
		fmt.Fprintf(out, "text: %s\n", reply.Text)
	}
	if len(reply.Audio) > 0 {
		fmt.Fprintf(out, "audio: %d bytes\n", len(reply.Audio))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newParser(cmd *cobra.Command) *scripture.Parser {
	mask, _ := cmd.Flags().GetBool("mask-book-names")
	return scripture.NewParser(cmdLogger(cmd), scripture.MaskBookNames(mask))
}

func cmdLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
