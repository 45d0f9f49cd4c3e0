// Package main provides ytdlpctl, an operator CLI that runs the same
// extraction as the API without going through HTTP.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bump-fr/yt-dlp-api/internal/config"
	"github.com/bump-fr/yt-dlp-api/internal/services/auth"
	"github.com/bump-fr/yt-dlp-api/internal/services/ytdlp"
)

var version = "1.0.0"

func main() {
	if err := newRootCmd(config.Load).Execute(); err != nil {
		os.Exit(1)
	}
}

type configLoader func() (*config.Config, error)

// newRootCmd creates the root command for the ytdlpctl CLI.
func newRootCmd(load configLoader) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "ytdlpctl",
		Short:        "Query video and channel metadata through yt-dlp",
		Long:         "ytdlpctl runs the API's extraction pipeline locally and prints the JSON responses.",
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate("ytdlpctl version {{.Version}}\n")

	rootCmd.AddCommand(newVideoCmd(load))
	rootCmd.AddCommand(newChannelCmd(load))
	rootCmd.AddCommand(newVideosCmd(load))
	rootCmd.AddCommand(newTokenCmd(load))

	return rootCmd
}

func newClient(load configLoader) (*ytdlp.Client, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	return ytdlp.NewClient(ytdlp.NewExecRunner(&cfg.YtDlp), &cfg.YtDlp), nil
}

// newVideoCmd creates the video subcommand.
func newVideoCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "video <url>",
		Short: "Print a video's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(load)
			if err != nil {
				return err
			}

			video, err := client.FetchVideo(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("fetch video: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), video)
		},
	}
}

// newChannelCmd creates the channel subcommand.
func newChannelCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "channel <url>",
		Short: "Print a channel's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(load)
			if err != nil {
				return err
			}

			channel, err := client.FetchChannel(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("fetch channel: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), channel)
		},
	}
}

// newVideosCmd creates the videos subcommand.
func newVideosCmd(load configLoader) *cobra.Command {
	var since string
	var maxVideos int

	cmd := &cobra.Command{
		Use:   "videos <channel-url>",
		Short: "List a channel's videos",
		Long:  "List a channel's videos. --since accepts YYYY-MM-DD, YYYYMMDD or now|today|yesterday[-N(day|week|month|year)].",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxVideos < 0 {
				return fmt.Errorf("--max must not be negative")
			}

			client, err := newClient(load)
			if err != nil {
				return err
			}

			videos, err := client.ListChannelVideos(context.Background(), args[0], ytdlp.ChannelVideosOptions{
				SinceDate: since,
				MaxVideos: maxVideos,
			})
			if err != nil {
				return fmt.Errorf("list channel videos: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), videos)
		},
	}

	cmd.Flags().StringVarP(&since, "since", "s", "", "Only list videos uploaded on or after this date")
	cmd.Flags().IntVarP(&maxVideos, "max", "m", 0, "Maximum number of videos (0 selects the configured default)")

	return cmd
}

// newTokenCmd creates the token subcommand.
func newTokenCmd(load configLoader) *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for the API",
		Long:  "Mint an HS256 access token signed with JWT_SECRET.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" {
				return fmt.Errorf("--subject is required")
			}
			if ttl <= 0 {
				return fmt.Errorf("--ttl must be positive")
			}

			cfg, err := load()
			if err != nil {
				return err
			}

			token, err := auth.NewJWTService(&cfg.Auth).GenerateAccessToken(subject, ttl)
			if err != nil {
				return fmt.Errorf("mint token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Token subject, used as the rate limit key")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")

	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
