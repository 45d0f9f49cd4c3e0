package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bump-fr/yt-dlp-api/internal/config"
	"github.com/bump-fr/yt-dlp-api/internal/services/auth"
	"github.com/bump-fr/yt-dlp-api/internal/services/ytdlp"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testConfig() (*config.Config, error) {
	return &config.Config{
		Auth:  config.AuthConfig{APIToken: "token", JWTSecret: testSecret, JWTIssuer: "yt-dlp-api"},
		YtDlp: config.YtDlpConfig{
			Path:             "yt-dlp-not-installed",
			Timeout:          time.Second,
			MaxOutputBytes:   1024,
			DefaultMaxVideos: 30,
			MaxVideosLimit:   500,
		},
	}, nil
}

// runCLI executes the root command in-process and returns its output.
func runCLI(t *testing.T, load configLoader, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(load)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, err := runCLI(t, testConfig, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "ytdlpctl version "+version) {
		t.Errorf("output = %q", out)
	}
}

func TestArgumentValidation(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "video without url", args: []string{"video"}},
		{name: "channel with two urls", args: []string{"channel", "a", "b"}},
		{name: "negative max", args: []string{"videos", "https://www.youtube.com/@chan", "--max", "-1"}},
		{name: "token without subject", args: []string{"token"}},
		{name: "token with zero ttl", args: []string{"token", "--subject", "x", "--ttl", "0s"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := runCLI(t, testConfig, tc.args...); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestInvalidURLNeverRunsTool(t *testing.T) {
	for _, sub := range []string{"video", "channel", "videos"} {
		t.Run(sub, func(t *testing.T) {
			_, err := runCLI(t, testConfig, sub, "--", "--exec=touch /tmp/x")
			if !errors.Is(err, ytdlp.ErrInvalidURL) {
				t.Fatalf("error = %v, want ErrInvalidURL", err)
			}
		})
	}
}

func TestConfigErrorIsReturned(t *testing.T) {
	failing := func() (*config.Config, error) { return nil, errors.New("API_TOKEN is not set") }

	if _, err := runCLI(t, failing, "video", "https://www.youtube.com/watch?v=abc"); err == nil {
		t.Fatal("expected config error")
	}
}

func TestTokenCommand(t *testing.T) {
	out, err := runCLI(t, testConfig, "token", "--subject", "frontend", "--ttl", "1h")
	if err != nil {
		t.Fatal(err)
	}

	cfg, _ := testConfig()
	claims, err := auth.NewJWTService(&cfg.Auth).ValidateAccessToken(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("minted token does not validate: %v", err)
	}
	if claims.Subject != "frontend" {
		t.Errorf("subject = %q", claims.Subject)
	}
}
