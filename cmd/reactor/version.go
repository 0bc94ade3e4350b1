package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reactor/internal/config"
	"github.com/vango-dev/reactor/pkg/reactive"
)

// buildInfo describes the binary and the defaults compiled into it.
type buildInfo struct {
	Version     string   `json:"version"`
	Commit      string   `json:"commit"`
	Date        string   `json:"date"`
	GoVersion   string   `json:"goVersion"`
	Platform    string   `json:"platform"`
	MaxPasses   int      `json:"maxPasses"`
	ConfigFiles []string `json:"configFiles"`
}

func currentBuildInfo() buildInfo {
	return buildInfo{
		Version:     version,
		Commit:      commit,
		Date:        date,
		GoVersion:   runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		MaxPasses:   reactive.DefaultMaxPasses,
		ConfigFiles: config.FileNames,
	}
}

// writeTo prints info as an aligned table.
func (info buildInfo) writeTo(w io.Writer) {
	fmt.Fprintf(w, "  Version:      %s\n", info.Version)
	fmt.Fprintf(w, "  Commit:       %s\n", info.Commit)
	fmt.Fprintf(w, "  Built:        %s\n", info.Date)
	fmt.Fprintf(w, "  Go version:   %s\n", info.GoVersion)
	fmt.Fprintf(w, "  OS/Arch:      %s\n", info.Platform)
	fmt.Fprintf(w, "  Max passes:   %d\n", info.MaxPasses)
	fmt.Fprintf(w, "  Config files: %s\n", strings.Join(info.ConfigFiles, ", "))
}

func versionCmd() *cobra.Command {
	var (
		short  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the reactor version, its build details and the runtime
defaults compiled into it: the per-observer pass budget and the
config file names looked up in the working directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			info := currentBuildInfo()
			switch {
			case short:
				fmt.Fprintln(out, info.Version)
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			default:
				printBanner()
				fmt.Fprintln(out)
				info.writeTo(out)
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version information as JSON")
	cmd.MarkFlagsMutuallyExclusive("short", "json")

	return cmd
}
