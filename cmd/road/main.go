package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joeblew999/plat-road/internal/config"
	"github.com/joeblew999/plat-road/internal/report"
	"github.com/joeblew999/plat-road/internal/server"
	"github.com/joeblew999/plat-road/internal/survey"
)

// Options defines all CLI flags and env vars for the road server.
// Flags: --host, --port, --data-dir, --config, --store, --web-dir
// Env vars: SERVICE_HOST, SERVICE_PORT, SERVICE_DATA_DIR, SERVICE_CONFIG, SERVICE_STORE, SERVICE_WEB_DIR
type Options struct {
	Host    string `doc:"Host to bind to" default:"0.0.0.0"`
	Port    int    `doc:"Port to listen on" short:"p" default:"8086"`
	DataDir string `doc:"Directory for saved snapshots" default:".data"`
	Config  string `doc:"Survey settings YAML file" default:"road.yaml"`
	Store   string `doc:"Snapshot store: file, duckdb or none" default:"file"`
	WebDir  string `doc:"Directory with templates/fragments overriding the embedded ones"`
}

func newServer(opts *Options) *server.Server {
	srv, err := server.New(server.Config{
		Host:       opts.Host,
		Port:       fmt.Sprintf("%d", opts.Port),
		DataDir:    opts.DataDir,
		ConfigPath: opts.Config,
		Store:      opts.Store,
		WebDir:     opts.WebDir,
	})
	if err != nil {
		log.Fatalf("Server setup: %v", err)
	}
	return srv
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		srv := newServer(opts)

		hooks.OnStart(func() {
			addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
			displayHost := opts.Host
			if displayHost == "0.0.0.0" {
				displayHost = "localhost"
			}
			baseURL := fmt.Sprintf("http://%s:%d", displayHost, opts.Port)

			fmt.Println()
			fmt.Printf("plat-road server starting...\n")
			fmt.Printf("  Server:  %s\n", baseURL)
			fmt.Printf("  Project: %s\n", srv.Service().Name())
			fmt.Printf("  Store:   %s (%s)\n", srv.Service().Backend(), opts.DataDir)
			fmt.Println()
			fmt.Printf("  Editor:  %s/editor\n", baseURL)
			fmt.Printf("  Docs:    %s/docs\n", baseURL)
			fmt.Printf("  OpenAPI: %s/openapi.json\n", baseURL)
			fmt.Printf("  Metrics: %s/metrics\n", baseURL)
			fmt.Println()

			if err := http.ListenAndServe(addr, srv); err != nil {
				log.Fatalf("Server error: %v", err)
			}
		})
		hooks.OnStop(func() {
			srv.Close()
		})
	})

	cli.Root().Use = "road"
	cli.Root().Short = "Road construction station survey and tonnage editor"
	cli.Root().Version = "1.0.0"

	// spec subcommand: export OpenAPI spec
	specCmd := &cobra.Command{
		Use:   "spec",
		Short: "Export OpenAPI spec (JSON by default, --yaml for YAML)",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			opts.Store = server.StoreNone
			srv := newServer(opts)
			spec := srv.OpenAPI()

			useYAML, _ := cmd.Flags().GetBool("yaml")

			var output []byte
			var err error
			if useYAML {
				output, err = yaml.Marshal(spec)
			} else {
				output, err = json.MarshalIndent(spec, "", "  ")
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error marshaling spec: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(output))
		}),
	}
	specCmd.Flags().BoolP("yaml", "y", false, "Output as YAML instead of JSON")
	cli.Root().AddCommand(specCmd)

	// report subcommand: render the tonnage report of the saved project
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Render the tonnage report of the last saved snapshot",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			if err := writeReport(opts, format, output); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}),
	}
	reportCmd.Flags().StringP("format", "f", "", "xlsx, pdf, yaml or json (default: output extension, else json)")
	reportCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	cli.Root().AddCommand(reportCmd)

	cli.Run()
}

// writeReport loads the saved snapshot and renders its tonnage report.
func writeReport(opts *Options, format, output string) error {
	if format == "" {
		format = "json"
		if ext := filepath.Ext(output); ext != "" {
			format = ext
		}
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return err
	}
	srv := newServer(opts)
	defer srv.Close()

	snap, err := srv.Service().Load(context.Background())
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	project := survey.FromSnapshot(snap, cfg.Settings())
	data, err := report.Build(f, report.New(project.Name, project.Tonnage(), time.Now()))
	if err != nil {
		return err
	}

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Report written to %s\n", output)
	return nil
}
