// Command server runs the home-screen configuration backend and ships small
// maintenance subcommands for moving records in and out of the store.
//
// Usage:
//
//	server serve                     - Run the HTTP API
//	server export <id> [file]        - Write a stored record to a JSON file (stdout if omitted)
//	server import <file>             - Validate a JSON file and upsert it into the store
//	server validate <file>           - Check a JSON file without touching the store
package main

import (
    "fmt"
    "os"

    "github.com/gin-gonic/gin"
    "github.com/joho/godotenv"
    "github.com/spf13/cobra"

    "github.com/zaqqye/homescreen_backend_v1/internal/config"
    "github.com/zaqqye/homescreen_backend_v1/internal/importexport"
    "github.com/zaqqye/homescreen_backend_v1/internal/log"
    "github.com/zaqqye/homescreen_backend_v1/internal/routes"
    "github.com/zaqqye/homescreen_backend_v1/internal/store"
    "github.com/zaqqye/homescreen_backend_v1/internal/ws"
)

func main() {
    // Load .env (non-fatal if missing in production)
    _ = godotenv.Load()

    root := &cobra.Command{
        Use:   "server",
        Short: "Mobile home-screen config backend",
        Long: `Backend for the mobile home-screen configuration editor.
Stores one JSON file per configuration record and serves a small REST API
plus the public home endpoint consumed by the app.`,
    }

    serveCmd := &cobra.Command{
        Use:   "serve",
        Short: "Run the HTTP API",
        RunE: func(_ *cobra.Command, _ []string) error {
            cfg, err := config.Load()
            if err != nil {
                return err
            }

            st, err := store.New(cfg.DataDir)
            if err != nil {
                return err
            }
            if _, err := st.EnsureDefault(); err != nil {
                return fmt.Errorf("seed default config: %w", err)
            }

            hub := ws.NewPreviewHub()
            go hub.Run()

            if os.Getenv("GIN_MODE") == "" {
                gin.SetMode(gin.ReleaseMode)
            }
            r := gin.Default()
            routes.Register(r, st, hub, cfg)

            log.Info("listening", "port", cfg.Port, "data_dir", cfg.DataDir)
            return r.Run(":" + cfg.Port)
        },
    }

    exportCmd := &cobra.Command{
        Use:   "export <id> [file]",
        Short: "Write a stored record to a JSON file",
        Args:  cobra.RangeArgs(1, 2),
        RunE: func(_ *cobra.Command, args []string) error {
            st, err := openStore()
            if err != nil {
                return err
            }
            out := os.Stdout
            if len(args) == 2 {
                f, err := os.Create(args[1])
                if err != nil {
                    return err
                }
                defer f.Close()
                out = f
            }
            return importexport.Export(st, args[0], out)
        },
    }

    importCmd := &cobra.Command{
        Use:   "import <file>",
        Short: "Validate a JSON file and upsert it into the store",
        Args:  cobra.ExactArgs(1),
        RunE: func(_ *cobra.Command, args []string) error {
            st, err := openStore()
            if err != nil {
                return err
            }
            data, err := os.ReadFile(args[0])
            if err != nil {
                return err
            }
            rec, err := importexport.Import(st, data)
            if err != nil {
                return describeStoreError(err)
            }
            fmt.Printf("imported %s (updated %s)\n", rec.ID, rec.UpdatedAt)
            return nil
        },
    }

    validateCmd := &cobra.Command{
        Use:   "validate <file>",
        Short: "Check a JSON file without touching the store",
        Args:  cobra.ExactArgs(1),
        RunE: func(_ *cobra.Command, args []string) error {
            data, err := os.ReadFile(args[0])
            if err != nil {
                return err
            }
            res := importexport.Check(data)
            if res.IsValid {
                fmt.Println("valid")
                return nil
            }
            for _, e := range res.Errors {
                fmt.Fprintln(os.Stderr, e)
            }
            return fmt.Errorf("%d validation error(s)", len(res.Errors))
        },
    }

    root.AddCommand(serveCmd, exportCmd, importCmd, validateCmd)
    if err := root.Execute(); err != nil {
        os.Exit(1)
    }
}

func openStore() (*store.Store, error) {
    cfg, err := config.Load()
    if err != nil {
        return nil, err
    }
    return store.New(cfg.DataDir)
}

// describeStoreError flattens a typed store error into a CLI-friendly error
// with its detail lines attached.
func describeStoreError(err error) error {
    se, ok := store.AsError(err)
    if !ok {
        return err
    }
    for _, d := range se.Details {
        fmt.Fprintln(os.Stderr, d)
    }
    return fmt.Errorf("%s", se.Message)
}
