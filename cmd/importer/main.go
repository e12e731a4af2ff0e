// Package main is the bizledger spreadsheet importer CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "importer",
		Short: "Import bank and ledger spreadsheets into bizledger",
		Long: `importer reads an .xlsx, .xls or .csv export, detects its header row,
maps the columns to transaction fields and uploads the rows to a bizledger
server in resumable chunks.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.bizledger.yaml)")
	rootCmd.PersistentFlags().String("rules", "", "YAML file overriding the column and category rules")
	rootCmd.PersistentFlags().StringArray("map", nil, "override a column mapping, e.g. --map amount=\"Debit\"")
	rootCmd.PersistentFlags().StringSlice("ignore", nil, "fields to leave unmapped (date, type, category)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	_ = viper.BindPFlag("rules", rootCmd.PersistentFlags().Lookup("rules"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(uploadCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Warn("Interrupted, stopping after the current chunk")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	home, _ := os.UserHomeDir()
	if err := readConfig(viper.GetViper(), cfgFile, home); err != nil {
		return err
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(viper.GetBool("verbose"))})
	slog.SetDefault(slog.New(handler))
	return nil
}

// readConfig loads cfgFile, or ~/.bizledger.yaml when no file is named.
// Only a missing default file is tolerated.
func readConfig(v *viper.Viper, cfgFile, home string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home != "" {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".bizledger")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("BIZLEDGER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
