package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bizledger/backend/internal/application/usecase/ingestion"
	"github.com/bizledger/backend/internal/integration/apiclient"
	"github.com/bizledger/backend/internal/integration/cursorstore"
)

func uploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a spreadsheet to the bulk import endpoint in chunks",
		Long: `upload normalizes the rows locally and posts them in chunks. After every
committed chunk a cursor file is written; running the same upload again
skips the chunks the server already accepted.`,
		Args: cobra.ExactArgs(1),
		RunE: runUpload,
	}

	cmd.Flags().String("server", "http://localhost:5000", "bizledger server URL")
	cmd.Flags().String("token", "", "bearer token (skips login)")
	cmd.Flags().String("username", "", "login username")
	cmd.Flags().String("password", "", "login password")
	cmd.Flags().String("company", "", "company ID")
	cmd.Flags().Int("chunk-size", ingestion.DefaultChunkSize, "records per request")
	cmd.Flags().String("cursor", "", "cursor file (default: FILE.cursor.json)")
	cmd.Flags().Bool("dry-run", false, "parse and report without uploading")

	_ = viper.BindPFlag("server", cmd.Flags().Lookup("server"))
	_ = viper.BindPFlag("token", cmd.Flags().Lookup("token"))
	_ = viper.BindPFlag("username", cmd.Flags().Lookup("username"))
	_ = viper.BindPFlag("password", cmd.Flags().Lookup("password"))
	_ = viper.BindPFlag("company", cmd.Flags().Lookup("company"))
	_ = viper.BindPFlag("chunk_size", cmd.Flags().Lookup("chunk-size"))

	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	rules, err := loadRules()
	if err != nil {
		return err
	}
	overrides, err := parseOverrides(cmd)
	if err != nil {
		return err
	}

	parsed, err := parseFile(path, rules, overrides)
	if err != nil {
		return err
	}
	slog.Info("Parsed file",
		"file", path,
		"data_rows", parsed.DataRows,
		"importable", len(parsed.Records),
		"dropped", parsed.DataRows-len(parsed.Records),
	)

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		printMapping(os.Stdout, parsed.Header, parsed.Mapping)
		return nil
	}

	client := apiclient.New(viper.GetString("server"), viper.GetString("token"))
	if client.Token() == "" {
		username, company := viper.GetString("username"), viper.GetString("company")
		if username == "" || company == "" {
			return errors.New("either --token or --username, --password and --company are required")
		}
		if err := client.Login(ctx, username, viper.GetString("password"), company); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
	}

	cursorPath, _ := cmd.Flags().GetString("cursor")
	if cursorPath == "" {
		cursorPath = path + ".cursor.json"
	}

	chunkSize := viper.GetInt("chunk_size")
	if chunkSize <= 0 {
		chunkSize = ingestion.DefaultChunkSize
	}

	bar := progressbar.NewOptions(len(parsed.Records),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Uploading"),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)

	submitter := ingestion.NewChunkSubmitter(client, cursorstore.NewFileStore(cursorPath))
	result, err := submitter.Submit(ctx, parsed.Records, ingestion.SubmitOptions{
		ChunkSize:   chunkSize,
		Fingerprint: ingestion.ContentFingerprint(parsed.Content, parsed.Mapping, rules, chunkSize),
		OnProgress: func(p ingestion.ChunkProgress) {
			_ = bar.Set(p.Submitted)
		},
	})
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	if err != nil {
		var chunkErr *ingestion.ChunkFailedError
		if errors.As(err, &chunkErr) {
			return fmt.Errorf("%w (run the same command again to resume from record %d)", err, chunkErr.Offset+1)
		}
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %d transactions (%d rejected, %d chunks sent, %d skipped)\n",
		result.Imported, result.Rejected, result.ChunksSent, result.ChunksSkipped)
	return nil
}
