package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/studyhub/studyhub/backend/go-services/internal/backup"
	"github.com/studyhub/studyhub/backend/go-services/internal/database"
	doubtservice "github.com/studyhub/studyhub/backend/go-services/internal/doubt/service"
	"github.com/studyhub/studyhub/backend/go-services/internal/identity"
	noteservice "github.com/studyhub/studyhub/backend/go-services/internal/note/service"
	"github.com/studyhub/studyhub/backend/go-services/internal/storage"
	timetableservice "github.com/studyhub/studyhub/backend/go-services/internal/timetable/service"
)

var backupURLExpiry time.Duration

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a JSON snapshot of all data to MinIO",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := mustLoadConfig(false)

		store, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			return err
		}
		client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(ctx) }()

		db := client.Database(cfg.MongoDB.Database)
		ids := identity.Placeholder()
		runner := &backup.Runner{
			Store:      store,
			Notes:      noteservice.NewMongoService(db.Collection(database.NotesCollection), ids),
			Doubts:     doubtservice.NewMongoService(db.Collection(database.DoubtsCollection), ids),
			Timetables: timetableservice.NewMongoService(db.Collection(database.TimetablesCollection), ids),
			URLExpiry:  backupURLExpiry,
		}
		res, err := runner.Run(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "wrote %s/%s (%d bytes: %d notes, %d doubts, %d timetables)\n",
			store.Bucket(), res.Key, res.Size, res.Notes, res.Doubts, res.Timetables)
		if res.URL != "" {
			fmt.Fprintf(out, "download (valid %s): %s\n", backupURLExpiry, res.URL)
		}
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig(true)
		store, err := storage.NewMinIOStorage(cmd.Context(), cfg.MinIO)
		if err != nil {
			return err
		}
		keys, err := store.List(cmd.Context(), backup.KeyPrefix)
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

func init() {
	backupCmd.Flags().DurationVar(&backupURLExpiry, "url-expiry", 24*time.Hour, "validity of the printed download link (0 disables it)")
	backupCmd.AddCommand(backupListCmd)
}
