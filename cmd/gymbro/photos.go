package gymbro

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/model"
	"github.com/saadjs/gymbro/internal/service"
)

var photosCmd = &cobra.Command{
	Use:   "photos",
	Short: "Upload and list progress photos (upgraded accounts)",
}

var photosUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a progress photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open photo: %w", err)
		}
		defer f.Close()
		return withSession(cmd, func(e *env) error {
			photos, err := service.UploadProgressPhoto(e.ctx, e.session, filepath.Base(args[0]), f, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (%d photo(s))\n", filepath.Base(args[0]), len(photos))
			return nil
		})
	},
}

var photosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List progress photos with public URLs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			photos, err := service.ListProgressPhotos(e.ctx, e.session)
			if err != nil {
				return err
			}
			printPhotos(cmd, photos)
			return nil
		})
	},
}

func printPhotos(cmd *cobra.Command, photos []model.ProgressPhoto) {
	fmt.Fprintln(cmd.OutOrStdout(), "CREATED\tNAME\tURL")
	for _, p := range photos {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.CreatedAt.Format(time.RFC3339), p.Name, p.URL)
	}
}

func init() {
	rootCmd.AddCommand(photosCmd)
	photosCmd.AddCommand(photosUploadCmd, photosListCmd)
}
