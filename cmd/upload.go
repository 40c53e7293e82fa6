// File: cmd/upload.go
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spreado/spreado-cli/internal/config"
	"github.com/spreado/spreado-cli/internal/mediameta"
	"github.com/spreado/spreado-cli/internal/platform"
	"github.com/spreado/spreado-cli/internal/publish"
)

const publishDateLayout = "2006-01-02 15:04"

func newUploadCmd(cfg *config.Config) *cobra.Command {
	var (
		file        string
		title       string
		content     string
		tagsCSV     string
		txtFile     string
		thumbnail   string
		publishDate string
		noAutoLogin bool
	)

	uploadCmd := &cobra.Command{
		Use:   "upload <platform...> --file <video>",
		Short: "Uploads a video to one or more platforms",
		Long: `Uploads a video to one or more platforms in a single run.

Metadata comes from flags or from a sidecar .txt file (first line title,
remaining lines description with #hashtags). Flags override the sidecar.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			adapters := make([]platform.Adapter, 0, len(args))
			for _, name := range args {
				adapter, err := platform.New(name)
				if err != nil {
					return err
				}
				adapters = append(adapters, adapter)
			}

			req := publish.Request{
				MediaFilePath:  file,
				Title:          title,
				Description:    content,
				CoverImagePath: thumbnail,
			}
			if tagsCSV != "" {
				for _, tag := range strings.Split(tagsCSV, ",") {
					if tag = strings.TrimSpace(tag); tag != "" {
						req.Tags = append(req.Tags, tag)
					}
				}
			}

			if err := applySidecar(&req, txtFile); err != nil {
				return err
			}

			if publishDate != "" {
				at, err := time.ParseInLocation(publishDateLayout, publishDate, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --publish-date %q, expected %s", publishDate, publishDateLayout)
				}
				req.ScheduledAt = &at
			}

			comps, err := buildComponents(cfg)
			if err != nil {
				return err
			}

			results := make([]publish.Result, len(adapters))
			g, gctx := errgroup.WithContext(ctx)
			for i, adapter := range adapters {
				g.Go(func() error {
					results[i] = comps.Pipeline.Run(gctx, adapter, req, !noAutoLogin)
					return nil
				})
			}
			_ = g.Wait()

			out := cmd.OutOrStdout()
			failed := 0
			for _, res := range results {
				switch {
				case res.Succeeded && res.Confirmed:
					fmt.Fprintf(out, "%s: published (%s)\n", res.Platform, res.LastURL)
				case res.Succeeded:
					fmt.Fprintf(out, "%s: published, confirmation not observed (%s)\n", res.Platform, res.LastURL)
				default:
					failed++
					fmt.Fprintf(out, "%s: FAILED: %s\n", res.Platform, res.Reason)
				}
				comps.Log.Info("Upload finished",
					zap.String("platform", res.Platform),
					zap.Bool("succeeded", res.Succeeded),
					zap.Bool("confirmed", res.Confirmed),
					zap.Duration("took", res.FinishedAt.Sub(res.StartedAt)))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d uploads failed", failed, len(results))
			}
			return nil
		},
	}

	uploadCmd.Flags().StringVar(&file, "file", "", "video file path (required)")
	uploadCmd.Flags().StringVar(&title, "title", "", "video title")
	uploadCmd.Flags().StringVar(&content, "content", "", "video description")
	uploadCmd.Flags().StringVar(&tagsCSV, "tags", "", "comma-separated tags")
	uploadCmd.Flags().StringVar(&txtFile, "txt", "", "sidecar metadata file (defaults to <video>.txt when present)")
	uploadCmd.Flags().StringVar(&thumbnail, "thumbnail", "", "cover image path")
	uploadCmd.Flags().StringVar(&publishDate, "publish-date", "", `scheduled publish time, "YYYY-MM-DD HH:MM"`)
	uploadCmd.Flags().BoolVar(&noAutoLogin, "no-auto-login", false, "fail instead of opening a login window when the session is invalid")
	_ = uploadCmd.MarkFlagRequired("file")

	return uploadCmd
}

// applySidecar merges sidecar metadata into the request. Explicit flags win;
// the sidecar only fills fields left empty. When --txt is not given, a .txt
// next to the media file is picked up automatically if it exists.
func applySidecar(req *publish.Request, txtFile string) error {
	explicit := txtFile != ""
	if !explicit {
		txtFile = mediameta.SidecarPath(req.MediaFilePath)
		if _, err := os.Stat(txtFile); err != nil {
			return nil
		}
	}

	meta, err := mediameta.Load(txtFile)
	if err != nil {
		if explicit {
			return err
		}
		return nil
	}

	if req.Title == "" {
		req.Title = meta.Title
	}
	if req.Description == "" {
		req.Description = meta.Description
	}
	if len(req.Tags) == 0 {
		req.Tags = meta.Tags
	}
	return nil
}
