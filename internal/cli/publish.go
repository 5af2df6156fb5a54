package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ivlev/scene2video/internal/publish"
)

// PublishResult is the JSON payload of the publish command.
type PublishResult struct {
	File string `json:"file"`
	URL  string `json:"url"`
}

type publishOptions struct {
	key string
}

// NewPublishCommand creates the publish command.
func NewPublishCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &publishOptions{}

	cmd := &cobra.Command{
		Use:   "publish <file>",
		Short: "Copy a finished artifact to the publish directory and print its URL",
		Long: `Copy a rendered video or timeline into the publish directory
(SCENE2VIDEO_PUBLISH_DIR, default output/published) and print the URL it is
served from (SCENE2VIDEO_PUBLIC_BASE_URL). Without --key a random name is used.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.key, "key", "", "destination key (relative path) under the publish directory")
	return cmd
}

func runPublish(rootOpts *RootOptions, opts *publishOptions, file string, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd)
	cfg := rootOpts.Config

	var pub publish.Publisher = publish.NewDirPublisher(cfg.PublishDir, cfg.PublicBaseURL)
	url, err := pub.Publish(cmd.Context(), file, opts.key)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodePublish, "failed to publish", err, nil)
	}

	return f.Success(PublishResult{File: file, URL: url}, func(w io.Writer) {
		fmt.Fprintf(w, "[*] Published: %s\n", url)
	})
}
