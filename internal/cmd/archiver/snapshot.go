package archiver

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/turbolytics/neoarchive/internal"
	"github.com/turbolytics/neoarchive/internal/archiver"
	"github.com/turbolytics/neoarchive/internal/config"
	"github.com/turbolytics/neoarchive/internal/local"
	"github.com/turbolytics/neoarchive/internal/neows"
	"github.com/turbolytics/neoarchive/internal/parquet"
	"github.com/turbolytics/neoarchive/internal/preserver"
	"github.com/turbolytics/neoarchive/internal/s3"
	"github.com/turbolytics/neoarchive/internal/stdout"
)

func newSnapshotCommand() *cobra.Command {
	var configPath string
	v := viper.New()

	cmd := &cobra.Command{
		Use:          "snapshot",
		Short:        "Invokes a snapshot. The feed is fetched, reshaped and preserved.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c := config.Default()
			if configPath != "" {
				var err error
				if c, err = config.NewFromFile(configPath); err != nil {
					return err
				}
			}
			c.Override(v)

			if err := c.Validate(); err != nil {
				return err
			}

			logger, err := config.NewLogger(c.Logger)
			if err != nil {
				return err
			}
			defer logger.Sync()
			l := logger.Named("archiver.snapshot")

			// Saved responses are replayed as is and need no key.
			var apiKey string
			if !strings.HasPrefix(c.Feed.URL, "file:") {
				if apiKey, err = c.APIKey(); err != nil {
					return err
				}
			}

			source, err := neows.NewFetcher(
				c.Feed.URL,
				apiKey,
				neows.WithLogger(l),
				neows.WithTimeout(c.Feed.Timeout),
			)
			if err != nil {
				return err
			}

			repository, err := newRepository(c.Repository, cmd.OutOrStdout(), l)
			if err != nil {
				return err
			}

			p, err := newPreserver(c.Preserver, repository, l)
			if err != nil {
				return err
			}

			a := archiver.New(
				archiver.WithLogger(l),
				archiver.WithSource(source),
				archiver.WithPreserver(p),
				archiver.WithRepository(repository),
			)

			defer a.Close(ctx)

			catalog, err := a.Snapshot(ctx, c.DateRange())
			if err != nil {
				return err
			}

			l.Info("wrote snapshot",
				zap.String("output", catalog.Output),
				zap.String("repository", c.Repository.Type),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().String("start-date", config.DefaultStartDate, "First day of the feed window (YYYY-MM-DD)")
	cmd.Flags().String("end-date", config.DefaultEndDate, "Last day of the feed window (YYYY-MM-DD)")
	cmd.Flags().String("api-key", "", "NeoWs API key, overrides the key file")
	cmd.Flags().String("api-key-file", config.DefaultAPIKeyFile, "JSON file holding the API key as a string")
	cmd.Flags().String("feed-url", neows.DefaultFeedURL, "Feed endpoint, or file:// URL of a saved response")
	cmd.Flags().Duration("timeout", 0, "HTTP timeout for the feed request")
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir, "Directory for the local repository")
	cmd.Flags().String("repository", "local", "Repository type: local, s3 or stdout")
	cmd.Flags().String("preserver", "json", "Output format: json or parquet")
	cmd.Flags().String("log-level", "info", "Log level")

	for _, name := range []string{
		"start-date", "end-date", "api-key", "api-key-file", "feed-url",
		"timeout", "output-dir", "repository", "preserver", "log-level",
	} {
		v.BindPFlag(name, cmd.Flags().Lookup(name))
	}
	v.SetEnvPrefix("NEOARCHIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

func newRepository(c config.Repository, out io.Writer, l *zap.Logger) (internal.Repository, error) {
	switch c.Type {
	case "local":
		return local.New(
			c.LocalConfig.Path,
			local.WithPrefix(c.LocalConfig.Prefix),
			local.WithLogger(l),
		), nil
	case "s3":
		return s3.New(
			s3.WithLogger(l),
			s3.WithRegion(c.S3Config.Region),
			s3.WithBucket(c.S3Config.Bucket),
			s3.WithEndpoint(c.S3Config.Endpoint),
			s3.WithPrefix(c.S3Config.Prefix),
			s3.WithForcePathStyle(c.S3Config.ForcePathStyle),
		)
	case "stdout":
		return stdout.New(out), nil
	default:
		return nil, fmt.Errorf("unknown repository type: %s", c.Type)
	}
}

func newPreserver(c config.Preserver, repository internal.Repository, l *zap.Logger) (preserver.Preserver, error) {
	switch c.Type {
	case "json":
		return preserver.NewJSON(
			repository,
			preserver.WithLogger(l),
			preserver.WithIndent(c.Indent),
		), nil
	case "parquet":
		return parquet.New(
			parquet.WithLogger(l),
			parquet.WithRepository(repository),
		)
	default:
		return nil, fmt.Errorf("unknown preserver type: %s", c.Type)
	}
}
