package service

import (
	"context"
	"fmt"

	"blogengine/app/controllers"
	"blogengine/app/models"
	"blogengine/app/services"

	"github.com/spf13/cobra"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process blog commands from standard input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openStore(ctx, opts.cfg.Store)
			if err != nil {
				return err
			}
			defer func() {
				if err := st.close(context.Background()); err != nil {
					opts.logger.Error().Err(err).Msg("failed to close store")
				}
			}()
			opts.logger.Info().
				Str("store", opts.cfg.Store.Driver).
				Str("location", st.location).
				Msg("store opened")

			clock := models.NewClock()
			cc := controllers.NewCommandController(
				services.NewUserService(st.users, clock),
				services.NewPostService(st.posts, st.users, clock),
				services.NewCommentService(st.posts, clock),
				services.NewSearchService(st.posts),
				cmd.OutOrStdout(), cmd.ErrOrStderr(),
				opts.logger,
			)

			fmt.Fprintln(cmd.OutOrStdout(), controllers.Banner)
			return cc.Run(ctx, cmd.InOrStdin())
		},
	}
}
