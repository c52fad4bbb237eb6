// Package inspect runs the subscription inspection from the command line.
package inspect

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"userbot/internal/application/subscription/usecases"
	"userbot/internal/infrastructure/config"
	"userbot/internal/interfaces/container"
	apperrors "userbot/internal/shared/errors"
	"userbot/internal/shared/logger"
)

// Inspector is satisfied by the subscription inspection use case.
type Inspector interface {
	Execute(ctx context.Context, text string) (*usecases.InspectResult, error)
}

func NewCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "cha [text with subscription links...]",
		Short: "Inspect subscription links",
		Long:  `Inspect every subscription link in the arguments, or in standard input when no arguments are given, and print the report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := logger.Init(&cfg.Logger, false); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			// keep stdout for the report
			logger.SetLevel(logger.ParseLevel("warn"))

			app := container.NewInspectorContainer(cfg, logger.NewLogger())
			return run(cmd.Context(), app.Inspector, args, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func run(ctx context.Context, inspector Inspector, args []string, stdin io.Reader, stdout io.Writer) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}

	result, err := inspector.Execute(ctx, text)
	if err != nil {
		if appErr := apperrors.GetAppError(err); appErr != nil {
			return fmt.Errorf("%s", appErr.Message)
		}
		return err
	}

	_, err = fmt.Fprint(stdout, strings.TrimRight(result.Text, "\n")+"\n")
	return err
}
