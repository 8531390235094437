package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwulff/bptrack/internal/bloodpressure"
	"github.com/jwulff/bptrack/internal/pixoo"
	"github.com/jwulff/bptrack/internal/render"
	"github.com/jwulff/bptrack/internal/view"
)

// dashboard composes the LED frame from the app's current state.
func (a *app) dashboard() *render.Frame {
	today := now()
	all := a.readings.All()

	data := render.DashboardData{
		Month: view.BuildMonth(all, today.Year(), today.Month(), today),
	}
	if sorted := bloodpressure.SortByTimestamp(all, true); len(sorted) > 0 {
		data.Latest = &sorted[0]
	}
	if active, ok := a.alerts.Active(); ok {
		data.Alert = &active
	}
	return render.ComposeDashboard(data)
}

func previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Print an ASCII preview of the LED dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "64x64 Frame Preview:")
				fmt.Fprintln(out)
				fmt.Fprint(out, render.Preview(a.dashboard()))
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Legend: █=bright ▓=medium ▒=dim ░=faint ·=very dim (space)=off")
				return nil
			})
		},
	}
}

func displayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "display [ip]",
		Short: "Push the dashboard to a Pixoo64",
		Long: `Render the latest reading, this month's calendar and any active alert and
send the frame to a Divoom Pixoo64 on the local network. The address defaults
to pixoo.ip from the config file or PIXOO_IP.

With --watch the dashboard is re-read from storage and re-sent on every tick
until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetDuration("watch")
			brightness, _ := cmd.Flags().GetInt("brightness")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var client *pixoo.Client
			send := func() error {
				return withApp(ctx, func(a *app) error {
					if client == nil {
						ip := a.cfg.Pixoo.IP
						if len(args) == 1 {
							ip = args[0]
						}
						if ip == "" {
							return errors.New("no Pixoo address: pass one or set PIXOO_IP")
						}
						if !cmd.Flags().Changed("brightness") {
							brightness = a.cfg.Pixoo.Brightness
						}
						client = pixoo.NewClient(ip, a.logger)

						reqCtx, cancel := context.WithTimeout(ctx, pixoo.DefaultTimeout)
						defer cancel()
						if !client.IsReachable(reqCtx) {
							return fmt.Errorf("cannot reach Pixoo at %s", ip)
						}
						if err := client.SetBrightness(reqCtx, brightness); err != nil {
							return fmt.Errorf("failed to set brightness: %w", err)
						}
					}

					reqCtx, cancel := context.WithTimeout(ctx, pixoo.DefaultTimeout)
					defer cancel()
					return client.Push(reqCtx, a.dashboard())
				})
			}

			out := cmd.OutOrStdout()
			if err := send(); err != nil {
				return err
			}
			fmt.Fprintf(out, "[%s] Frame sent\n", now().Format("15:04:05"))
			if watch <= 0 {
				return nil
			}

			ticker := time.NewTicker(watch)
			defer ticker.Stop()
			fmt.Fprintf(out, "Updating every %s. Press Ctrl+C to stop\n", watch)

			for {
				select {
				case <-ticker.C:
					if err := send(); err != nil {
						fmt.Fprintf(out, "[%s] Error: %v\n", now().Format("15:04:05"), err)
						continue
					}
					fmt.Fprintf(out, "[%s] Frame sent\n", now().Format("15:04:05"))
				case <-ctx.Done():
					fmt.Fprintln(out, "Stopping...")
					return nil
				}
			}
		},
	}

	cmd.Flags().Duration("watch", 0, "Re-send at this interval, e.g. 1m (default send once)")
	cmd.Flags().Int("brightness", 0, "Display brightness 0-100 (overrides pixoo.brightness from config)")
	return cmd
}
