// Command hourlychart renders the hourly temperature chart for one day of
// a saved forecast, without running the server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/swelljoe/dayplanner/internal/hourly"
)

type options struct {
	in     string
	day    string
	tz     string
	width  float64
	height float64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:          "hourlychart",
		Short:        "Render hourly temperature charts from forecast JSON",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.in, "in", "-", "Forecast JSON: a list of hour samples or an object with an \"hourly\" list (- for stdin)")
	root.PersistentFlags().StringVar(&opts.day, "day", "", "Day to plot: unix seconds or YYYY-MM-DD (default: first sample)")
	root.PersistentFlags().StringVar(&opts.tz, "tz", "Local", "Time zone for calendar days")
	root.PersistentFlags().Float64Var(&opts.width, "width", 600, "Chart width in CSS pixels")
	root.PersistentFlags().Float64Var(&opts.height, "height", 200, "Chart height in CSS pixels")

	root.AddCommand(newRenderCmd(&opts), newTooltipCmd(&opts))
	return root
}

func newRenderCmd(opts *options) *cobra.Command {
	var out string
	var dpr float64

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the chart for one day as PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := opts.frame(cmd.InOrStdin())
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := hourly.NewRenderer(opts.width, opts.height, dpr).WritePNG(&buf, frame); err != nil {
				return err
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d samples, %d°..%d°\n", out, frame.Len(), frame.Min, frame.Max)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "chart.png", "Output file (- for stdout)")
	cmd.Flags().Float64Var(&dpr, "dpr", 1, "Device pixel ratio")
	return cmd
}

func newTooltipCmd(opts *options) *cobra.Command {
	var x, y float64

	cmd := &cobra.Command{
		Use:   "tooltip",
		Short: "Print the tooltip for a pointer position over the chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := opts.frame(cmd.InOrStdin())
			if err != nil {
				return err
			}
			tip := hourly.NewLayout(opts.width, opts.height).PointerMove(frame, hourly.Tooltip{}, x, y)
			enc := json.NewEncoder(cmd.OutOrStdout())
			return enc.Encode(tip)
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "Pointer x offset in CSS pixels")
	cmd.Flags().Float64Var(&y, "y", 0, "Pointer y offset in CSS pixels")
	return cmd
}

// frame loads the samples and selects the requested day
func (o *options) frame(stdin io.Reader) (hourly.Frame, error) {
	loc, err := time.LoadLocation(o.tz)
	if err != nil {
		return hourly.Frame{}, fmt.Errorf("invalid --tz: %w", err)
	}

	r := stdin
	if o.in != "-" {
		f, err := os.Open(o.in)
		if err != nil {
			return hourly.Frame{}, err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return hourly.Frame{}, err
	}
	samples, err := decodeSamples(data)
	if err != nil {
		return hourly.Frame{}, err
	}

	day, err := parseDay(o.day, loc)
	if err != nil {
		return hourly.Frame{}, err
	}
	if day == 0 && len(samples) > 0 {
		day = samples[0].Timestamp
	}
	return hourly.SelectDay(samples, day, loc), nil
}

func decodeSamples(data []byte) ([]hourly.HourSample, error) {
	var samples []hourly.HourSample
	if err := json.Unmarshal(data, &samples); err == nil {
		return samples, nil
	}

	var wrapped struct {
		Hourly []hourly.HourSample `json:"hourly"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode forecast: %w", err)
	}
	return wrapped.Hourly, nil
}

func parseDay(s string, loc *time.Location) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ts, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return 0, fmt.Errorf("invalid --day %q: want unix seconds or YYYY-MM-DD", s)
	}
	return t.Unix(), nil
}
