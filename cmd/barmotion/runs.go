package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/barmotion/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMPOSITION\tTIME\tFORMAT\tSIZE\tFRAMES\tMOTION")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dx%d\t%d-%d\t%s\n",
			run.ID,
			run.Composition,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Format,
			run.Width, run.Height,
			run.From, run.To,
			run.Motion,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if asJSON {
		return st.ExportJSON(os.Stdout, args[0])
	}

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "run\t%s\n", meta.ID)
	fmt.Fprintf(w, "composition\t%s\n", meta.Composition)
	fmt.Fprintf(w, "fingerprint\t%s\n", meta.Fingerprint)
	fmt.Fprintf(w, "time\t%s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "format\t%s\n", meta.Format)
	fmt.Fprintf(w, "size\t%dx%d @ %d fps\n", meta.Width, meta.Height, meta.FPS)
	fmt.Fprintf(w, "frames\t[%d, %d)\n", meta.From, meta.To)
	fmt.Fprintf(w, "motion\t%s\n", meta.Motion)
	if meta.SettleFrame > 0 {
		fmt.Fprintf(w, "settles at\tframe %d\n", meta.SettleFrame)
	}
	fmt.Fprintf(w, "rendered\t%d (%d cached)\n", meta.Rendered, meta.CacheHits)
	fmt.Fprintf(w, "elapsed\t%.1fms\n", meta.ElapsedMs)
	fmt.Fprintf(w, "files\t%d\n", len(meta.Files))
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, err := st.LoadProgress(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	progress := make([]float64, len(rows))
	widths := make([]float64, len(rows))
	for i, r := range rows {
		progress[i] = r.Progress
		widths[i] = r.TopWidth
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("composition: %s\n", meta.Composition)
	fmt.Printf("frames: %d\n\n", len(rows))

	fmt.Println(asciigraph.Plot(progress,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("progress"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(widths,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("top bar width (px)"),
	))
	return nil
}
