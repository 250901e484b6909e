package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/ayusman/mudra/internal/store"
	"github.com/spf13/cobra"
)

var capturesCmd = &cobra.Command{
	Use:   "captures",
	Short: "List saved screenshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := db.Captures()
		captures, err := repo.List(0)
		if err != nil {
			return fmt.Errorf("failed to list captures: %w", err)
		}
		total, err := repo.Count()
		if err != nil {
			return fmt.Errorf("failed to count captures: %w", err)
		}
		printCaptures(cmd.OutOrStdout(), captures, total)
		return nil
	},
}

var capturesRmCmd = &cobra.Command{
	Use:   "rm ID...",
	Short: "Delete screenshots and their history records",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, id := range args {
			path, err := removeCapture(db.Captures(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", path)
		}
		return nil
	},
}

func init() {
	capturesCmd.AddCommand(capturesRmCmd)
	rootCmd.AddCommand(capturesCmd)
}

func printCaptures(out io.Writer, captures []*store.Capture, total int) {
	if len(captures) == 0 {
		fmt.Fprintln(out, "No captures recorded.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTAKEN\tSIZE\tPATH")
	fmt.Fprintln(w, "--\t-----\t----\t----")

	for _, c := range captures {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\n", c.ID, c.TakenAt.Local().Format("2006-01-02 15:04:05"), c.Width, c.Height, c.Path)
	}
	w.Flush()
	fmt.Fprintf(out, "\n%d captures\n", total)
}

// removeCapture deletes the screenshot file recorded under id and then its
// record. A file already gone from disk is not an error.
func removeCapture(repo *store.CaptureRepository, id string) (string, error) {
	c, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("no capture with id %s", id)
		}
		return "", fmt.Errorf("failed to look up capture %s: %w", id, err)
	}

	if err := os.Remove(c.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to remove %s: %w", c.Path, err)
	}
	if err := repo.Delete(id); err != nil {
		return "", fmt.Errorf("failed to delete capture %s: %w", id, err)
	}
	return c.Path, nil
}
