package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/app"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize",
	Short: "Recognize stored gestures from the webcam",
	Long: `Label every frame with the trained gesture it matches, or "unknown".
Gestures come from the database configured by store.path, so train them
there first. Press q in the preview window to quit.`,
	RunE: runRecognize,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)

	recognizeCmd.Flags().Bool("print", false, "Print each recognition to stdout")
	recognizeCmd.Flags().Bool("dump", false, "Print the landmarks of each recognized hand")
}

func runRecognize(cmd *cobra.Command, args []string) error {
	printAll := mustGetBool(cmd, "print")
	dump := mustGetBool(cmd, "dump")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s, err := openSession(app.NewWindow(windowTitle, 1))
	if err != nil {
		return err
	}
	defer s.Close()

	if s.app.Registry().Len() == 0 {
		return fmt.Errorf("no gestures trained; run mudra train with store.path set")
	}

	return s.app.Recognize(ctx, reporter(os.Stdout, printAll, dump))
}

// reporter prints a line, and optionally the hand's landmarks, whenever the
// recognized gesture changes. It returns nil when there is nothing to print.
func reporter(out io.Writer, printAll, dump bool) func(app.Recognition) {
	if !printAll && !dump {
		return nil
	}
	last := ""
	return func(r app.Recognition) {
		if r.Name == last {
			return
		}
		last = r.Name
		if printAll {
			fmt.Fprintf(out, "%s\t%s\t%s\n", r.Time.Format("15:04:05.000"), r.Signature, r.Name)
		}
		if dump {
			if err := r.Detail.Dump(out); err != nil {
				fmt.Fprintf(os.Stderr, "dump: %v\n", err)
			}
		}
	}
}
