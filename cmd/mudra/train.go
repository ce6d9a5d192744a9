package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/gesture"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train gestures from the webcam, then recognize them",
	Long: `Train one gesture per name. For each name, hold the pose in front of the
camera and press q in the preview window; the pose seen last is trained.
If no hand was seen, or a strict registry already holds the pose under
another name, the slot is retried.

Without --gesture the names are asked for interactively, and a name that
turns out to be taken is asked for again. Names given with --gesture must
be new. Unless
--no-recognize is given, recognition starts once training is done.

Example:
  mudra train
  mudra train --gesture fist --gesture palm`,
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().StringArray("gesture", nil, "Gesture name to train (repeatable)")
	trainCmd.Flags().Bool("reset", false, "Forget stored gestures before training")
	trainCmd.Flags().Bool("no-recognize", false, "Exit after training instead of recognizing")
	trainCmd.Flags().Bool("print", false, "Print each recognition to stdout")
	trainCmd.Flags().Bool("dump", false, "Print the landmarks of each recognized hand")
}

func runTrain(cmd *cobra.Command, args []string) error {
	names := mustGetStringArray(cmd, "gesture")
	reset := mustGetBool(cmd, "reset")
	noRecognize := mustGetBool(cmd, "no-recognize")
	printAll := mustGetBool(cmd, "print")
	dump := mustGetBool(cmd, "dump")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s, err := openSession(app.NewWindow(windowTitle, 1))
	if err != nil {
		return err
	}
	defer s.Close()

	if reset {
		if err := s.app.Reset(); err != nil {
			return fmt.Errorf("failed to reset gestures: %w", err)
		}
	}

	registry := s.app.Registry()
	var (
		prompt *prompter
		rename func(string) (string, error)
	)
	if len(names) == 0 {
		prompt = newPrompter(os.Stdin, os.Stdout)
		names, err = prompt.names(trainedNames(registry))
		if err != nil {
			return err
		}
		rename = func(name string) (string, error) {
			return prompt.name(fmt.Sprintf("New name for gesture %q: ", name), trainedNames(registry))
		}
	} else if err := checkNames(names, registry); err != nil {
		return err
	}

	for _, name := range names {
		if err := trainSlot(ctx, s.app, name, os.Stdout, rename); err != nil {
			return err
		}
	}

	fmt.Println("Training completed.")
	printGestures(os.Stdout, registry.Entries())

	if noRecognize {
		return nil
	}

	if prompt != nil {
		if _, err := prompt.line("Ready for recognition? "); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}
	fmt.Println("Now recognizing, press q to quit")
	return s.app.Recognize(ctx, reporter(os.Stdout, printAll, dump))
}

func trainedNames(r *gesture.Registry) map[string]bool {
	taken := make(map[string]bool)
	for _, name := range r.Names() {
		taken[name] = true
	}
	return taken
}

// checkNames rejects names given on the command line before any capture
// starts: empty names, repeats and names already trained.
func checkNames(names []string, r *gesture.Registry) error {
	taken := trainedNames(r)
	for _, name := range names {
		if name == "" {
			return gesture.ErrEmptyName
		}
		if taken[name] {
			return fmt.Errorf("%w: %q", gesture.ErrDuplicateName, name)
		}
		taken[name] = true
	}
	return nil
}

// trainSlot trains one gesture, retrying while no hand is seen or the pose
// is refused. A taken name is replaced through rename; without rename it
// ends training.
func trainSlot(ctx context.Context, a *app.App, name string, out io.Writer, rename func(string) (string, error)) error {
	for {
		fmt.Fprintf(out, "Show %q and press %c\n", name, app.KeyQuit)

		sig, err := a.TrainGesture(ctx, name)
		switch {
		case err == nil:
			fmt.Fprintf(out, "Trained %q as %v\n", name, sig)
			return nil
		case errors.Is(err, gesture.ErrNothingCaptured):
			fmt.Fprintln(out, "Could not find any gestures, try again")
		case errors.Is(err, gesture.ErrDuplicateSignature):
			fmt.Fprintf(out, "%v, try another pose\n", err)
		case errors.Is(err, gesture.ErrDuplicateName) && rename != nil:
			fmt.Fprintln(out, err)
			if name, err = rename(name); err != nil {
				return err
			}
		default:
			return fmt.Errorf("train %q: %w", name, err)
		}
	}
}

func printGestures(out io.Writer, entries []gesture.Entry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIGNATURE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.Name, e.Signature)
	}
	w.Flush()
}
