package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/tray"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Recognize headlessly and serve results over HTTP",
	Long: `Run recognition without a preview window and expose:

  GET    /api/health
  GET    /api/gestures
  POST   /api/gestures          {"name": "...", "signature": "100-11111"}
  GET    /api/gestures/{name}
  DELETE /api/gestures/{name}
  GET    /api/recognitions      WebSocket stream of recognitions`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().Bool("tray", false, "Show a system tray menu")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := mustGetString(cmd, "addr")
	withTray := mustGetBool(cmd, "tray")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s, err := openSession(app.Headless{})
	if err != nil {
		return err
	}
	defer s.Close()

	if addr == "" {
		addr = s.cfg.Server.Addr
	}

	hub := server.NewHub(s.log)
	srv := server.New(server.Config{
		Log:     s.log,
		Catalog: s.app,
		Hub:     hub,
	})

	var t *tray.Tray
	if withTray {
		t = tray.New()
		t.OnPause(s.app.SetPaused)
		t.OnQuit(cancel)
		t.SetTrained(s.app.Registry().Len())
	}

	last := ""
	onResult := func(r app.Recognition) {
		hub.Publish(r)
		if t != nil && r.Name != last {
			t.SetLastGesture(r.Name)
			t.SetTrained(s.app.Registry().Len())
		}
		last = r.Name
	}

	errCh := make(chan error, 2)
	go func() {
		errCh <- srv.ListenAndServe(ctx, addr)
	}()
	go func() {
		errCh <- s.app.Recognize(ctx, onResult)
	}()

	if t != nil {
		go func() {
			<-ctx.Done()
			t.Quit()
		}()
		t.Run()
	}

	// The first to finish stops the other.
	err = <-errCh
	cancel()
	if err2 := <-errCh; err == nil {
		err = err2
	}
	return err
}
