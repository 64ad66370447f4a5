package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/philipparndt/throwplan/internal/debug"
	"github.com/philipparndt/throwplan/internal/server"
	"github.com/philipparndt/throwplan/pkg/store"
	"github.com/spf13/cobra"
)

var (
	serveAddr    string
	serveNoStore bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a planner session over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addSessionFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveNoStore, "no-store", false, "disable the project store endpoints")
}

func runServe(cmd *cobra.Command, args []string) error {
	p, err := openSession(cmd.Context(), settingsFile, drawingFile, drawingPage)
	if err != nil {
		return err
	}

	var st *store.Store
	if !serveNoStore {
		st, err = store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	srv := server.New(p, st)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		debug.Info("Shutting down")
		srv.Shutdown()
	}()

	return srv.Listen(addr)
}
