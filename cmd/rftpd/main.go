// Command rftpd runs a single-host FTP server over a sandboxed directory.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	gklog "github.com/go-kit/kit/log"
	"github.com/spf13/cobra"

	"github.com/powerfooI/rftp/internal/driver"
	"github.com/powerfooI/rftp/internal/ftpserver"
	"github.com/powerfooI/rftp/internal/logging"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		host   string
		port   int
		folder string
	)

	cmd := &cobra.Command{
		Use:   "rftpd",
		Short: "rftpd serves a sandboxed directory over FTP",
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(host, port, folder)
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "bind IP for the control port")
	cmd.Flags().IntVar(&port, "port", 21, "control port")
	cmd.Flags().StringVar(&folder, "folder", "./", "root directory to serve")

	return cmd
}

func run(host string, port int, folder string) error {
	root, err := filepath.Abs(folder)
	if err != nil {
		return fmt.Errorf("could not canonicalize root %q: %w", folder, err)
	}

	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return fmt.Errorf("could not canonicalize root %q: %w", folder, err)
	}

	fsDriver, err := driver.NewOS(root)
	if err != nil {
		return fmt.Errorf("could not open root %q: %w", root, err)
	}

	logger := logging.NewGoKit(gklog.NewLogfmtLogger(gklog.NewSyncWriter(os.Stdout)))

	settings := ftpserver.DefaultSettings()
	settings.ListenAddr = fmt.Sprintf("%s:%d", host, port)
	settings.Root = root

	server := ftpserver.NewServer(settings, fsDriver, logger)

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}

		return nil
	case <-sigCh:
		logger.Info("shutting down", "reason", "signal")

		if err := server.Stop(); err != nil {
			return fmt.Errorf("could not stop server cleanly: %w", err)
		}

		select {
		case <-errCh:
		case <-time.After(5 * time.Second):
		}

		return nil
	}
}
