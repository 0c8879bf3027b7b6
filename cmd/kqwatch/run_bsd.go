//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Viet-ph/kevent/config"
	"github.com/Viet-ph/kevent/internal/multiplexer"
	"github.com/Viet-ph/kevent/internal/watcher"
)

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	kq, err := multiplexer.New(cfg.MaxEvents, logger)
	if err != nil {
		return err
	}
	defer kq.Close()

	w := watcher.New(cfg, kq, func(n watcher.Notification) {
		fmt.Fprintln(out, n)
	}, logger)
	defer w.Close()

	if err := w.Register(); err != nil {
		return err
	}

	logger.Info("kqwatch started",
		zap.Int("watches", w.Registry().Len()),
		zap.Duration("timeout", cfg.Timeout()),
		zap.Int("max_events", cfg.MaxEvents),
	)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("kqwatch stopped")
	return nil
}
