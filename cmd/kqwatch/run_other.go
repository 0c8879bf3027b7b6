//go:build !(darwin || dragonfly || freebsd || netbsd || openbsd)

package main

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"go.uber.org/zap"

	"github.com/Viet-ph/kevent/config"
	custom_err "github.com/Viet-ph/kevent/internal/error"
)

func run(_ context.Context, _ *config.Config, _ *zap.Logger, _ io.Writer) error {
	return fmt.Errorf("%w: %s", custom_err.ErrorUnsupportedPlatform, runtime.GOOS)
}
