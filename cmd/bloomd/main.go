// Copyright (c) 2020 Blocknative Corporation. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command bloomd runs a minimal server exposing the BFADD/BFEXIST/
// BFCOUNT/BFDEBUG surface over a line-oriented TCP protocol.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dataence/bloomd/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "bloomd",
		Short: "Scalable Bloom filter key/value server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":6380", "address to listen on")
	flags.Int("event-buffer", 64, "keyspace notification channel buffer size")
	flags.String("log-level", "info", "log level: debug, info, warn, error")

	v.BindPFlag("addr", flags.Lookup("addr"))
	v.BindPFlag("event-buffer", flags.Lookup("event-buffer"))
	v.BindPFlag("log-level", flags.Lookup("log-level"))
	v.SetEnvPrefix("bloomd")
	v.AutomaticEnv()

	return cmd
}

func run(ctx context.Context, v *viper.Viper) error {
	log := newLogger(v.GetString("log-level"))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := store.New(v.GetInt("event-buffer"))
	go logNotifications(ctx, st, log)

	srv := newServer(st, log)
	return srv.serve(ctx, v.GetString("addr"))
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(h)
}

// logNotifications drains the store's keyspace events so the channel
// never fills up when nothing else is subscribed; a real deployment
// would fan these out to its own keyspace-notification subscribers.
func logNotifications(ctx context.Context, st *store.Store, log *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-st.Notifications():
			log.Debug("keyspace event", "key", ev.Key, "event", ev.Event)
		}
	}
}
