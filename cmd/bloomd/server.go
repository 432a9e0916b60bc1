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

package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/dataence/bloomd/internal/command"
	"github.com/dataence/bloomd/internal/store"
)

// server is the thin, line-oriented transport that turns
// internal/command.Dispatch into something runnable over TCP. It is not
// a RESP-compatible server: spec.md places the wire/command dispatch
// layer out of scope for the engine, so this exists only to exercise
// internal/command and internal/store end to end.
type server struct {
	st  *store.Store
	log *slog.Logger
}

func newServer(st *store.Store, log *slog.Logger) *server {
	return &server{st: st, log: log}
}

func (s *server) serve(ctx context.Context, addr string) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	defer ln.Close()

	s.log.Info("listening", "addr", addr)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return fmt.Errorf("accept: %w", err)
			}
		}
		go s.handleConn(conn)
	}
}

func (s *server) handleConn(conn net.Conn) {
	defer conn.Close()
	addr := conn.RemoteAddr().String()
	s.log.Debug("connection opened", "remote", addr)

	defer func() {
		if r := recover(); r != nil {
			// Allocation failures (spec.md §7 Fatal) surface to the host
			// as a panic; a real host would tear down on this. Here we
			// only drop the one connection that triggered it.
			s.log.Error("panic handling connection", "remote", addr, "panic", r)
		}
	}()

	scanner := bufio.NewScanner(conn)
	w := bufio.NewWriter(conn)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		argv := strings.Fields(line)

		reply := command.Dispatch(s.st, argv)
		fmt.Fprintln(w, reply.String())
		if err := w.Flush(); err != nil {
			s.log.Warn("write failed", "remote", addr, "err", err)
			return
		}
	}
}
