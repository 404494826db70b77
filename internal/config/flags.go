// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args (without the program name).
//
// Flags:
//
//	-a panel base URL used by the client
//	-k client API key
//	-s server UUID
//	-log-file client log file path
//	-d snapshot database DSN (SQLite file)
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "15s")
//	-retry-count transport retry count
//	-evict-after cache eviction delay (e.g., "30s")
//	-stale-retries re-issued revalidations after a stale discard
//	-notes-debounce notes quiescence window (e.g., "750ms")
//	-revalidate-interval background revalidation interval (e.g., "1m")
//	-listen stub server listen address in format [host]:[port]
//	-latency stub server artificial latency
//	-rate-limit stub server requests per second
func ParseFlags(args []string) (*StructuredConfig, error) {
	var listenAddress NetAddress
	var adapterAddress, apiKey, serverUUID, logFile string
	var databaseDSN string
	var jsonConfigPath string
	var requestTimeout, evictAfter, notesDebounce, revalidateInterval, latency time.Duration
	var retryCount, staleRetries, rateLimit int

	fs := flag.NewFlagSet("panel", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&adapterAddress, "a", "", "Panel base URL")
	fs.StringVar(&apiKey, "k", "", "Client API key")
	fs.StringVar(&serverUUID, "s", "", "Server UUID")
	fs.StringVar(&logFile, "log-file", "", "Client log file")
	fs.StringVar(&databaseDSN, "d", "", "Snapshot database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	fs.IntVar(&retryCount, "retry-count", 0, "Transport retry count")
	fs.DurationVar(&evictAfter, "evict-after", 0, "Cache eviction delay (e.g., 30s)")
	fs.IntVar(&staleRetries, "stale-retries", 0, "Re-issued revalidations after a stale discard")
	fs.DurationVar(&notesDebounce, "notes-debounce", 0, "Notes quiescence window (e.g., 750ms)")
	fs.DurationVar(&revalidateInterval, "revalidate-interval", 0, "Background revalidation interval (e.g., 1m)")
	fs.Var(&listenAddress, "listen", "Stub server listen address host:port")
	fs.DurationVar(&latency, "latency", 0, "Stub server latency (e.g., 300ms)")
	fs.IntVar(&rateLimit, "rate-limit", 0, "Stub server requests per second")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			APIKey:     apiKey,
			ServerUUID: serverUUID,
			LogFile:    logFile,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: requestTimeout,
			RetryCount:     retryCount,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Cache: Cache{
			EvictAfter:   evictAfter,
			StaleRetries: staleRetries,
		},
		Workers: Workers{
			NotesDebounce:      notesDebounce,
			RevalidateInterval: revalidateInterval,
		},
		Server: Server{
			HTTPAddress: listenAddress.String(),
			Latency:     latency,
			RateLimit:   rateLimit,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress, or an empty
// string when neither part is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
