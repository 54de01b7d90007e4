package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
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

// ParseFlags parses the command line arguments of the process.
//
// Flags:
//
//	-a session API address in format [host]:[port]
//	-peer peer session API address (mirror client)
//	-d item store DSN ("memory" or a directory of sqlite databases)
//	-state-dir directory of persisted sync state
//	-state-backend sync state backend ("file" or "sqlite")
//	-categories comma separated category filter
//	-collections comma separated enabled collections
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-interval mirror job period (e.g., "5m")
//	-c/-config json file path with configs
func ParseFlags() (*StructuredConfig, error) {
	return parseFlagSet(os.Args[0], os.Args[1:])
}

func parseFlagSet(name string, args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	var serverAddress NetAddress
	var peerAddress string
	var databaseDSN string
	var stateDir, stateBackend string
	var categories, collections string
	var requestTimeout, syncInterval time.Duration
	var jsonConfigPath string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&peerAddress, "peer", "", "Peer session API address")
	fs.StringVar(&databaseDSN, "d", "", "Item store DSN")
	fs.StringVar(&stateDir, "state-dir", "", "Sync state directory")
	fs.StringVar(&stateBackend, "state-backend", "", "Sync state backend (file, sqlite)")
	fs.StringVar(&categories, "categories", "", "Comma separated category filter")
	fs.StringVar(&collections, "collections", "", "Comma separated collections")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Mirror job period (e.g., 5m)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			FilterCategories: splitList(categories),
			Collections:      splitList(collections),
		},
		Storage: Storage{
			State: State{
				Backend: stateBackend,
				Dir:     stateDir,
			},
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    peerAddress,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// splitList splits a comma separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the default server address.
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

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
