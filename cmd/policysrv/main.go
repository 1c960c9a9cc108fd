package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"github.com/vctt94/pokerenv/pkg/logging"
	"github.com/vctt94/pokerenv/pkg/policy"
	"github.com/vctt94/pokerenv/pkg/policyrpc"
)

func main() {
	var (
		host       string
		port       int
		portFile   string
		spec       string
		seed       int64
		debugLevel string
	)
	flag.StringVar(&host, "host", "127.0.0.1", "Host to listen on")
	flag.IntVar(&port, "port", 0, "Port to listen on (0 for random free port)")
	flag.StringVar(&portFile, "portfile", "", "If set, write selected port to this file")
	flag.StringVar(&spec, "policy", "random", "Policy to serve: random, call, fold or raise")
	flag.Int64Var(&seed, "seed", 0, "Deterministic RNG seed for the random policy (0 = random)")
	flag.StringVar(&debugLevel, "debuglevel", "info", "Logging level: trace, debug, info, warn, error")
	flag.Parse()

	// Logging backend
	logBackend, err := logging.NewLogBackend(logging.LogConfig{DebugLevel: debugLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logging: %v\n", err)
		os.Exit(1)
	}
	defer logBackend.Close()
	log := logBackend.Logger("RPC")

	// Only local policies can be served; human and remote have no options.
	p, err := policy.FromSpec(spec, seed, policy.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid policy: %v\n", err)
		os.Exit(1)
	}

	// Insecure gRPC for local use
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to listen: %v\n", err)
		os.Exit(1)
	}

	grpcSrv := grpc.NewServer()
	policyrpc.RegisterPolicyServer(grpcSrv, policyrpc.NewServer(p, log))

	// Optionally write chosen port
	if portFile != "" {
		if err := writePortFile(portFile, lis.Addr()); err != nil {
			log.Errorf("Unable to write port file: %v", err)
			os.Exit(1)
		}
	}

	log.Infof("Serving %s policy on %s", spec, lis.Addr())

	// Serve (blocking)
	if err := grpcSrv.Serve(lis); err != nil {
		fmt.Fprintf(os.Stderr, "grpc serve error: %v\n", err)
		os.Exit(1)
	}
}

// writePortFile stores the port of addr in path.
func writePortFile(path string, addr net.Addr) error {
	_, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(port), 0600)
}
