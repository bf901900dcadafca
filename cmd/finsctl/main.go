// Command finsctl is a minimal command-line client for reading memory,
// identity, status and clock values from a FINS PLC over UDP.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/vidarsson/finsgo/fins"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (overrides the flags below)")
		host       = flag.String("host", "", "PLC host")
		port       = flag.Int("port", 9600, "PLC port")
		timeout    = flag.Float64("timeout", 5, "timeout in seconds")
		debug      = flag.Bool("debug", false, "populate envelope debug traces")
	)
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: finsctl [-config file | -host h -port p] <read ADDR [TYPE [COUNT]]|identity|status|clock>")
		os.Exit(2)
	}

	var cfg fins.Config
	var err error
	if *configPath != "" {
		cfg, err = fins.LoadConfig(*configPath)
	} else {
		cfg = fins.Config{Host: *host, Port: *port, TimeoutSeconds: *timeout, Debug: *debug}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	client, err := fins.NewClient(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect error:", err)
		os.Exit(1)
	}
	defer client.Close()

	var envelope fins.Envelope
	switch args := flag.Args(); args[0] {
	case "read":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "read requires an address")
			os.Exit(2)
		}
		dataType := "INT16"
		if len(args) >= 3 {
			dataType = args[2]
		}
		count := 0
		if len(args) >= 4 {
			n, err := strconv.Atoi(args[3])
			if err != nil {
				fmt.Fprintln(os.Stderr, "invalid count:", err)
				os.Exit(2)
			}
			count = n
		}
		envelope = client.Read(args[1], dataType, count, 0)
	case "identity":
		envelope = client.CPUIdentityRead(0)
	case "status":
		envelope = client.CPUStatusRead(0)
	case "clock":
		envelope = client.ClockRead(0)
	default:
		fmt.Fprintln(os.Stderr, "unknown operation:", args[0])
		os.Exit(2)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(envelope)

	if envelope.Status != fins.StatusSuccess {
		os.Exit(1)
	}
}
