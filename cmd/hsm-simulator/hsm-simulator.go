/*
Copyright 2020, PaySim Labs

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package main is the entry point of hsm-simulator, a payment HSM simulator
// speaking the framed command protocol over TCP.
package main

import (
	"context"
	"flag"
	"os"
	"syscall"

	"github.com/hashicorp/vault/api"
	log "github.com/sirupsen/logrus"
	"go.opencensus.io/trace"

	"github.com/paysimlabs/hsmsim/cmd"
	"github.com/paysimlabs/hsmsim/command"
	"github.com/paysimlabs/hsmsim/keystore"
	"github.com/paysimlabs/hsmsim/logging"
	"github.com/paysimlabs/hsmsim/server"
	"github.com/paysimlabs/hsmsim/utils"
)

// ServiceName for logging and metrics labels.
const ServiceName = "hsm-simulator"

// DefaultConfigPath relative path to config which will be parsed as default
var DefaultConfigPath = utils.GetConfigPathByName(ServiceName)

func main() {
	loggingFormat := flag.String("logging_format", "plaintext", "Logging format: plaintext, json or CEF")
	incomingConnectionString := flag.String("incoming_connection_string", "tcp://0.0.0.0:1500", "Connection string to listen like tcp://x.x.x.x:yyyy")
	incomingConnectionMax := flag.Int("incoming_connection_max", 0, "Maximum simultaneous connections (0 - unlimited)")
	prometheusAddress := flag.String("incoming_connection_prometheus_metrics_string", "", "URL which will be used to expose Prometheus metrics (use <URL>/metrics address to pull metrics)")
	lmkHex := flag.String("lmk", keystore.DefaultLMKHex, "Local master key as 32 hex characters")
	messageHeader := flag.String("header", "", "Fixed header every request must carry and every response is prefixed with")
	skipParity := flag.Bool("skip_parity_check", false, "Disable odd parity checks on decrypted working keys")
	approveAll := flag.Bool("approve_all", false, "Override PIN verification failures with success")
	vaultAddress := flag.String("vault_connection_api_string", "", "Connection string (http://x.x.x.x:yyyy) for loading the LMK from HashiCorp Vault")
	vaultSecretsPath := flag.String("vault_secrets_path", "secret/", "KV Secret Path for the LMK in HashiCorp Vault")
	verbose := flag.Bool("v", false, "Log to stderr all INFO, WARNING and ERROR logs")
	debug := flag.Bool("d", false, "Log everything to stderr")
	cmd.RegisterTracingCmdParameters()
	cmd.RegisterJaegerCmdParameters()

	logging.CustomizeLogging(*loggingFormat, ServiceName)

	if err := cmd.Parse(DefaultConfigPath); err != nil {
		log.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorCantReadServiceConfig).WithError(err).
			Errorln("Can't parse args")
		os.Exit(1)
	}

	// if log format was overridden
	logging.CustomizeLogging(*loggingFormat, ServiceName)
	if *debug {
		logging.SetLogLevel(logging.LogDebug)
	} else if *verbose {
		logging.SetLogLevel(logging.LogVerbose)
	} else {
		logging.SetLogLevel(logging.LogDiscard)
	}

	log.WithField("version", utils.VERSION).Infof("Starting service %v [pid=%v]", ServiceName, os.Getpid())

	lmk, err := loadLMK(*vaultAddress, *vaultSecretsPath, *lmkHex)
	if err != nil {
		log.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorCantInitLMK).WithError(err).
			Errorln("Can't initialize LMK")
		os.Exit(1)
	}

	sigHandler, err := cmd.NewSignalHandler([]os.Signal{os.Interrupt, syscall.SIGTERM})
	if err != nil {
		log.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorCantRegisterSignalHandler).WithError(err).
			Errorln("Can't register signal handler")
		os.Exit(1)
	}

	if *prometheusAddress != "" {
		server.RegisterMetrics()
		prometheusListener, _, err := cmd.RunPrometheusHTTPHandler(*prometheusAddress)
		if err != nil {
			log.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorPrometheusHTTPHandler).WithError(err).
				Errorln("Can't start prometheus handler")
			os.Exit(1)
		}
		sigHandler.AddListener(prometheusListener)
	}

	cmd.SetupTracing(ServiceName)
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})

	processor := command.NewProcessor(lmk, command.Policy{SkipParity: *skipParity, ApproveAll: *approveAll})
	hsmServer, err := server.NewServer(&server.Config{
		ConnectionString: *incomingConnectionString,
		Header:           []byte(*messageHeader),
		MaxConnections:   *incomingConnectionMax,
		WithTrace:        cmd.IsTraceToLogOn() || cmd.IsTraceToJaegerOn(),
	}, processor)
	if err != nil {
		log.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorCantStartService).WithError(err).
			Errorln("Can't initialize server")
		os.Exit(1)
	}
	sigHandler.AddCallback(hsmServer.Close)
	go sigHandler.Register()

	if err := hsmServer.Start(context.Background()); err != nil {
		log.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorCantStartService).WithError(err).
			Errorln("Server stopped with error")
		os.Exit(1)
	}
}

// loadLMK builds the LMK from Vault when a Vault address is configured, from
// the hex flag otherwise.
func loadLMK(vaultAddress, vaultSecretsPath, lmkHex string) (*keystore.LMK, error) {
	if vaultAddress == "" {
		return keystore.NewLMKFromHex(lmkHex)
	}
	config := api.DefaultConfig()
	config.Address = vaultAddress
	loader, err := keystore.NewVaultLoader(config, vaultSecretsPath)
	if err != nil {
		log.WithField(logging.FieldKeyEventCode, logging.EventCodeErrorCantLoadVaultLMK).WithError(err).
			Errorln("Can't initialize HashiCorp Vault loader")
		return nil, err
	}
	return loader.LoadLMK()
}
