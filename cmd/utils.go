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

// Package cmd holds the flag/yaml configuration plumbing, the signal handler
// and the metrics/tracing setup shared by the simulator binaries.
package cmd

import (
	flag_ "flag"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/paysimlabs/hsmsim/utils"
)

var (
	config     = flag_.String("config", "", "path to config")
	dumpconfig = flag_.Bool("dumpconfig", false, "dump config")
)

func init() {
	// override default usage message by ours
	flag_.CommandLine.Usage = PrintDefaults
}

// SignalCallback is a function to run on a caught shutdown signal.
type SignalCallback func()

// SignalHandler closes registered listeners and runs callbacks on a signal.
type SignalHandler struct {
	ch        chan os.Signal
	listeners []net.Listener
	callbacks []SignalCallback
	signals   []os.Signal
}

// NewSignalHandler returns a handler for handledSignals.
func NewSignalHandler(handledSignals []os.Signal) (*SignalHandler, error) {
	return &SignalHandler{ch: make(chan os.Signal), signals: handledSignals}, nil
}

// AddListener registers a listener to close on signal.
func (handler *SignalHandler) AddListener(listener net.Listener) {
	handler.listeners = append(handler.listeners, listener)
}

// GetChannel returns the channel the signals arrive on.
func (handler *SignalHandler) GetChannel() chan os.Signal {
	return handler.ch
}

// AddCallback registers a callback to run on signal.
func (handler *SignalHandler) AddCallback(callback SignalCallback) {
	handler.callbacks = append(handler.callbacks, callback)
}

// Register should be called as goroutine
func (handler *SignalHandler) Register() {
	for _, osSignal := range handler.signals {
		signal.Notify(handler.ch, osSignal)
	}
	<-handler.ch
	for _, listener := range handler.listeners {
		listener.Close()
	}
	for _, callback := range handler.callbacks {
		callback()
	}
	os.Exit(1)
}

func isZeroValue(flag *flag_.Flag, value string) bool {
	/* took from flag/flag.go */
	typ := reflect.TypeOf(flag.Value)
	var z reflect.Value
	if typ.Kind() == reflect.Ptr {
		z = reflect.New(typ.Elem())
	} else {
		z = reflect.Zero(typ)
	}
	if value == z.Interface().(flag_.Value).String() {
		return true
	}

	switch value {
	case "false", "", "0":
		return true
	}
	return false
}

// PrintDefaults prints all flags in --name form with defaults.
func PrintDefaults() {
	/* took from flag/flag.go and overrided arg display format (-/--) */
	flag_.CommandLine.VisitAll(func(flag *flag_.Flag) {
		var s string
		if len(flag.Name) > 2 {
			s = fmt.Sprintf("  --%s", flag.Name)
		} else {
			s = fmt.Sprintf("  -%s", flag.Name)
		}
		if len(s) <= 4 {
			s += "\t"
		} else {
			s += "\n    \t"
		}
		s += flag.Usage
		if !isZeroValue(flag, flag.DefValue) {
			getter, ok := flag.Value.(flag_.Getter)
			if !ok {
				return
			}

			if _, ok := getter.Get().(string); ok {
				s += fmt.Sprintf(" (default %q)", flag.DefValue)
			} else {
				s += fmt.Sprintf(" (default %v)", flag.DefValue)
			}
		}
		fmt.Fprint(os.Stderr, s, "\n")
	})
}

// GenerateYaml writes all flags as a yaml document to output.
func GenerateYaml(output io.Writer, useDefault bool) {
	flag_.CommandLine.VisitAll(func(flag *flag_.Flag) {
		var s string
		if useDefault {
			s = fmt.Sprintf("# %v\n%v: %v\n", flag.Usage, flag.Name, flag.DefValue)
		} else {
			s = fmt.Sprintf("# %v\n%v: %v\n", flag.Usage, flag.Name, flag.Value)
		}
		fmt.Fprint(output, s, "\n")
	})
}

// DumpConfig writes the current flag set as yaml to configPath.
func DumpConfig(configPath string, useDefault bool) error {
	var absPath string
	var err error

	if *config == "" {
		absPath, err = utils.AbsPath(configPath)
		if err != nil {
			return err
		}
	} else {
		absPath, err = utils.AbsPath(*config)
		if err != nil {
			return err
		}
	}

	dirPath := filepath.Dir(absPath)
	err = os.MkdirAll(dirPath, 0744)
	if err != nil {
		return err
	}

	file, err := os.Create(absPath)
	if err != nil {
		return err
	}
	defer file.Close()

	GenerateYaml(file, useDefault)
	log.Infof("Config dumped to %s", configPath)
	return nil
}

// Parse loads options from the yaml config and cli. If the dumpconfig option
// was passed it generates the config and exits.
func Parse(configPath string) error {
	// first parse using builtin flag
	err := flag_.CommandLine.Parse(os.Args[1:])
	if err != nil {
		return err
	}

	if *config != "" {
		configPath = *config
	}
	var args []string
	// parse yaml and add params that weren't passed from cli
	if configPath != "" {
		configPath, err := utils.AbsPath(configPath)
		if err != nil {
			return err
		}
		exists, err := utils.FileExists(configPath)
		if err != nil {
			return err
		}
		if exists {
			data, err := ioutil.ReadFile(configPath)
			if err != nil {
				return err
			}
			yamlConfig := map[string]interface{}{}
			err = yaml.Unmarshal(data, &yamlConfig)
			if err != nil {
				return err
			}
			setArgs := make(map[string]bool)
			flag_.Visit(func(flag *flag_.Flag) {
				setArgs[flag.Name] = true
			})
			// generate args list for flag.Parse as it was from cli args
			args = make([]string, 0)
			flag_.VisitAll(func(flag *flag_.Flag) {
				if _, alreadySet := setArgs[flag.Name]; !alreadySet {
					if value, yamlOk := yamlConfig[flag.Name]; yamlOk {
						if value != nil {
							args = append(args, fmt.Sprintf("--%v=%v", flag.Name, value))
						}
					}
				}
			})
		}
	}
	// set options from config that weren't set by cli
	err = flag_.CommandLine.Parse(args)
	if err != nil {
		return err
	}
	if *dumpconfig {
		if err := DumpConfig(configPath, true); err != nil {
			return err
		}
		os.Exit(0)
	}
	return nil
}
