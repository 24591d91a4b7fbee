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

package keystore

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/vault/api"
	log "github.com/sirupsen/logrus"
)

const vaultAPIToken = "VAULT_API_TOKEN"

const (
	kvSecretEngineVersion2 = "2"
	kvSecretEngineType     = "kv"
	dataSecretPathPart     = "data"

	lmkSecretID            = "hsm_lmk"
	vaultMountListEndpoint = "/sys/internal/ui/mounts"
)

// set of predefined errors used in the HashiCorp Vault loader and its tests
var (
	ErrEngineNotFound     = errors.New("unable to find secret engine")
	ErrEmptyAPIToken      = errors.New("HashiCorp Vault api token is empty")
	ErrSecretNotFound     = errors.New("HashiCorp Vault kv secret not found")
	ErrDataPathNotFound   = errors.New("no data path found for kv secret engine version 2")
	ErrLMKNotFound        = errors.New("hsm_lmk was not found by kv secret path")
	ErrLMKConvert         = errors.New("unable to convert hsm_lmk secret to string")
	ErrNoOptionsFound     = errors.New("no options found for secret engine path")
	ErrNoKVSecretEngine   = errors.New("incorrect secret engine type - should be kv")
	ErrParseEngineOptions = errors.New("failed to parse secret engine options")
	ErrConvertToPathList  = errors.New("failed to convert secrets to kv secrets list")
)

type secretEngine struct {
	path       string
	version    string
	secretType string
}

// VaultLoader reads the LMK hex string from a HashiCorp Vault kv secret.
// secretPath is the user-provided path the loader looks up hsm_lmk under.
type VaultLoader struct {
	client     *api.Client
	secretPath string
}

// NewVaultLoader reads VAULT_API_TOKEN from the environment, decodes it and
// returns an initialized VaultLoader.
func NewVaultLoader(config *api.Config, secretPath string) (*VaultLoader, error) {
	b64value := os.Getenv(vaultAPIToken)
	if len(b64value) == 0 {
		log.Warnf("%v environment variable is not set", vaultAPIToken)
		return nil, ErrEmptyAPIToken
	}

	decodeValue, err := base64.StdEncoding.DecodeString(b64value)
	if err != nil {
		log.WithError(err).Warnf("Failed to decode %s", vaultAPIToken)
		return nil, err
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}

	vaultToken := strings.Trim(string(decodeValue), "\n")
	client.SetToken(vaultToken)
	return &VaultLoader{
		client:     client,
		secretPath: secretPath,
	}, nil
}

// LoadLMK reads the hsm_lmk secret by secretPath and parses it into an LMK.
func (loader VaultLoader) LoadLMK() (*LMK, error) {
	value, err := loader.getSecretValue()
	if err != nil {
		log.WithError(err).Warnf("Failed to get secret by path %s", loader.secretPath)
		return nil, err
	}

	lmk, err := NewLMKFromHex(strings.TrimSpace(value))
	if err != nil {
		log.WithError(err).Warnf("Failed to validate %s", lmkSecretID)
		return nil, err
	}
	return lmk, nil
}

// getSecretValue determines the version of the kv secret engine provided by
// the user and reads the secret by the appropriate path.
func (loader VaultLoader) getSecretValue() (value string, err error) {
	engine, err := loader.getKVEngine()
	if err != nil {
		log.WithError(err).Warn("Unable to get KV secret engine")
		return
	}

	readPath := loader.secretPath

	if engine.version == kvSecretEngineVersion2 {
		splits := strings.Split(loader.secretPath, "/")
		if len(splits) < 2 {
			return "", errors.New("unable to split secret path")
		}
		dstPath := append([]string{engine.path, dataSecretPathPart}, splits[1:]...)

		readPath = filepath.Join(dstPath...)
	}

	secret, err := loader.client.Logical().Read(readPath)
	if err != nil {
		return
	}

	if secret == nil {
		return "", ErrSecretNotFound
	}

	lookupPath := secret.Data
	if engine.version == kvSecretEngineVersion2 {
		// for version 2 the payload lives under the data secret path
		dataPath, ok := secret.Data[dataSecretPathPart].(map[string]interface{})
		if !ok {
			return "", ErrDataPathNotFound
		}
		lookupPath = dataPath
	}

	rawLMK, ok := lookupPath[lmkSecretID]
	if !ok {
		return "", ErrLMKNotFound
	}

	lmkValue, ok := rawLMK.(string)
	if !ok {
		return "", ErrLMKConvert
	}

	return lmkValue, nil
}

// getKVEngine reads info about all secret engines to get the kv engine
// version for the user-provided path.
func (loader VaultLoader) getKVEngine() (engine secretEngine, err error) {
	secret, err := loader.client.Logical().Read(vaultMountListEndpoint)
	if err != nil {
		return
	}

	secrets, ok := secret.Data["secret"]
	if !ok {
		return secretEngine{}, ErrEngineNotFound
	}

	paths, ok := secrets.(map[string]interface{})
	if !ok {
		return secretEngine{}, ErrConvertToPathList
	}

	enginePath := strings.Split(loader.secretPath, "/")[0] + "/"
	rawEngine, ok := paths[enginePath]
	if !ok {
		return secretEngine{}, ErrEngineNotFound
	}

	engineInfo, ok := rawEngine.(map[string]interface{})
	if !ok {
		return secretEngine{}, ErrEngineNotFound
	}

	engineType, ok := engineInfo["type"].(string)
	if !ok || engineType != kvSecretEngineType {
		return secretEngine{}, ErrNoKVSecretEngine
	}

	options, ok := engineInfo["options"].(map[string]interface{})
	if !ok {
		return secretEngine{}, ErrNoOptionsFound
	}

	version, ok := options["version"].(string)
	if !ok {
		return secretEngine{}, ErrParseEngineOptions
	}

	return secretEngine{
		path:       strings.TrimSuffix(enginePath, "/"),
		version:    version,
		secretType: engineType,
	}, nil
}
