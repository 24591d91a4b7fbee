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

package logging

// Event codes for the simulator, split by group.
const (
	// 100 .. 200 regular events
	EventCodeGeneral = 100

	// 500 .. 520 process lifecycle errors
	EventCodeErrorGeneral               = 500
	EventCodeErrorWrongParam            = 501
	EventCodeErrorCantStartService      = 505
	EventCodeErrorWrongConfiguration    = 507
	EventCodeErrorCantReadServiceConfig = 508
	EventCodeErrorCantDumpConfig        = 509

	// keys
	EventCodeErrorCantInitLMK      = 510
	EventCodeErrorCantLoadVaultLMK = 512

	// system events
	EventCodeErrorCantRegisterSignalHandler = 523

	// transport
	EventCodeErrorCantStartListenConnections = 530
	EventCodeErrorCantStopListenConnections  = 531
	EventCodeErrorCantAcceptNewConnections   = 533
	EventCodeErrorCantCloseConnection        = 536

	// session processing
	EventCodeErrorSessionRead       = 570
	EventCodeErrorSessionWrite      = 571
	EventCodeErrorSessionFrameParse = 572
	EventCodeErrorSessionCommand    = 573
	EventCodeErrorSessionBuildFrame = 574

	// tracing
	EventCodeErrorTracingCantSendTrace    = 800
	EventCodeErrorJaegerInvalidParameters = 811
	EventCodeErrorJaegerExporter          = 812

	// metrics
	EventCodeErrorPrometheusHTTPHandler = 1000
)
