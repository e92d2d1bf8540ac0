// Copyright 2018 SumUp Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	stdOs "os"

	"github.com/palantir/stacktrace"
	log "github.com/sirupsen/logrus"
	"github.com/sumup-oss/go-pkgs/os"

	"github.com/sumup-oss/ansible-decryptor/cmd"
	"github.com/sumup-oss/ansible-decryptor/pkg/aes"
	"github.com/sumup-oss/ansible-decryptor/pkg/hex"
	"github.com/sumup-oss/ansible-decryptor/pkg/ini"
	"github.com/sumup-oss/ansible-decryptor/pkg/pkcs7"
	"github.com/sumup-oss/ansible-decryptor/pkg/vault/password"
)

func main() {
	stacktrace.DefaultFormat = stacktrace.FormatBrief

	// NOTE: This is pretty much what a dependency injection container would do.
	// It's important to initialize and pass only the most generic services
	// that do not change between business logic implementation.
	osExecutor := &os.RealOsExecutor{}

	logger := log.New()
	logger.SetOutput(osExecutor.Stderr())
	logger.SetFormatter(
		&log.TextFormatter{
			DisableTimestamp: true,
		},
	)

	aesSvc := aes.NewAesService()
	pkcs7Svc := pkcs7.NewPkcs7Service()
	hexSvc := hex.NewHexService()
	iniSvc := ini.NewIniService()
	keyringSvc := password.NewKeyringService()

	err := cmd.NewRootCmd(
		osExecutor,
		logger,
		stdOs.Getenv("LOG_LEVEL"),
		aesSvc,
		pkcs7Svc,
		hexSvc,
		iniSvc,
		keyringSvc,
	).Execute()
	if err == nil {
		return
	}

	//nolint:errcheck
	fmt.Fprintln(osExecutor.Stderr(), err.Error())
	osExecutor.Exit(1)
}
