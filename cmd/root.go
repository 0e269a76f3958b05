// precheck
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ExitError ends the process with Code. The command has already reported
// its result, so nothing is printed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func NewCmdRoot(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "precheck",
		Short: "precheck, the holodeck installation pre-flight checker",
		Long: "precheck verifies that a host meets the prerequisites for installing holodeck.\n" +
			"It runs a fixed set of checks selected by the system type and reports every outcome.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	return rootCmd
}

// Execute adds all child commands to the root command
// and executes the cmd tree
func Execute(version string) {
	os.Exit(run(NewCmdRoot(version), os.Args[1:]))
}

// run executes the cmd tree with args and returns the exit code
func run(cmd *cobra.Command, args []string) int {
	cmd.AddCommand(NewCmdCheck())
	cmd.AddCommand(NewCmdSchema())
	cmd.AddCommand(NewCmdGenDocs(cmd))
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}
