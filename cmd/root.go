// Package cmd wires the gateway into its command-line surface: two
// positional arguments supplied by the operator in the forced-command
// line, plus logging flags.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cryslith/hgssh4/internal/errors"
	"github.com/cryslith/hgssh4/internal/gateway"
	"github.com/cryslith/hgssh4/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "hgssh4 <user> <acl-file>",
	Short: "SSH forced-command gateway for Mercurial repositories",
	Long: `hgssh4 runs as the forced command bound to an SSH public key and
serves exactly one request: "hg -R <repo> serve --stdio" against a
repository the ACL file grants the key's user access to.

Write access runs hg directly; read access re-runs it through sudo as
the configured low-privilege user so filesystem permissions enforce
read-only behavior. Anything else the client asks for is refused.

Bind it in authorized_keys:

  command="hgssh4 alice /etc/hgssh4.acl" ssh-ed25519 AAAA... alice@host`,
	Args: cobra.ExactArgs(2),
	// stderr reaches the SSH client; errors surface as the gateway's
	// own single line, never cobra's usage dump.
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return gateway.Run(cmd.Context(), args[0], args[1])
	},
}

// Execute runs the gateway and prints the caller-visible error line,
// if any. The detailed error (with its kind) goes to the debug log
// only, so denials stay indistinguishable to the client.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logging.Debug("gateway failed", "error", err)
		if msg := errors.UserMessage(err); msg != "" {
			logging.UserError("%s", msg)
		}
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
