package logging

import (
	"fmt"
	"os"
)

// UserError prints the caller-visible error line to stderr. This is
// the only output the gateway itself ever writes on the SSH channel.
func UserError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "hgssh4: "+format+"\n", args...)
}
