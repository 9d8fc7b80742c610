package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// writeOutput sends b to stdout, or to o.out if set. An existing file is
// never overwritten.
func (o *options) writeOutput(cmd *cobra.Command, b []byte) error {
	if o.out == "" {
		_, err := cmd.OutOrStdout().Write(b)
		return err
	}
	if err := writeFileNoTrunc(o.out, b); err != nil {
		return err
	}
	o.log.Println("Wrote", getAbsPath(o.out))
	return nil
}

func getAbsPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func writeFileNoTrunc(name string, b []byte) error {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	if _, err = f.Write(b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
