package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	Pass  bool
	Recon bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("DOCFIX_DEBUG_PARSE")
	d.Pass = boolEnv("DOCFIX_DEBUG_PASS")
	d.Recon = boolEnv("DOCFIX_DEBUG_RECON")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Pass() bool {
	return d.Pass
}
func Recon() bool {
	return d.Recon
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
