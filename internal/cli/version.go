package cli

import (
	"fmt"
	"io"

	"github.com/autobrr/go-riffinfo/internal/riffinfo"
)

func Version(stdout io.Writer) {
	fmt.Fprintf(stdout, "riffinfo, %s %s\n", riffinfo.LibName, riffinfo.Version)
}
