package env

import (
	"os"

	"github.com/3-lines-studio/stitch/internal/core"
)

const DevVar = "STITCH_DEV"

func DetectMode() core.Mode {
	if os.Getenv(DevVar) == "1" {
		return core.ModeDev
	}
	return core.ModeProd
}
