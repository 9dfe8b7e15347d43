package source

import (
	"context"
	"os"
	"strings"
)

type FileFetcher struct{}

func (FileFetcher) Fetch(_ context.Context, ref string) ([]byte, error) {
	return os.ReadFile(strings.TrimPrefix(ref, "file://"))
}
