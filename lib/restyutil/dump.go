package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// Output receives every exchange made by a client instrumented with Dump.
type Output interface {
	Write(name string, contents string) error
}

// DirOutput writes each exchange to its own file in a directory.
type DirOutput struct {
	dir string
}

// NewDirOutput creates dir if needed, an existing dir must be empty so
// dumps of different runs are never mixed.
func NewDirOutput(dir string) (DirOutput, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return DirOutput{}, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return DirOutput{}, err
	}
	if len(entries) > 0 {
		return DirOutput{}, fmt.Errorf("dump directory '%s' is not empty", dir)
	}
	return DirOutput{dir: dir}, nil
}

func (o DirOutput) Write(name string, contents string) error {
	return os.WriteFile(filepath.Join(o.dir, name), []byte(contents), 0644)
}

// Dump writes every response the client receives to out, along with the
// request that caused it. Files are numbered in the order responses arrive.
func Dump(client *resty.Client, out Output) {
	var counter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		n := atomic.AddUint64(&counter, 1)
		name := fmt.Sprintf(
			"%04d_%s_%s.txt",
			n,
			strings.ToLower(res.Request.Method),
			pathName(res.Request.URL),
		)
		err := out.Write(name, FormatExchange(res))
		if err != nil {
			slog.Warn("failed to dump http exchange", "name", name, "err", err)
		}
		return nil
	})
}

// pathName is the last path segment of url without its extension.
func pathName(url string) string {
	url, _, _ = strings.Cut(url, "?")
	base := filepath.Base(url)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == "/" {
		return "root"
	}
	return base
}
