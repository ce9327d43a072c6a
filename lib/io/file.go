package iolib

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// StreamToFile writes everything r produces to path. The bytes land in a
// uniquely named temp file next to the destination and move into place
// only after a complete write, so readers of path never observe a partial
// file. The handle is closed on success and failure alike, and the temp
// file is removed on failure.
func StreamToFile(r io.Reader, path string) error {
	dir := filepath.Dir(path)
	temp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString())

	f, err := os.OpenFile(temp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	fail := func(cause error, msg string) error {
		f.Close()
		os.Remove(temp)
		return errors.Wrap(cause, msg)
	}

	buf := make([]byte, 32*1024)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := WriteFull(f, buf[:n]); werr != nil {
				return fail(werr, "writing to temp file")
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fail(rerr, "reading stream")
		}
	}

	if serr := f.Sync(); serr != nil {
		return fail(serr, "syncing temp file")
	}
	if cerr := f.Close(); cerr != nil {
		os.Remove(temp)
		return errors.Wrap(cerr, "closing temp file")
	}

	if rerr := os.Rename(temp, path); rerr != nil {
		os.Remove(temp)
		return errors.Wrap(rerr, "moving temp file into place")
	}
	return nil
}

// PipeToFile is StreamToFile with cancellation checked between reads.
func PipeToFile(ctx context.Context, r io.Reader, path string) error {
	return StreamToFile(&ctxReader{ctx: ctx, r: r}, path)
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *ctxReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
