package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/haivivi/flexbuf/pkg/buffer"
)

// Location is a parsed export target: either an S3 object or a local file.
type Location struct {
	// Bucket is set for s3:// URLs.
	Bucket string
	// Key is the object key for S3, or the file name for local paths.
	Key string
	// Dir is the directory of a local path.
	Dir string
}

// IsS3 reports whether the location is an S3 object.
func (l Location) IsS3() bool { return l.Bucket != "" }

func (l Location) String() string {
	if l.IsS3() {
		return "s3://" + l.Bucket + "/" + l.Key
	}
	return filepath.Join(l.Dir, l.Key)
}

// ParseURL parses "s3://bucket/key" or a local file path.
func ParseURL(raw string) (Location, error) {
	if rest, ok := strings.CutPrefix(raw, "s3://"); ok {
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
			return Location{}, fmt.Errorf("storage: invalid s3 url %q: want s3://bucket/key", raw)
		}
		return Location{Bucket: bucket, Key: key}, nil
	}
	if raw == "" || strings.HasSuffix(raw, "/") || strings.HasSuffix(raw, string(filepath.Separator)) {
		return Location{}, fmt.Errorf("storage: invalid file path %q", raw)
	}
	return Location{Dir: filepath.Dir(raw), Key: filepath.Base(raw)}, nil
}

// Open returns a FileStore serving loc together with the path to pass to
// it. newClient is called only for S3 locations. Uploads are staged with
// cfg, so the buffer's size ceiling also bounds exported objects.
func Open(loc Location, newClient func() S3Client, cfg buffer.Config) (FileStore, string, error) {
	if loc.IsS3() {
		return NewS3(newClient(), loc.Bucket, "").WithLimit(cfg), loc.Key, nil
	}
	fs, err := NewLocal(loc.Dir)
	if err != nil {
		return nil, "", err
	}
	return fs, loc.Key, nil
}
