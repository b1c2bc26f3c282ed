package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/haivivi/flexbuf/pkg/buffer"
)

// apiError implements smithy.APIError.
type apiError struct {
	code string
	msg  string
}

func (e *apiError) Error() string                 { return e.msg }
func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return e.msg }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

var (
	errNoSuchKey = &apiError{code: "NoSuchKey", msg: "no such key"}
	errNotFound  = &apiError{code: "NotFound", msg: "not found"}
)

// fakeS3 is an in-memory S3 bucket.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	lengths map[string]int64

	getErr error
	putErr error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte), lengths: make(map[string]int64)}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, errNoSuchKey
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[*in.Key] = data
	if in.ContentLength != nil {
		f.lengths[*in.Key] = *in.ContentLength
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[*in.Key]; !ok {
		return nil, errNotFound
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestS3WriteAndRead(t *testing.T) {
	fake := newFakeS3()
	store := NewS3(fake, "bucket", "exports")
	ctx := context.Background()

	w, err := store.Write(ctx, "dump.bin")
	if err != nil {
		t.Fatal(err)
	}
	io.WriteString(w, "hello ")
	io.WriteString(w, "s3")
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, err := w.Write([]byte("x")); err == nil {
		t.Fatal("expected error writing to closed writer")
	}

	if got := fake.lengths["exports/dump.bin"]; got != 8 {
		t.Fatalf("ContentLength = %d, want 8", got)
	}

	r, err := store.Read(ctx, "dump.bin")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, _ := io.ReadAll(r)
	if string(got) != "hello s3" {
		t.Fatalf("got %q, want %q", got, "hello s3")
	}
}

func TestS3ReadErrors(t *testing.T) {
	ctx := context.Background()

	store := NewS3(newFakeS3(), "bucket", "")
	if _, err := store.Read(ctx, "missing"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Read missing = %v, want os.ErrNotExist", err)
	}

	fake := newFakeS3()
	fake.getErr = errors.New("network timeout")
	store = NewS3(fake, "bucket", "")
	_, err := store.Read(ctx, "x")
	if err == nil || errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Read = %v, want a non-NotExist error", err)
	}
}

func TestS3ExistsDelete(t *testing.T) {
	fake := newFakeS3()
	store := NewS3(fake, "bucket", "")
	ctx := context.Background()

	fake.objects["present"] = []byte("data")

	ok, err := store.Exists(ctx, "present")
	if err != nil || !ok {
		t.Fatalf("Exists(present) = %v, %v", ok, err)
	}
	if err := store.Delete(ctx, "present"); err != nil {
		t.Fatal(err)
	}
	ok, err = store.Exists(ctx, "present")
	if err != nil || ok {
		t.Fatalf("Exists after delete = %v, %v", ok, err)
	}
	if err := store.Delete(ctx, "ghost"); err != nil {
		t.Fatalf("Delete(ghost) = %v", err)
	}
}

func TestS3WriteErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("upload", func(t *testing.T) {
		fake := newFakeS3()
		fake.putErr = errors.New("upload failed")
		w, _ := NewS3(fake, "bucket", "").Write(ctx, "obj")
		io.WriteString(w, "data")
		err := w.Close()
		if err == nil || !errors.Is(err, fake.putErr) {
			t.Fatalf("Close = %v, want upload error", err)
		}
	})

	t.Run("limit", func(t *testing.T) {
		store := NewS3(newFakeS3(), "bucket", "").WithLimit(buffer.Config{PageSize: 4, MaxLength: 8})
		w, _ := store.Write(ctx, "obj")
		if _, err := w.Write(make([]byte, 9)); !errors.Is(err, buffer.ErrLimitExceeded) {
			t.Fatalf("Write = %v, want ErrLimitExceeded", err)
		}
		w.Close()
	})
}

func TestS3Key(t *testing.T) {
	tests := []struct {
		prefix, path, want string
	}{
		{"", "a/b", "a/b"},
		{"pfx", "a/b", "pfx/a/b"},
		{"pfx/", "a", "pfx/a"},
	}
	for _, tc := range tests {
		if got := NewS3(nil, "b", tc.prefix).key(tc.path); got != tc.want {
			t.Errorf("key(%q, %q) = %q, want %q", tc.prefix, tc.path, got, tc.want)
		}
	}
}

func TestIsS3NotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"NoSuchKey", errNoSuchKey, true},
		{"NotFound", errNotFound, true},
		{"other api error", &apiError{code: "AccessDenied", msg: "denied"}, false},
		{"plain error", errors.New("timeout"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isS3NotFound(tt.err); got != tt.want {
				t.Fatalf("isS3NotFound(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestNewS3Client(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	c := NewS3Client(S3Config{Endpoint: "http://localhost:9000", UsePathStyle: true, AccessKeyID: "k", SecretAccessKey: "s"})
	opts := c.Options()
	if opts.Region != "us-east-1" {
		t.Errorf("Region = %q", opts.Region)
	}
	if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://localhost:9000" {
		t.Errorf("BaseEndpoint = %v", opts.BaseEndpoint)
	}
	if !opts.UsePathStyle {
		t.Error("UsePathStyle = false")
	}
	creds, err := opts.Credentials.Retrieve(context.Background())
	if err != nil || creds.AccessKeyID != "k" || creds.SecretAccessKey != "s" {
		t.Errorf("Credentials = %+v, %v", creds, err)
	}
}
