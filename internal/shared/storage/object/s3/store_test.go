package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakePut struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePut) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "user/file.pdf", want: "user/file.pdf"},
		{name: "simple prefix", prefix: "exports", key: "user/file.pdf", want: "exports/user/file.pdf"},
		{name: "prefix trailing slash", prefix: "exports/", key: "user/file.pdf", want: "exports/user/file.pdf"},
		{name: "prefix and key slashes", prefix: "/exports/", key: "/user/file.pdf", want: "exports/user/file.pdf"},
		{name: "empty key", prefix: "exports", key: "", want: "exports"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestPutUsesKMSWhenConfigured(t *testing.T) {
	fake := &fakePut{}
	store := newWithClient(fake, "bucket", "exports/", "kms-key")

	key, err := store.Put(context.Background(), 1, "report_user_1.pdf", "application/pdf", []byte("%PDF"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if got := aws.ToString(fake.input.Key); got != "exports/"+key {
		t.Fatalf("expected prefixed key, got %s", got)
	}
	if fake.input.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms {
		t.Fatalf("expected aws:kms encryption, got %s", fake.input.ServerSideEncryption)
	}
	if aws.ToString(fake.input.SSEKMSKeyId) != "kms-key" {
		t.Fatalf("expected kms key id")
	}
	if string(fake.body) != "%PDF" {
		t.Fatalf("unexpected body %q", fake.body)
	}
}

func TestPutDefaultsToAES256AndOctetStream(t *testing.T) {
	fake := &fakePut{}
	store := newWithClient(fake, "bucket", "", "")

	if _, err := store.Put(context.Background(), 2, "report.docx", "", []byte("x")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if fake.input.ServerSideEncryption != s3types.ServerSideEncryptionAes256 {
		t.Fatalf("expected AES256, got %s", fake.input.ServerSideEncryption)
	}
	if aws.ToString(fake.input.ContentType) != "application/octet-stream" {
		t.Fatalf("expected octet-stream content type")
	}
}

func TestPutWrapsClientError(t *testing.T) {
	fake := &fakePut{err: errors.New("denied")}
	store := newWithClient(fake, "bucket", "", "")

	_, err := store.Put(context.Background(), 1, "r.pdf", "application/pdf", []byte("x"))
	if err == nil || !strings.Contains(err.Error(), "bucket=bucket") {
		t.Fatalf("expected wrapped put error, got %v", err)
	}
}
