package source

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agenthands/protgraph/internal/config"
	"github.com/agenthands/protgraph/internal/uniprot"
)

const fixture = "testdata/Q9Y261.xml"

func TestDecode_XMLFixture(t *testing.T) {
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)

	doc, err := Decode(data)
	require.NoError(t, err)

	entry, err := doc.Entry()
	require.NoError(t, err)
	assert.Equal(t, []string{"Q9Y261", "Q8WUW4"}, entry.Accession.Normalize())
	assert.Equal(t, 2, entry.Reference.Len())
	assert.Equal(t, 2, entry.Feature.Len())
	assert.True(t, entry.Evidence.Len() == 1 && !entry.Evidence.IsMany())

	seq, _ := entry.Sequence.First()
	assert.Equal(t, "457", seq.Length)
	assert.True(t, strings.HasPrefix(seq.Value, "MHSASSMLGA"))
}

func TestDecode_JSONAndUnknown(t *testing.T) {
	doc, err := Decode([]byte(`  {"uniprot": {"entry": {"accession": "P1"}}}`))
	require.NoError(t, err)
	entry, err := doc.Entry()
	require.NoError(t, err)
	assert.Equal(t, "P1", entry.Accession.Normalize()[0])

	_, err = Decode([]byte("accession,P1"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Decode(nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecode_MalformedCardinality(t *testing.T) {
	_, err := Decode([]byte(`{"uniprot": {"entry": {"accession": "P1", "evidence": 7}}}`))
	assert.ErrorIs(t, err, uniprot.ErrMalformedCardinality)
	assert.ErrorIs(t, err, ErrInvalidDocument)

	_, err = Decode([]byte("<uniprot><entry></uniprot>"))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestHTTPFetcher_CachesBodies(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.ServeFile(w, r, fixture)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5*time.Second, 4, time.Minute, zap.NewNop())
	ctx := context.Background()

	first, err := f.Fetch(ctx, srv.URL+"/Q9Y261.xml")
	require.NoError(t, err)
	second, err := f.Fetch(ctx, srv.URL+"/Q9Y261.xml")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())
}

func TestHTTPFetcher_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5*time.Second, 0, 0, zap.NewNop())
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "unexpected status 404")
}

type mockS3 struct {
	body   string
	err    error
	bucket string
	key    string
}

func (m *mockS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.bucket, m.key = *in.Bucket, *in.Key
	if m.err != nil {
		return nil, m.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(m.body))}, nil
}

func TestS3Fetcher(t *testing.T) {
	client := &mockS3{body: `{"uniprot": {"entry": {"accession": "P1"}}}`}
	f := &S3Fetcher{Client: client, Logger: zap.NewNop()}

	body, err := f.Fetch(context.Background(), "s3://entries/human/P1.json")
	require.NoError(t, err)
	assert.Equal(t, "entries", client.bucket)
	assert.Equal(t, "human/P1.json", client.key)
	assert.Contains(t, string(body), "P1")

	_, err = f.Fetch(context.Background(), "s3://only-bucket")
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}

func TestLoader_Dispatch(t *testing.T) {
	s3Client := &mockS3{err: errors.New("access denied")}
	l := &Loader{
		S3:   &S3Fetcher{Client: s3Client, Logger: zap.NewNop()},
		File: FileFetcher{},
	}
	ctx := context.Background()

	doc, err := l.Load(ctx, fixture)
	require.NoError(t, err)
	_, err = doc.Entry()
	require.NoError(t, err)

	_, err = l.Load(ctx, "file://"+fixture)
	require.NoError(t, err)

	_, err = l.Load(ctx, "s3://bucket/key.xml")
	assert.ErrorIs(t, err, ErrFetch)
	assert.ErrorContains(t, err, "access denied")

	_, err = l.Load(ctx, "https://example.org/entry.xml")
	assert.ErrorIs(t, err, ErrUnsupportedSource)

	_, err = l.Load(ctx, "ftp://example.org/entry.xml")
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}

func TestLoader_AllowedHosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, fixture)
	}))
	defer srv.Close()

	l := &Loader{
		HTTP:         NewHTTPFetcher(time.Second, 0, 0, zap.NewNop()),
		AllowedHosts: []string{"127.0.0.1"},
	}
	ctx := context.Background()

	_, err := l.Load(ctx, srv.URL+"/Q9Y261.xml")
	require.NoError(t, err)

	_, err = l.Load(ctx, "http://169.254.169.254/latest/meta-data")
	assert.ErrorIs(t, err, ErrUnsupportedSource)

	l.AllowedHosts = nil
	_, err = l.Load(ctx, srv.URL+"/Q9Y261.xml")
	require.NoError(t, err)
}

func TestNewRemoteLoader_RejectsLocalPaths(t *testing.T) {
	cfg := config.Default()
	cfg.Source.URL = "https://data.example.org/Q9Y261.xml"
	ctx := context.Background()

	remote := NewRemoteLoader(ctx, cfg, zap.NewNop())
	assert.Nil(t, remote.File)
	assert.Contains(t, remote.AllowedHosts, "rest.uniprot.org")
	assert.Contains(t, remote.AllowedHosts, "data.example.org")

	_, err := remote.Load(ctx, fixture)
	assert.ErrorIs(t, err, ErrUnsupportedSource)
	_, err = remote.Load(ctx, "file://"+fixture)
	assert.ErrorIs(t, err, ErrUnsupportedSource)

	local := NewLoader(ctx, cfg, zap.NewNop())
	assert.Empty(t, local.AllowedHosts)
	_, err = local.Load(ctx, fixture)
	require.NoError(t, err)
}
