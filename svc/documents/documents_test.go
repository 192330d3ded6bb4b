package documents_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unus-solutions/propdocs/pkg/file"
	"github.com/unus-solutions/propdocs/svc/documents"
)

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) ListObjects(ctx context.Context, prefix string) ([]file.Object, error) {
	args := m.Called(ctx, prefix)
	objects, _ := args.Get(0).([]file.Object)
	return objects, args.Error(1)
}

func (m *mockStorage) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	if fn, ok := args.Get(0).(func(context.Context, string, time.Duration) string); ok {
		return fn(ctx, key, ttl), args.Error(1)
	}
	return args.String(0), args.Error(1)
}

func signer(key string, _ time.Duration) string {
	return "https://signed.example/" + key + "?sig=1"
}

func TestNormalizeProposal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"12345", "12345", nil},
		{"  12345 ", "12345", nil},
		{"", "", documents.ErrEmptyProposal},
		{"   ", "", documents.ErrEmptyProposal},
		{"12345/other", "", documents.ErrInvalidProposal},
		{"..", "", documents.ErrInvalidProposal},
		{"a\\b", "", documents.ErrInvalidProposal},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := documents.NormalizeProposal(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()

	label, ok := documents.Label("12345", "viavante_docs/12345/contracts/a.pdf")
	require.True(t, ok)
	assert.Equal(t, "contracts/a.pdf", label)

	_, ok = documents.Label("1234", "viavante_docs/12345/contracts/a.pdf")
	assert.False(t, ok, "sibling proposal must not match")

	_, ok = documents.Label("12345", "viavante_docs/12345/")
	assert.False(t, ok)
}

func TestService_List(t *testing.T) {
	t.Parallel()

	t.Run("lists and signs every document", func(t *testing.T) {
		t.Parallel()
		storage := new(mockStorage)
		storage.On("ListObjects", mock.Anything, "viavante_docs/12345/").Return([]file.Object{
			{Key: "viavante_docs/12345/contracts/a.pdf", Size: 2048},
			{Key: "viavante_docs/12345/contracts/b.pdf", Size: 10},
		}, nil)
		storage.On("PresignGet", mock.Anything, mock.Anything, time.Hour).Return(
			func(_ context.Context, key string, ttl time.Duration) string { return signer(key, ttl) },
			nil,
		)

		docs, err := documents.NewService(storage).List(context.Background(), "12345")
		require.NoError(t, err)
		require.Len(t, docs, 2)

		assert.Equal(t, "contracts/a.pdf", docs[0].Label)
		assert.Equal(t, "contracts/b.pdf", docs[1].Label)
		assert.Equal(t, "a.pdf", docs[0].Name())
		assert.Equal(t, "2.0 kB", docs[0].HumanSize())
		for _, d := range docs {
			assert.True(t, strings.HasSuffix(d.Key, d.Label), "label is a suffix of the key")
			assert.NotEqual(t, d.Key, d.Label)
			assert.Contains(t, d.URL, d.Key)
		}
		storage.AssertExpectations(t)
	})

	t.Run("unknown proposal yields empty result", func(t *testing.T) {
		t.Parallel()
		storage := new(mockStorage)
		storage.On("ListObjects", mock.Anything, "viavante_docs/00000/").Return([]file.Object{}, nil)

		docs, err := documents.NewService(storage).List(context.Background(), "00000")
		require.NoError(t, err)
		assert.Empty(t, docs)
		storage.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("drops keys outside the proposal", func(t *testing.T) {
		t.Parallel()
		storage := new(mockStorage)
		storage.On("ListObjects", mock.Anything, "viavante_docs/1/").Return([]file.Object{
			{Key: "viavante_docs/10/x.pdf"},
			{Key: "viavante_docs/1/y.pdf"},
		}, nil)
		storage.On("PresignGet", mock.Anything, "viavante_docs/1/y.pdf", time.Hour).Return("u", nil)

		docs, err := documents.NewService(storage).List(context.Background(), "1")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "y.pdf", docs[0].Label)
	})

	t.Run("custom link ttl", func(t *testing.T) {
		t.Parallel()
		storage := new(mockStorage)
		storage.On("ListObjects", mock.Anything, mock.Anything).Return([]file.Object{{Key: "viavante_docs/1/a"}}, nil)
		storage.On("PresignGet", mock.Anything, "viavante_docs/1/a", 5*time.Minute).Return("u", nil)

		svc := documents.NewService(storage, documents.WithLinkTTL(5*time.Minute))
		_, err := svc.List(context.Background(), "1")
		require.NoError(t, err)
		assert.Equal(t, 5*time.Minute, svc.LinkTTL())
		storage.AssertExpectations(t)
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()
		storage := new(mockStorage)
		storage.On("ListObjects", mock.Anything, mock.Anything).Return(nil, file.ErrServiceUnavailable)

		_, err := documents.NewService(storage).List(context.Background(), "1")
		assert.ErrorIs(t, err, file.ErrServiceUnavailable)
	})

	t.Run("presign failure", func(t *testing.T) {
		t.Parallel()
		storage := new(mockStorage)
		storage.On("ListObjects", mock.Anything, mock.Anything).Return([]file.Object{{Key: "viavante_docs/1/a"}}, nil)
		storage.On("PresignGet", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("boom"))

		_, err := documents.NewService(storage).List(context.Background(), "1")
		assert.Error(t, err)
	})

	t.Run("invalid proposal never reaches storage", func(t *testing.T) {
		t.Parallel()
		storage := new(mockStorage)
		_, err := documents.NewService(storage).List(context.Background(), "../secret")
		assert.ErrorIs(t, err, documents.ErrInvalidProposal)
		storage.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything)
	})
}

func TestService_Keys(t *testing.T) {
	t.Parallel()
	storage := new(mockStorage)
	storage.On("ListObjects", mock.Anything, "viavante_docs/12345/").Return([]file.Object{
		{Key: "viavante_docs/12345/contracts/a.pdf"},
		{Key: "viavante_docs/12345/contracts/b.pdf"},
	}, nil)

	keys, err := documents.NewService(storage).Keys(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, []string{"viavante_docs/12345/contracts/a.pdf", "viavante_docs/12345/contracts/b.pdf"}, keys)
}

func TestService_Sign(t *testing.T) {
	t.Parallel()
	storage := new(mockStorage)
	storage.On("PresignGet", mock.Anything, "viavante_docs/1/a.pdf", time.Hour).Return("u", nil)
	svc := documents.NewService(storage)

	url, err := svc.Sign(context.Background(), "1", "viavante_docs/1/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "u", url)

	_, err = svc.Sign(context.Background(), "1", "viavante_docs/2/a.pdf")
	assert.ErrorIs(t, err, documents.ErrOutsideProposal)
}
