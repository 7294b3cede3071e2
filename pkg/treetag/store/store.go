package store

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/treetag/pkg/treetag/parse"
)

// Store is the interface for persisting and querying tagged documents
type Store interface {
	Close() error

	UpsertDoc(ctx context.Context, d Doc) error
	GetDoc(ctx context.Context, id string) (Doc, bool, error)
	GetDocByName(ctx context.Context, name string) (Doc, bool, error)
	ListDocs(ctx context.Context) ([]DocInfo, error)

	// TagCounts returns the number of stored tokens per POS tag.
	TagCounts(ctx context.Context) (map[string]int64, error)
}

// Doc is one tagged document: its identity plus the ordered token
// sequence the tagger produced for it
type Doc struct {
	ID       string
	Name     string
	Language string
	TaggedAt time.Time
	Tokens   []parse.Token
}

// DocInfo is the listing form of a document, without its tokens
type DocInfo struct {
	ID       string
	Name     string
	Language string
	TaggedAt time.Time
	Tokens   int64
}

// IDSource mints document IDs
type IDSource struct {
	entropy *ulid.MonotonicEntropy
}

// NewIDSource creates a monotonic ULID source
func NewIDSource() *IDSource {
	return &IDSource{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewID returns a fresh document ID
func (s *IDSource) NewID() string {
	return ulid.MustNew(ulid.Now(), s.entropy).String()
}
