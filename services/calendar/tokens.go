package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"drivebook/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/oauth2"
)

// TokenStore persists per-partner OAuth tokens keyed by the partner's opaque
// credential handle.
type TokenStore interface {
	Get(ctx context.Context, credentialRef string) (*oauth2.Token, error)
	Save(ctx context.Context, credentialRef string, token *oauth2.Token) error
}

// ErrTokenNotFound is returned when no token is stored for a credential handle.
var ErrTokenNotFound = errors.New("calendar token not found")

type storedToken struct {
	CredentialRef string    `bson:"credentialRef"`
	AccessToken   string    `bson:"accessToken"`
	RefreshToken  string    `bson:"refreshToken"`
	TokenType     string    `bson:"tokenType"`
	Expiry        time.Time `bson:"expiry"`
}

// MongoTokenStore implements TokenStore using MongoDB.
type MongoTokenStore struct {
	coll *mongo.Collection
}

// NewMongoTokenStore creates a new TokenStore backed by MongoDB.
func NewMongoTokenStore() TokenStore {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("calendar_tokens")
	return &MongoTokenStore{coll: coll}
}

func (s *MongoTokenStore) Get(ctx context.Context, credentialRef string) (*oauth2.Token, error) {
	var doc storedToken
	filter := bson.M{"credentialRef": credentialRef}
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to fetch token for %s: %w", credentialRef, err)
	}
	return &oauth2.Token{
		AccessToken:  doc.AccessToken,
		RefreshToken: doc.RefreshToken,
		TokenType:    doc.TokenType,
		Expiry:       doc.Expiry,
	}, nil
}

func (s *MongoTokenStore) Save(ctx context.Context, credentialRef string, token *oauth2.Token) error {
	doc := storedToken{
		CredentialRef: credentialRef,
		AccessToken:   token.AccessToken,
		RefreshToken:  token.RefreshToken,
		TokenType:     token.TokenType,
		Expiry:        token.Expiry,
	}
	filter := bson.M{"credentialRef": credentialRef}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	if _, err := s.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save token for %s: %w", credentialRef, err)
	}
	return nil
}

// savingTokenSource persists refreshed tokens back to the store so a partner
// is not forced through consent again after every access-token expiry.
type savingTokenSource struct {
	src   oauth2.TokenSource
	store TokenStore
	ref   string

	mu   sync.Mutex
	last *oauth2.Token
}

func newSavingTokenSource(src oauth2.TokenSource, store TokenStore, ref string, current *oauth2.Token) oauth2.TokenSource {
	return &savingTokenSource{src: src, store: store, ref: ref, last: current}
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil || tok.AccessToken != s.last.AccessToken {
		s.last = tok
		// Best effort; a failed save means one extra refresh later.
		_ = s.store.Save(context.Background(), s.ref, tok)
	}
	return tok, nil
}
