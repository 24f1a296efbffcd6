package ports

import "github.com/academia-alliance/academia/core"

// Tokenizer converts between sessions and signed credentials
type Tokenizer interface {
	SessionToToken(session *core.Session) (string, error)
	// TokenToSession verifies signature and expiry before decoding.
	TokenToSession(token string) (*core.Session, error)
}
