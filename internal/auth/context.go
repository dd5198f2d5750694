package auth

import "context"

type contextKey string

const contextKeySessao contextKey = "sessao"

func WithSessao(ctx context.Context, s *Sessao) context.Context {
	return context.WithValue(ctx, contextKeySessao, s)
}

func SessaoFromContext(ctx context.Context) (*Sessao, bool) {
	s, ok := ctx.Value(contextKeySessao).(*Sessao)
	return s, ok
}
