package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func assinarToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("assinar token: %v", err)
	}
	return s
}

func claimsValidos() jwt.MapClaims {
	return jwt.MapClaims{
		"EmpresaId":   "42",
		"EmpresaName": "Paróquia São Pedro",
		"Filial1":     `["Matriz","12.345.678/0001-00"]`,
		"Filial7":     []any{"Capela Santa Rita", "12.345.678/0002-00"},
		"Calendario":  []any{"EventoLer", "EventoCriar", "SalaExcluir", "OutroModuloLer"},
		"exp":         time.Now().Add(time.Hour).Unix(),
	}
}

func TestParseToken(t *testing.T) {
	sessao, err := ParseToken(assinarToken(t, claimsValidos()), testSecret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	if sessao.EmpresaID != 42 {
		t.Errorf("EmpresaID = %d, esperava 42", sessao.EmpresaID)
	}
	if sessao.EmpresaNome != "Paróquia São Pedro" {
		t.Errorf("EmpresaNome = %q", sessao.EmpresaNome)
	}
	if len(sessao.Filiais) != 2 {
		t.Fatalf("esperava 2 filiais, obteve %d", len(sessao.Filiais))
	}
	if f := sessao.Filiais[1]; f.Nome != "Matriz" || f.Documento != "12.345.678/0001-00" {
		t.Errorf("Filial1 = %+v", f)
	}
	if f := sessao.Filiais[7]; f.Nome != "Capela Santa Rita" {
		t.Errorf("Filial7 = %+v", f)
	}
	if !sessao.PodeAcessarFilial(7) || sessao.PodeAcessarFilial(2) {
		t.Error("acesso a filial incorreto")
	}

	if !sessao.Capacidades.Pode(RecursoEvento, AcaoCriar) {
		t.Error("esperava EventoCriar concedido")
	}
	if sessao.Capacidades.Pode(RecursoEvento, AcaoExcluir) {
		t.Error("EventoExcluir não deveria estar concedido")
	}
	if !sessao.Capacidades.Pode(RecursoSala, AcaoExcluir) {
		t.Error("esperava SalaExcluir concedido")
	}
}

func TestParseToken_SemVerificacao(t *testing.T) {
	// Without a configured secret the payload is decoded as-is.
	token := assinarToken(t, claimsValidos())
	sessao, err := ParseToken(token, "")
	if err != nil {
		t.Fatalf("ParseToken sem segredo: %v", err)
	}
	if sessao.EmpresaID != 42 {
		t.Errorf("EmpresaID = %d, esperava 42", sessao.EmpresaID)
	}
}

func TestParseToken_Expirado(t *testing.T) {
	claims := claimsValidos()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := assinarToken(t, claims)

	if _, err := ParseToken(token, testSecret); err != ErrTokenExpirado {
		t.Errorf("com segredo: err = %v, esperava ErrTokenExpirado", err)
	}
	if _, err := ParseToken(token, ""); err != ErrTokenExpirado {
		t.Errorf("sem segredo: err = %v, esperava ErrTokenExpirado", err)
	}
}

func TestParseToken_AssinaturaInvalida(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claimsValidos())
	s, err := token.SignedString([]byte("outro-segredo-bem-diferente-12345678"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(s, testSecret); err == nil {
		t.Error("assinatura errada deveria falhar")
	}
}

func TestClaimWireFormat(t *testing.T) {
	tests := []struct {
		cap  Capacidade
		want string
	}{
		{Capacidade{RecursoEvento, AcaoCriar}, "EventoCriar"},
		{Capacidade{RecursoSala, AcaoExcluir}, "SalaExcluir"},
		{Capacidade{RecursoTipoDeSala, AcaoEditar}, "TipoDeSalaEditar"},
		{Capacidade{RecursoUsuario, AcaoLer}, "UsuarioLer"},
	}
	for _, tt := range tests {
		if got := tt.cap.Claim(); got != tt.want {
			t.Errorf("Claim() = %q, esperava %q", got, tt.want)
		}
	}
}

func TestNovoCapacidadeSet_IgnoraDesconhecidos(t *testing.T) {
	set := NovoCapacidadeSet([]string{"EventoLer", "NaoExiste", "SalaCriarAlgo"})
	if !set.Pode(RecursoEvento, AcaoLer) {
		t.Error("EventoLer deveria estar no conjunto")
	}
	if set.Pode(RecursoSala, AcaoCriar) {
		t.Error("claims malformadas não devem conceder capacidades")
	}
}

func TestRequireSessao(t *testing.T) {
	mw := NewMiddleware(testSecret)
	handler := mw.RequireSessao(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessaoFromContext(r.Context()); !ok {
			t.Error("sessão ausente do contexto")
		}
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("sem token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, esperava 401", rec.Code)
		}
	})

	t.Run("token válido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+assinarToken(t, claimsValidos()))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, esperava 200", rec.Code)
		}
	})

	t.Run("formato inválido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, esperava 401", rec.Code)
		}
	})
}
