package auth

import (
	"context"
	"net/http"
	"strings"
)

// Papéis reconhecidos pelo sistema
const (
	PapelAdmin             = "admin"
	PapelBackOffice        = "bo"
	PapelParceiro          = "partner"
	PapelParceiroComercial = "partner_commercial"
)

type ctxKey string

const (
	CtxUsuarioID ctxKey = "usuarioID"
	CtxPapel     ctxKey = "papel"
)

// UsuarioDoContexto extrai o id e o papel do utilizador autenticado.
func UsuarioDoContexto(ctx context.Context) (uint, string) {
	id, _ := ctx.Value(CtxUsuarioID).(uint)
	papel, _ := ctx.Value(CtxPapel).(string)
	return id, papel
}

// PapelInterno indica se o papel pertence à equipa interna (admin/back-office).
func PapelInterno(papel string) bool {
	return papel == PapelAdmin || papel == PapelBackOffice
}

// PapelDeParceiro indica se o papel é do lado do parceiro.
func PapelDeParceiro(papel string) bool {
	return papel == PapelParceiro || papel == PapelParceiroComercial
}

func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ValidarToken(raw)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUsuarioID, claims.UserID)
		ctx = context.WithValue(ctx, CtxPapel, claims.Papel)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin restringe a rota a administradores.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, papel := UsuarioDoContexto(r.Context())
		if papel != PapelAdmin {
			http.Error(w, "Acesso restrito a administradores", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireInterno restringe a rota à equipa interna (admin ou back-office).
func RequireInterno(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, papel := UsuarioDoContexto(r.Context())
		if !PapelInterno(papel) {
			http.Error(w, "Acesso restrito à equipa interna", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
