package main

import (
	"log"
	"net/http"
	"os"

	"github.com/MPGrupo/api-parceiros/internal/alerta"
	"github.com/MPGrupo/api-parceiros/internal/auth"
	"github.com/MPGrupo/api-parceiros/internal/codigo"
	"github.com/MPGrupo/api-parceiros/internal/dashboard"
	"github.com/MPGrupo/api-parceiros/internal/operadora"
	"github.com/MPGrupo/api-parceiros/internal/parceiro"
	"github.com/MPGrupo/api-parceiros/internal/usuario"
	"github.com/MPGrupo/api-parceiros/internal/utils"
	"github.com/MPGrupo/api-parceiros/internal/utils/db"
	"github.com/MPGrupo/api-parceiros/internal/venda"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Sem arquivo .env; usando variáveis do ambiente")
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := database.AutoMigrate(
		&usuario.Usuario{},
		&parceiro.Parceiro{},
		&operadora.Operadora{},
		&venda.Venda{},
		&alerta.Alerta{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	seedAdmin(database)

	// A tranca é partilhada por tudo o que gera códigos sequenciais
	tranca := codigo.NovaTrancaPorChave()

	// Handlers
	usuarioHandler := usuario.NewHandler(database)
	parceiroHandler := parceiro.NewHandler(database, tranca)
	operadoraHandler := operadora.NewHandler(database)
	vendaHandler := venda.NewHandler(database, venda.NewServico(database, tranca))
	alertaHandler := alerta.NewHandler(database)
	dashboardHandler := dashboard.NewHandler(database)

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	api.HandleFunc("/me", usuarioHandler.Me).Methods("GET")
	api.HandleFunc("/alterar-senha", usuarioHandler.AlterarSenha).Methods("POST")

	// Utilizadores (apenas admin)
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/usuarios", usuarioHandler.CriarUsuario).Methods("POST")
	admin.HandleFunc("/usuarios", usuarioHandler.ListarUsuarios).Methods("GET")
	admin.HandleFunc("/usuarios/{id}", usuarioHandler.DeletarUsuario).Methods("DELETE")
	admin.HandleFunc("/parceiros/{id}", parceiroHandler.DeletarParceiro).Methods("DELETE")
	admin.HandleFunc("/operadoras", operadoraHandler.CriarOperadora).Methods("POST")
	admin.HandleFunc("/operadoras/{id}", operadoraHandler.DeletarOperadora).Methods("DELETE")
	admin.HandleFunc("/vendas/{id}/recalcular-comissao", vendaHandler.RecalcularComissao).Methods("POST")

	// Equipa interna (admin ou back-office)
	interno := api.NewRoute().Subrouter()
	interno.Use(auth.RequireInterno)
	interno.HandleFunc("/parceiros", parceiroHandler.CriarParceiro).Methods("POST")
	interno.HandleFunc("/parceiros/{id}", parceiroHandler.AtualizarParceiro).Methods("PUT")
	interno.HandleFunc("/operadoras/{id}", operadoraHandler.AtualizarOperadora).Methods("PUT")
	interno.HandleFunc("/operadoras/{id}/visibilidade", operadoraHandler.AlternarVisibilidade).Methods("POST")

	// Rotas de parceiros
	api.HandleFunc("/parceiros", parceiroHandler.ListarParceiros).Methods("GET")
	api.HandleFunc("/parceiros/{id}", parceiroHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/parceiros/{id}/documentos", parceiroHandler.AnexarDocumento).Methods("POST")

	// Rotas de operadoras
	api.HandleFunc("/operadoras", operadoraHandler.ListarOperadoras).Methods("GET")
	api.HandleFunc("/operadoras/{id}", operadoraHandler.BuscarPorID).Methods("GET")

	// Rotas de vendas
	api.HandleFunc("/vendas", vendaHandler.CriarVenda).Methods("POST")
	api.HandleFunc("/vendas", vendaHandler.ListarVendas).Methods("GET")
	api.HandleFunc("/vendas/{id}", vendaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/vendas/{id}", vendaHandler.AtualizarVenda).Methods("PUT")
	api.HandleFunc("/vendas/{id}/notas", vendaHandler.AdicionarNota).Methods("POST")
	api.HandleFunc("/vendas/{id}/documentos", vendaHandler.AnexarDocumento).Methods("POST")

	// Rotas de alertas
	api.HandleFunc("/alertas", alertaHandler.ListarAlertas).Methods("GET")
	api.HandleFunc("/alertas/{id}/lida", alertaHandler.MarcarComoLida).Methods("POST")
	api.HandleFunc("/alertas/{id}/arquivar", alertaHandler.Arquivar).Methods("POST")

	// Dashboard
	api.HandleFunc("/dashboard/estatisticas", dashboardHandler.Estatisticas).Methods("GET")

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(r)

	log.Println("Servidor rodando na porta", porta)
	log.Fatal(http.ListenAndServe(":"+porta, handler))
}

// seedAdmin garante o primeiro administrador quando a base está vazia.
func seedAdmin(database *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	senha := os.Getenv("ADMIN_PASSWORD")
	if email == "" || senha == "" {
		return
	}

	var total int64
	if err := database.Model(&usuario.Usuario{}).Count(&total).Error; err != nil || total > 0 {
		return
	}

	hash, err := utils.HashSenha(senha)
	if err != nil {
		log.Println("Erro ao preparar admin inicial:", err)
		return
	}
	admin := usuario.Usuario{
		Nome:                  "Administrador",
		Email:                 email,
		Papel:                 auth.PapelAdmin,
		Funcao:                "Gestor de parceiros",
		Senha:                 hash,
		PrecisaRedefinirSenha: true,
	}
	if err := database.Create(&admin).Error; err != nil {
		log.Println("Erro ao criar admin inicial:", err)
		return
	}
	log.Println("Admin inicial criado:", email)
}
