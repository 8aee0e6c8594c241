package notificacao

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
)

// AlertaVenda é o payload enviado ao webhook de notificações externas
// (e-mail/Slack a cargo do recetor).
type AlertaVenda struct {
	Tipo        string `json:"tipo"`
	CodigoVenda string `json:"codigoVenda"`
	NomeCliente string `json:"nomeCliente"`
	NIFCliente  string `json:"nifCliente"`
	Ambito      string `json:"ambito"`
	Mensagem    string `json:"mensagem"`
}

// EnviarAlertaVenda publica o alerta no webhook configurado em
// ALERT_WEBHOOK_URL. Falhas são apenas registadas: a notificação externa
// nunca bloqueia nem desfaz a operação que a originou.
func EnviarAlertaVenda(alerta AlertaVenda) {
	url := os.Getenv("ALERT_WEBHOOK_URL")
	if url == "" {
		return
	}

	body, _ := json.Marshal(alerta)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("Erro ao enviar webhook de alerta: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("Webhook de alerta respondeu %d para a venda %s", resp.StatusCode, alerta.CodigoVenda)
	}
}
