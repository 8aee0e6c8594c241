package codigo

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Simula o padrão contar-depois-inserir da criação de vendas: cada goroutine
// lê a contagem, gera o código e insere, tudo dentro da tranca. Se a
// serialização falhar, aparecem códigos repetidos.
func TestTrancaPorChaveSerializaContagens(t *testing.T) {
	const goroutines = 50

	tranca := NovaTrancaPorChave()
	data := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	chave := ChaveMensal(1, data)

	var vendas []string
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tranca.Com(chave, func() error {
				cod := CodigoVenda("Albuquerque", data, int64(len(vendas)))
				vendas = append(vendas, cod)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, vendas, goroutines)
	vistos := make(map[string]bool, goroutines)
	for _, cod := range vendas {
		assert.False(t, vistos[cod], "código repetido: %s", cod)
		vistos[cod] = true
	}
	// a sequência é contígua: do 0001 ao goroutines
	assert.True(t, vistos[CodigoVenda("Albuquerque", data, 0)])
	assert.True(t, vistos[CodigoVenda("Albuquerque", data, goroutines-1)])
}

func TestTrancaPorChaveChavesIndependentes(t *testing.T) {
	tranca := NovaTrancaPorChave()

	bloqueado := make(chan struct{})
	liberta := make(chan struct{})
	go func() {
		tranca.Com("a", func() error {
			close(bloqueado)
			<-liberta
			return nil
		})
	}()
	<-bloqueado

	// outra chave não espera pela tranca de "a"
	feito := make(chan struct{})
	go func() {
		tranca.Com("b", func() error { return nil })
		close(feito)
	}()

	select {
	case <-feito:
	case <-time.After(2 * time.Second):
		t.Fatal("chave independente ficou bloqueada")
	}
	close(liberta)
}
