package codigo

import "sync"

// TrancaPorChave serializa sequências contar-depois-inserir por chave de
// escopo (tipo de parceiro, parceiro+mês, parceiro+operadora). Chaves
// diferentes não se bloqueiam entre si.
type TrancaPorChave struct {
	mu      sync.Mutex
	trancas map[string]*sync.Mutex
}

// NovaTrancaPorChave cria uma tranca vazia.
func NovaTrancaPorChave() *TrancaPorChave {
	return &TrancaPorChave{trancas: map[string]*sync.Mutex{}}
}

// Com executa fn com a tranca da chave adquirida.
func (t *TrancaPorChave) Com(chave string, fn func() error) error {
	m := t.tranca(chave)
	m.Lock()
	defer m.Unlock()
	return fn()
}

func (t *TrancaPorChave) tranca(chave string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.trancas[chave]
	if !ok {
		m = &sync.Mutex{}
		t.trancas[chave] = m
	}
	return m
}
