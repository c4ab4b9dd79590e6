package notification

import (
	"sync"
	"time"
)

// Intervalo padrão entre reaberturas forçadas do painel de alertas
const IntervaloReabertura = 2 * time.Hour

// Reabridor dispara um callback em intervalos fixos, independente do
// conteúdo das notificações — é o gatilho que força o painel a reabrir
// periodicamente. O estado do painel em si fica com quem registra o
// callback.
type Reabridor struct {
	intervalo time.Duration
	abrir     func()

	parar chan struct{}
	once  sync.Once
}

func NovoReabridor(intervalo time.Duration, abrir func()) *Reabridor {
	if intervalo <= 0 {
		intervalo = IntervaloReabertura
	}
	return &Reabridor{
		intervalo: intervalo,
		abrir:     abrir,
		parar:     make(chan struct{}),
	}
}

func (r *Reabridor) Iniciar() {
	go func() {
		ticker := time.NewTicker(r.intervalo)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.abrir()
			case <-r.parar:
				return
			}
		}
	}()
}

func (r *Reabridor) Parar() {
	r.once.Do(func() { close(r.parar) })
}
