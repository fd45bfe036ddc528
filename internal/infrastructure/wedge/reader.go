// Package wedge adaptador para lectores de códigos que emulan teclado:
// cada lectura llega como una línea terminada en Enter.
package wedge

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
)

// maxLine tope de una lectura; un QR largo cabe holgado.
const maxLine = 4 << 10

// Reader convierte líneas de texto en eventos de lectura.
type Reader struct {
	symbology entity.Symbology
	now       func() time.Time
	log       zerolog.Logger
}

// NewReader construye el lector. El teclado no informa la simbología: se usa la indicada.
func NewReader(symbology entity.Symbology, log zerolog.Logger) *Reader {
	return &Reader{
		symbology: symbology,
		now:       time.Now,
		log:       log.With().Str("component", "wedge").Logger(),
	}
}

// Events publica un ScanEvent por línea no vacía de r. El canal se cierra al llegar
// a EOF, ante un error de lectura o al cancelarse ctx.
func (rd *Reader) Events(ctx context.Context, r io.Reader) <-chan entity.ScanEvent {
	out := make(chan entity.ScanEvent)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 256), maxLine)
		for sc.Scan() {
			code := strings.TrimSpace(sc.Text())
			if code == "" {
				continue
			}
			ev := entity.ScanEvent{Code: code, Symbology: rd.symbology, At: rd.now()}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			rd.log.Error().Err(err).Msg("lectura de entrada interrumpida")
		}
	}()
	return out
}
