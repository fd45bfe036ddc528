package scan_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
	"github.com/jhoicas/Inventario-scanner/internal/domain/scan"
)

var base = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func ev(code string, offset time.Duration) entity.ScanEvent {
	return entity.ScanEvent{Code: code, Symbology: entity.SymbologyEAN13, At: base.Add(offset)}
}

func TestOnScan_DosLecturasDentroDelPeriodo_EmiteUna(t *testing.T) {
	d := scan.NewDebouncer(2 * time.Second)

	code, ok := d.OnScan(ev("7891234567890", 0))
	require.True(t, ok)
	assert.Equal(t, "7891234567890", code)

	_, ok = d.OnScan(ev("7891234567890", 500*time.Millisecond))
	assert.False(t, ok, "la segunda lectura a 500 ms se descarta")

	_, ok = d.OnScan(ev("7891234567890", 1999*time.Millisecond))
	assert.False(t, ok, "a 1999 ms sigue bloqueado")
}

func TestOnScan_LecturasSeparadasPorElPeriodo_EmiteAmbas(t *testing.T) {
	d := scan.NewDebouncer(2 * time.Second)

	_, ok := d.OnScan(ev("A1", 0))
	require.True(t, ok)
	code, ok := d.OnScan(ev("B2", 2000*time.Millisecond))
	assert.True(t, ok)
	assert.Equal(t, "B2", code)
}

// Las lecturas descartadas no extienden el bloqueo.
func TestOnScan_DescartadasNoReinicianElPeriodo(t *testing.T) {
	d := scan.NewDebouncer(2 * time.Second)

	_, _ = d.OnScan(ev("A", 0))
	_, ok := d.OnScan(ev("A", 1500*time.Millisecond))
	require.False(t, ok)
	_, ok = d.OnScan(ev("A", 2100*time.Millisecond))
	assert.True(t, ok)
}

func TestOnScan_SimbologiaNoSoportadaOVacia(t *testing.T) {
	d := scan.NewDebouncer(2 * time.Second)

	_, ok := d.OnScan(entity.ScanEvent{Code: "X", Symbology: "pdf417", At: base})
	assert.False(t, ok)
	_, ok = d.OnScan(entity.ScanEvent{Code: "   ", Symbology: entity.SymbologyQR, At: base})
	assert.False(t, ok)

	// Ninguna de las dos bloqueó el debouncer.
	_, ok = d.OnScan(ev("OK", 10*time.Millisecond))
	assert.True(t, ok)
}

func TestState_UsaElReloj(t *testing.T) {
	now := base
	d := scan.NewDebouncer(2*time.Second, scan.WithClock(func() time.Time { return now }))

	assert.Equal(t, scan.StateOpen, d.State())
	_, ok := d.OnScan(entity.ScanEvent{Code: "00010101", Symbology: entity.SymbologyCode128})
	require.True(t, ok)
	assert.Equal(t, scan.StateLocked, d.State())

	now = base.Add(2 * time.Second)
	assert.Equal(t, scan.StateOpen, d.State())
	assert.Equal(t, "open", d.State().String())
}

func TestReset_DesbloqueaInmediatamente(t *testing.T) {
	d := scan.NewDebouncer(2 * time.Second)
	_, _ = d.OnScan(ev("A", 0))
	d.Reset()
	_, ok := d.OnScan(ev("A", 100*time.Millisecond))
	assert.True(t, ok)
}

func TestRun_ConsumeCanal(t *testing.T) {
	d := scan.NewDebouncer(2 * time.Second)
	in := make(chan entity.ScanEvent, 4)
	out := make(chan string, 4)

	in <- ev("A", 0)
	in <- ev("A", 300*time.Millisecond)
	in <- ev("B", 2500*time.Millisecond)
	close(in)

	require.NoError(t, d.Run(context.Background(), in, out))
	close(out)

	var got []string
	for c := range out {
		got = append(got, c)
	}
	assert.Equal(t, []string{"A", "B"}, got)
}

func TestRun_CancelacionDeContexto(t *testing.T) {
	d := scan.NewDebouncer(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Run(ctx, make(chan entity.ScanEvent), make(chan string))
	assert.ErrorIs(t, err, context.Canceled)
}
