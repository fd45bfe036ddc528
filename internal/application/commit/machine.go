package commit

import (
	"errors"
	"time"

	"github.com/jhoicas/Inventario-scanner/internal/domain"
)

const (
	// DefaultMaxAttempts techo de intentos por secuencia de commit.
	DefaultMaxAttempts = 3
	// DefaultBackoff espera fija entre intentos (no exponencial).
	DefaultBackoff = 2000 * time.Millisecond
)

// ErrSequenceClosed se devuelve al intentar avanzar una secuencia terminada.
var ErrSequenceClosed = errors.New("commit: la secuencia ya terminó")

// Policy política de reintentos compartida por alta de producto y registro de movimientos.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultPolicy 3 intentos con 2 s de espera.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, Backoff: DefaultBackoff}
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.Backoff < 0 {
		p.Backoff = DefaultBackoff
	}
	return p
}

// Outcome resultado de un intento.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "pending"
	}
}

// Attempt un intento dentro de la secuencia. Ordinal va de 1 a MaxAttempts.
type Attempt struct {
	Ordinal int
	Outcome Outcome
	Err     error
}

// Phase fase de la máquina de estados.
type Phase int

const (
	PhaseAttempting Phase = iota
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "attempting"
	}
}

// Step transición producida por Record. Wait solo aplica en PhaseAttempting.
type Step struct {
	Phase Phase
	Next  int
	Wait  time.Duration
}

// Machine máquina de estados acotada:
//
//	Attempting(n) -> Succeeded | Attempting(n+1) | Failed
//
// No es segura para uso concurrente; cada secuencia tiene la suya.
type Machine struct {
	policy   Policy
	phase    Phase
	attempts []Attempt
}

// NewMachine crea la máquina en Attempting(1) sin intentos iniciados.
func NewMachine(p Policy) *Machine {
	p = p.normalized()
	return &Machine{policy: p, attempts: make([]Attempt, 0, p.MaxAttempts)}
}

// Begin abre el siguiente intento y devuelve su ordinal.
func (m *Machine) Begin() (int, error) {
	if m.phase != PhaseAttempting {
		return 0, ErrSequenceClosed
	}
	if n := len(m.attempts); n > 0 && m.attempts[n-1].Outcome == OutcomePending {
		return m.attempts[n-1].Ordinal, nil
	}
	if len(m.attempts) >= m.policy.MaxAttempts {
		m.phase = PhaseFailed
		return 0, ErrSequenceClosed
	}
	ordinal := len(m.attempts) + 1
	m.attempts = append(m.attempts, Attempt{Ordinal: ordinal, Outcome: OutcomePending})
	return ordinal, nil
}

// Record cierra el intento en curso con err (nil = éxito) y decide la transición.
// Las validaciones locales pasan directo a Failed.
func (m *Machine) Record(err error) Step {
	n := len(m.attempts)
	if m.phase != PhaseAttempting || n == 0 || m.attempts[n-1].Outcome != OutcomePending {
		return Step{Phase: m.phase}
	}
	cur := &m.attempts[n-1]
	if err == nil {
		cur.Outcome = OutcomeSuccess
		m.phase = PhaseSucceeded
		return Step{Phase: m.phase}
	}
	cur.Outcome = OutcomeFailure
	cur.Err = err
	if !domain.IsRetryable(err) || cur.Ordinal >= m.policy.MaxAttempts {
		m.phase = PhaseFailed
		return Step{Phase: m.phase}
	}
	return Step{Phase: PhaseAttempting, Next: cur.Ordinal + 1, Wait: m.policy.Backoff}
}

// Abort termina la secuencia sin más intentos (p. ej. contexto cancelado durante la espera).
func (m *Machine) Abort() {
	if m.phase == PhaseAttempting {
		m.phase = PhaseFailed
	}
}

// Phase fase actual.
func (m *Machine) Phase() Phase { return m.phase }

// Attempts copia de los intentos realizados.
func (m *Machine) Attempts() []Attempt {
	out := make([]Attempt, len(m.attempts))
	copy(out, m.attempts)
	return out
}

// LastErr causa del último intento fallido, nil si no hubo.
func (m *Machine) LastErr() error {
	for i := len(m.attempts) - 1; i >= 0; i-- {
		if m.attempts[i].Err != nil {
			return m.attempts[i].Err
		}
	}
	return nil
}
