package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	Inventory InventoryConfig
	Commit    CommitConfig
	Scan      ScanConfig
	Labels    LabelsConfig
	HTTP      HTTPConfig
	Log       LogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// InventoryConfig servicio remoto de inventario.
type InventoryConfig struct {
	BaseURL string
	Timeout time.Duration // por solicitud; la generación de PDF puede tardar
}

// CommitConfig política de reintentos para altas y movimientos.
type CommitConfig struct {
	MaxAttempts int
	Backoff     time.Duration // espera fija entre intentos
}

// ScanConfig antirrebote del lector.
type ScanConfig struct {
	Cooldown time.Duration
	// Stdin lee códigos de un lector tipo teclado por entrada estándar, uno por línea.
	Stdin bool
}

// LabelsConfig exportación de etiquetas.
type LabelsConfig struct {
	ExportPause time.Duration // pausa entre documentos en modo single
}

// HTTPConfig configuración del servidor HTTP local.
type HTTPConfig struct {
	Host string
	Port int
}

// LogConfig nivel de log.
type LogConfig struct {
	Level string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, INVENTORY_API_URL, COMMIT_BACKOFF, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "inventario-scanner"),
		},
		Inventory: InventoryConfig{
			BaseURL: strings.TrimRight(getString(v, "INVENTORY_API_URL", "http://localhost:8000"), "/"),
			Timeout: getDuration(v, "INVENTORY_API_TIMEOUT", 120*time.Second),
		},
		Commit: CommitConfig{
			MaxAttempts: getInt(v, "COMMIT_MAX_ATTEMPTS", 3),
			Backoff:     getDuration(v, "COMMIT_BACKOFF", 2*time.Second),
		},
		Scan: ScanConfig{
			Cooldown: getDuration(v, "SCAN_COOLDOWN", 2*time.Second),
			Stdin:    getBool(v, "SCAN_STDIN", false),
		},
		Labels: LabelsConfig{
			ExportPause: getDuration(v, "EXPORT_PAUSE", 500*time.Millisecond),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Inventory.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: INVENTORY_API_URL inválida: %q", c.Inventory.BaseURL)
	}
	if c.Commit.MaxAttempts < 1 {
		return fmt.Errorf("config: COMMIT_MAX_ATTEMPTS debe ser >= 1")
	}
	if c.Commit.Backoff < 0 || c.Scan.Cooldown < 0 || c.Labels.ExportPause < 0 {
		return fmt.Errorf("config: las duraciones no pueden ser negativas")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

// getDuration acepta "2s", "500ms" o milisegundos como entero ("2000").
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
