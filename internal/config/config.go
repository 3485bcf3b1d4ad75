package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Bling        Bling        `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	Operator     Operator     `mapstructure:",squash"`
	SnapshotSync SnapshotSync `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Bling concentra as credenciais OAuth2 do aplicativo registrado no Bling.
// O client_id/client_secret identificam o aplicativo; os tokens de cada
// tenant ficam no banco, nunca na configuração.
type Bling struct {
	APIURL         string        `mapstructure:"bling_api_url"`
	TokenURL       string        `mapstructure:"bling_token_url"`
	AuthorizeURL   string        `mapstructure:"bling_authorize_url"`
	RedirectURI    string        `mapstructure:"bling_redirect_uri"`
	ClientID       string        `mapstructure:"bling_client_id"`
	ClientSecret   string        `mapstructure:"bling_client_secret"`
	PageDelay      time.Duration `mapstructure:"bling_page_delay"`
	RequestTimeout time.Duration `mapstructure:"bling_request_timeout"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Operator define a conta administrativa criada a partir do ambiente.
// Ela não passa pelo cadastro de tenants e autentica contra estes valores.
// A senha entra já como hash bcrypt, nunca em texto claro.
type Operator struct {
	Username     string `mapstructure:"operator_username"`
	PasswordHash string `mapstructure:"operator_password_hash"`
}

type SnapshotSync struct {
	CronSchedule        string `mapstructure:"snapshot_sync_cron"`
	LookbackDays        int    `mapstructure:"snapshot_sync_lookback_days"`
	RequestDelaySeconds int    `mapstructure:"snapshot_sync_request_delay_seconds"`
	Enabled             bool   `mapstructure:"snapshot_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/strategyhub")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("BLING_API_URL", "https://api.bling.com.br/Api/v3")
	viper.SetDefault("BLING_TOKEN_URL", "https://api.bling.com.br/Api/v3/oauth/token")
	viper.SetDefault("BLING_AUTHORIZE_URL", "https://api.bling.com.br/Api/v3/oauth/authorize")
	viper.SetDefault("BLING_REDIRECT_URI", "")
	viper.SetDefault("BLING_CLIENT_ID", "")
	viper.SetDefault("BLING_CLIENT_SECRET", "")
	viper.SetDefault("BLING_PAGE_DELAY", "400ms") // Intervalo entre páginas para respeitar o rate limit do Bling
	viper.SetDefault("BLING_REQUEST_TIMEOUT", "30s")

	viper.SetDefault("AUTH_SECRET", "")

	viper.SetDefault("OPERATOR_USERNAME", "admin")
	viper.SetDefault("OPERATOR_PASSWORD_HASH", "")

	// Defaults para sincronização de snapshots de indicadores
	viper.SetDefault("SNAPSHOT_SYNC_CRON", "0 5 * * *")        // Todos os dias às 5h da manhã
	viper.SetDefault("SNAPSHOT_SYNC_LOOKBACK_DAYS", 90)        // Janela de análise de vendas
	viper.SetDefault("SNAPSHOT_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre tenants
	viper.SetDefault("SNAPSHOT_SYNC_ENABLED", false)           // Habilitar sincronização de snapshots

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate falha na inicialização quando faltam segredos obrigatórios.
// Descobrir credencial ausente no primeiro refresh de token, em plena
// requisição de dashboard, é tarde demais.
func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return errors.New("config: AUTH_SECRET é obrigatório")
	}

	if c.Bling.ClientID == "" || c.Bling.ClientSecret == "" {
		return errors.New("config: BLING_CLIENT_ID e BLING_CLIENT_SECRET são obrigatórios")
	}

	if c.Operator.PasswordHash == "" {
		return errors.New("config: OPERATOR_PASSWORD_HASH é obrigatório")
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
