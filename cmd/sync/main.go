package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/integrator/meta"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/repository"
	"github.com/vfg2006/campaign-metrics-sync/internal/config"
	"github.com/vfg2006/campaign-metrics-sync/internal/usecases/reconciling"
	"github.com/vfg2006/campaign-metrics-sync/internal/usecases/syncing"
)

var rootCmd = &cobra.Command{
	Use:   "campaign-metrics-sync",
	Short: "Sincroniza métricas diárias de campanhas da Meta Ads para o PostgreSQL",
	Long: `campaign-metrics-sync busca as campanhas e os insights diários de cada cliente
ativo na Graph API da Meta, classifica o resultado de cada dia e grava as métricas
de forma idempotente no PostgreSQL, registrando tudo no audit log.

Exemplos:
  campaign-metrics-sync migrate up
  campaign-metrics-sync sync --client "ótica centro"
  campaign-metrics-sync sync --since 2024-03-01 --until 2024-03-31
  campaign-metrics-sync serve
  campaign-metrics-sync logs --limit 20`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogger()
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(
		newSyncCmd(),
		newServeCmd(),
		newMigrateCmd(),
		newClientsCmd(),
		newLogsCmd(),
		newAccessLinksCmd(),
		newTokenCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// loadConfig carrega a configuração e aplica o nível de log
func loadConfig() *config.Config {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Debugf("Nível de log configurado para: %s", logLevel)

	return cfg
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// app agrupa as dependências montadas para os comandos que sincronizam
type app struct {
	cfg        *config.Config
	conn       *postgres.Connection
	clientRepo repository.ClientRepository
	auditRepo  repository.AuditLogRepository
	syncer     *syncing.Service
}

// bootstrap valida a configuração, conecta ao banco e confere o token da Meta.
// Qualquer falha aqui encerra o processo antes de tocar em um cliente.
func bootstrap(ctx context.Context) *app {
	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("Configuração inválida")
	}

	conn := pgconn(ctx, cfg.Database)

	metaClient := metaclient.NewClient(cfg, metaclient.NewFetcher(cfg))
	metaIntegrator := meta.New(cfg, metaClient)

	if err := metaIntegrator.VerifyToken(ctx); err != nil && metaclient.IsCredentialError(err) {
		conn.Close()
		logrus.WithError(err).Fatal("Token da Meta inválido ou expirado")
	}

	clientRepo := repository.NewClientRepository(conn)
	auditRepo := repository.NewAuditLogRepository(conn)
	writer := reconciling.NewService(repository.NewCampaignMetricRepository(conn), cfg.MetricsSync.BatchSize)

	return &app{
		cfg:        cfg,
		conn:       conn,
		clientRepo: clientRepo,
		auditRepo:  auditRepo,
		syncer:     syncing.NewService(metaIntegrator, writer, clientRepo, auditRepo),
	}
}
