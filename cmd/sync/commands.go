package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/repository"
	"github.com/vfg2006/campaign-metrics-sync/internal/api"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
	"github.com/vfg2006/campaign-metrics-sync/internal/scheduler"
	"github.com/vfg2006/campaign-metrics-sync/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-metrics-sync/internal/usecases/linking"
	"github.com/vfg2006/campaign-metrics-sync/internal/usecases/syncing"
	"github.com/vfg2006/campaign-metrics-sync/pkg/utils"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Executa uma sincronização completa agora",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := runOptionsFromFlags(cmd)
			if err != nil {
				return err
			}

			a := bootstrap(cmd.Context())
			defer a.conn.Close()

			report, err := a.syncer.Run(cmd.Context(), opts)
			if report == nil {
				return err
			}

			writeReport(cmd, report)
			return err
		},
	}

	cmd.Flags().String("client", "", "Sincroniza só os clientes cujo nome contém o texto")
	cmd.Flags().String("since", "", "Início da janela (YYYY-MM-DD)")
	cmd.Flags().String("until", "", "Fim da janela (YYYY-MM-DD)")
	cmd.Flags().Bool("json", false, "Imprime o relatório em JSON")

	return cmd
}

func runOptionsFromFlags(cmd *cobra.Command) (syncing.RunOptions, error) {
	client, _ := cmd.Flags().GetString("client")
	rawSince, _ := cmd.Flags().GetString("since")
	rawUntil, _ := cmd.Flags().GetString("until")

	since, err := utils.ParseDate(rawSince)
	if err != nil {
		return syncing.RunOptions{}, fmt.Errorf("--since inválido: %w", err)
	}
	until, err := utils.ParseDate(rawUntil)
	if err != nil {
		return syncing.RunOptions{}, fmt.Errorf("--until inválido: %w", err)
	}
	if since != nil && until != nil && since.After(*until) {
		return syncing.RunOptions{}, fmt.Errorf("--since deve ser anterior a --until")
	}

	// bootstrap já validou o token antes da execução
	return syncing.RunOptions{ClientFilter: client, Since: since, Until: until, SkipTokenCheck: true}, nil
}

// writeReport imprime o relatório em texto ou, com --json, em JSON indentado
func writeReport(cmd *cobra.Command, report *domain.SyncReport) {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJson(report))
		return
	}

	printReport(cmd, report)
}

func printReport(cmd *cobra.Command, report *domain.SyncReport) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Execução %s (%s)\n", report.RunID, report.Duration().Round(time.Millisecond))
	for _, client := range report.Clients {
		fmt.Fprintf(out, "  [%s] %s: %d campanhas, %d métricas gravadas, %d falhas",
			client.Severity, client.ClientName, client.CampaignsProcessed, client.MetricsWritten, client.CampaignsFailed+client.MetricsFailed)
		if client.Error != "" {
			fmt.Fprintf(out, " (%s)", client.Error)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Total: %d cliente(s), %d com erro, %d métricas gravadas\n",
		len(report.Clients), report.ClientsFailed, report.MetricsWritten)
	if report.Aborted {
		fmt.Fprintln(out, "Execução interrompida")
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Inicia o agendador e a API administrativa",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a := bootstrap(ctx)
			defer a.conn.Close()

			syncService := scheduler.NewMetricsSyncService(a.syncer, a.cfg)
			if err := syncService.Start(ctx); err != nil {
				return err
			}

			server := api.New(a.cfg, api.Dependencies{
				DB:            a.conn,
				Authenticator: authenticating.NewService(a.cfg),
				SyncRunner:    syncService,
				ClientRepo:    a.clientRepo,
				AuditRepo:     a.auditRepo,
			})

			return server.Run(ctx)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Aplica ou reverte as migrações do schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			conn := pgconn(cmd.Context(), cfg.Database)
			defer conn.Close()

			if args[0] == "down" {
				steps, _ := cmd.Flags().GetInt("steps")
				return postgres.MigrateDown(conn.DB, steps)
			}
			return postgres.MigrateUp(conn.DB)
		},
	}

	cmd.Flags().Int("steps", 1, "Quantidade de migrações a reverter (down)")
	return cmd
}

func newClientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clients",
		Short: "Lista os clientes e o resumo de 30 dias da última sincronização",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			conn := pgconn(cmd.Context(), cfg.Database)
			defer conn.Close()

			clients, err := repository.NewClientRepository(conn).ListAll(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, client := range clients {
				status := "ativo"
				if !client.Active {
					status = "inativo"
				}

				lastSync := "nunca"
				if client.Summary.LastSyncAt != nil {
					lastSync = client.Summary.LastSyncAt.Format(time.RFC3339)
				}

				fmt.Fprintf(out, "%s\t%s\t%s\t%s\talcance=%d impressões=%d gasto=%.2f última=%s\n",
					client.ID, client.Name, client.AdAccountRef, status,
					client.Summary.Reach30d, client.Summary.Impressions30d, client.Summary.Spend30d, lastSync)
			}
			return nil
		},
	}
}

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Mostra os registros mais recentes do audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			cfg := loadConfig()
			conn := pgconn(cmd.Context(), cfg.Database)
			defer conn.Close()

			entries, err := repository.NewAuditLogRepository(conn).ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, entry := range entries {
				clientID := "-"
				if entry.ClientID != nil {
					clientID = *entry.ClientID
				}
				fmt.Fprintf(out, "%s\t%-7s\t%s\t%s",
					entry.CreatedAt.Format(time.RFC3339), strings.ToUpper(string(entry.Severity)), clientID, entry.Message)
				if len(entry.Context) > 0 {
					fmt.Fprintf(out, "\t%s", utils.CompactJson(entry.Context))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 50, "Quantidade de registros")
	return cmd
}

func newAccessLinksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "access-links",
		Short: "Gera os links de acesso ao painel dos clientes ativos",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			conn := pgconn(cmd.Context(), cfg.Database)
			defer conn.Close()

			service := linking.NewService(repository.NewClientRepository(conn), cfg.App.DashboardURL)
			links, err := service.EnsureAccessLinks(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			generated := 0
			for _, link := range links {
				marker := " "
				if link.Generated {
					marker = "*"
					generated++
				}
				fmt.Fprintf(out, "%s %s\t%s\n", marker, link.ClientName, link.URL)
			}

			logrus.WithFields(logrus.Fields{
				"clients":   len(links),
				"generated": generated,
			}).Info("Links de acesso atualizados")
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Gera um token de operador para scripts que usam a API",
		RunE: func(cmd *cobra.Command, args []string) error {
			operator, _ := cmd.Flags().GetString("operator")
			role, _ := cmd.Flags().GetString("role")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			roleID := domain.RoleReader
			switch role {
			case "admin":
				roleID = domain.RoleAdmin
			case "reader":
			default:
				return fmt.Errorf("perfil inválido %q, use admin ou reader", role)
			}

			token, err := authenticating.NewService(loadConfig()).IssueToken(operator, roleID, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().String("operator", "script", "Nome do operador gravado no token")
	cmd.Flags().String("role", "reader", "Perfil do token: admin ou reader")
	cmd.Flags().Duration("ttl", 24*time.Hour, "Validade do token")
	return cmd
}
