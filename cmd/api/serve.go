package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadp "crediasesor-backoffice/internal/adapter/http"
	"crediasesor-backoffice/internal/adapter/middleware"
	"crediasesor-backoffice/internal/adapter/realtime"
	"crediasesor-backoffice/internal/adapter/repository/mysql"
	"crediasesor-backoffice/internal/infrastructure/cache"
	"crediasesor-backoffice/internal/infrastructure/mailer"
	"crediasesor-backoffice/internal/infrastructure/reportstore"
	"crediasesor-backoffice/internal/infrastructure/scheduler"
	"crediasesor-backoffice/internal/usecase/auth"
	"crediasesor-backoffice/internal/usecase/chat"
	"crediasesor-backoffice/internal/usecase/commission"
	"crediasesor-backoffice/internal/usecase/reporting"
	"crediasesor-backoffice/internal/usecase/search"
	usersuc "crediasesor-backoffice/internal/usecase/user"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()
		return serve(cmd.Context(), a)
	},
}

// openRedis is optional: without REDIS_ADDR the API runs without idempotency
// replay and without the cross-instance period lock; the unique index on
// Comisions still rejects duplicate rows.
func openRedis(ctx context.Context, a *app) *redis.Client {
	if a.cfg.RedisAddr == "" {
		return nil
	}
	rdb, err := cache.OpenRedis(ctx, a.cfg.RedisAddr, a.cfg.RedisDB)
	if err != nil {
		a.log.Warn("redis unavailable, continuing without it", zap.String("addr", a.cfg.RedisAddr), zap.Error(err))
		return nil
	}
	return rdb
}

func newCommissionUsecase(a *app, rdb *redis.Client) *commission.Usecase {
	opts := []commission.Option{commission.WithLogger(a.log)}
	if rdb != nil {
		opts = append(opts, commission.WithLocker(cache.NewPeriodLock(rdb, 0)))
	}
	return commission.NewUsecase(
		mysql.NewGormUoW(a.db),
		mysql.NewCommissionRepository(a.db),
		reportstore.New(a.cfg.ReportsDir),
		opts...,
	)
}

// originHosts turns CORS origins (scheme://host:port) into the host patterns
// the websocket accept check expects.
func originHosts(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
			continue
		}
		out = append(out, o)
	}
	return out
}

func serve(ctx context.Context, a *app) error {
	if err := migrateUp(a); err != nil {
		return err
	}
	decimal.MarshalJSONWithoutQuotes = true

	rdb := openRedis(ctx, a)
	if rdb != nil {
		defer rdb.Close()
	}

	users := mysql.NewUserRepository(a.db)
	credits := mysql.NewCreditRepository(a.db)
	tokens := auth.NewTokens(a.cfg.JWTSecret, a.cfg.RefreshTokenSecret, a.cfg.AccessTokenTTL, a.cfg.RefreshTokenTTL)
	hub := realtime.NewHub(a.log)
	commissions := newCommissionUsecase(a, rdb)

	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}

	routes := httpadp.Routes{
		Health:      httpadp.NewHandler(sqlDB, a.cfg.AppEnv),
		Auth:        httpadp.NewAuthHandler(auth.NewUsecase(users, tokens, a.log), tokens, a.cfg.Production()),
		Users:       httpadp.NewUserHandler(usersuc.NewUsecase(mysql.NewGormUoW(a.db), users, a.log)),
		Commissions: httpadp.NewCommissionHandler(commissions),
		Chat:        httpadp.NewChatHandler(chat.NewUsecase(mysql.NewMessageRepository(a.db), users, hub, a.log), hub, originHosts(a.cfg.CORSOrigins)),
		Search:      httpadp.NewSearchHandler(search.NewUsecase(mysql.NewClientRepository(a.db), credits)),
		Reports:     httpadp.NewReportingHandler(reporting.NewUsecase(credits, mysql.NewAdvisorRepository(a.db))),

		Authenticate: middleware.Authenticate(tokens, users),
	}
	if rdb != nil {
		routes.Idempotency = middleware.Idempotency(rdb, a.cfg.IdempotencyTTL(), a.log)
	}

	e := httpadp.NewEcho(a.log, a.cfg.CORSOrigins)
	routes.Register(e)

	var sched *scheduler.Scheduler
	if a.cfg.SchedulerEnabled {
		opts := []scheduler.Option{}
		if a.cfg.MailEnabled() {
			opts = append(opts, scheduler.WithMailer(mailer.New(mailer.Config{
				Addr: a.cfg.SMTPAddr,
				User: a.cfg.SMTPUser,
				Pass: a.cfg.SMTPPass,
				From: a.cfg.SMTPFrom,
				To:   a.cfg.ReportMailTo,
			}, a.log)))
		}
		if sched, err = scheduler.New(a.cfg.SchedulerSpec, commissions, a.log, opts...); err != nil {
			return err
		}
		sched.Start()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + a.cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", zap.String("addr", addr), zap.String("env", a.cfg.AppEnv), zap.String("db", a.cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	return e.Shutdown(shutdownCtx)
}
