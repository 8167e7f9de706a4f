package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/Bridgeless-Project/treasury-svc/internal/api/ctx"
	"github.com/Bridgeless-Project/treasury-svc/internal/api/health"
	srvhttp "github.com/Bridgeless-Project/treasury-svc/internal/api/http"
	"github.com/Bridgeless-Project/treasury-svc/internal/api/middlewares"
	"github.com/Bridgeless-Project/treasury-svc/internal/core"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/logan/v3"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const (
	healthCheckPeriod = 10 * time.Second
	checkTimeout      = 5 * time.Second
)

type Server struct {
	grpc net.Listener
	http net.Listener

	checker      *health.Checker
	logger       *logan.Entry
	ctxExtenders []func(context.Context) context.Context
}

// NewServer creates the HTTP and gRPC API servers of the ledger.
// Withdrawals submitted through the API are executed by the executor account.
func NewServer(
	grpc net.Listener,
	http net.Listener,
	ledger *ledger.Ledger,
	executor *core.Account,
	logger *logan.Entry,
) *Server {
	checker := NewHealthChecker(ledger)

	return &Server{
		grpc:    grpc,
		http:    http,
		checker: checker,
		logger:  logger,

		ctxExtenders: []func(context.Context) context.Context{
			ctx.LoggerProvider(logger),
			ctx.LedgerProvider(ledger),
			ctx.ExecutorProvider(executor),
			ctx.HealthCheckerProvider(checker),
		},
	}
}

// NewHealthChecker checks that the state store is reachable and the ledger
// accounting is consistent.
func NewHealthChecker(l *ledger.Ledger) *health.Checker {
	return health.NewChecker(map[string]health.Checkable{
		"database": health.CheckFunc(func() error {
			_, err := l.TotalSupply()
			return errors.Wrap(err, "failed to read total supply")
		}),
		"solvency": health.CheckFunc(func() error {
			checkCtx, cancel := context.WithTimeout(context.Background(), checkTimeout)
			defer cancel()

			_, err := l.CheckSolvency(checkCtx)
			return err
		}),
	})
}

func (s *Server) RunGRPC(ctx context.Context) error {
	srv, healthSrv := s.grpcServer()

	go s.watchHealth(ctx, healthSrv)

	// graceful shutdown
	go func() {
		<-ctx.Done()
		healthSrv.Shutdown()
		srv.GracefulStop()
		s.logger.Info("grpc serving stopped: context canceled")
	}()

	s.logger.Info("grpc serving started")
	return srv.Serve(s.grpc)
}

func (s *Server) RunHTTP(ctxt context.Context) error {
	srv := &http.Server{Handler: s.httpRouter(ctxt)}

	// graceful shutdown
	go func() {
		<-ctxt.Done()
		shutdownDeadline, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownDeadline); err != nil {
			s.logger.WithError(err).Error("failed to shutdown http server")
		}
		s.logger.Info("http serving stopped: context canceled")
	}()

	s.logger.Info("http serving started")
	if err := srv.Serve(s.http); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) httpRouter(ctxt context.Context) http.Handler {
	router := chi.NewRouter()
	router.Use(
		ape.LoganMiddleware(s.logger),
		ape.RecoverMiddleware(s.logger),
		ape.CtxMiddleware(s.ctxExtenders...),
	)

	router.Get("/health", srvhttp.Health)
	router.Route("/v1", func(r chi.Router) {
		r.Get("/domain", srvhttp.Domain)
		r.Get("/supply", srvhttp.Supply)
		r.Get("/balances/{address}", srvhttp.Balance)
		r.Get("/allowances/{owner}/{spender}", srvhttp.Allowance)
		r.Get("/roles/{role}/members", srvhttp.RoleMembers)
		r.Get("/roles/{role}/{address}", srvhttp.Role)
		r.Get("/nonces/{address}", srvhttp.Nonce)
		r.Get("/requests/{request_id}", srvhttp.Request)
		r.Get("/events", srvhttp.Events)
		r.Post("/withdrawals", srvhttp.SubmitWithdrawal)
	})
	router.With(middlewares.HijackedConnectionCloser(ctxt)).Get("/ws/events", srvhttp.EventsWs)

	return router
}

func (s *Server) grpcServer() (*grpc.Server, *grpchealth.Server) {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middlewares.LoggerInterceptor(s.logger),
			// RecoveryInterceptor should be the last one
			middlewares.RecoveryInterceptor(s.logger),
		),
	)

	healthSrv := grpchealth.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)
	reflection.Register(srv)

	return srv, healthSrv
}

// watchHealth mirrors the health checker into the gRPC health service.
// The empty service name reports the overall status.
func (s *Server) watchHealth(ctx context.Context, healthSrv *grpchealth.Server) {
	ticker := time.NewTicker(healthCheckPeriod)
	defer ticker.Stop()

	for {
		response := s.checker.Check()

		healthSrv.SetServingStatus("", servingStatus(response.Ok))
		for name, status := range response.Statuses {
			healthSrv.SetServingStatus(name, servingStatus(status.Ok))
			if !status.Ok {
				s.logger.WithField("component", name).Warn(status.Error)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func servingStatus(ok bool) healthpb.HealthCheckResponse_ServingStatus {
	if ok {
		return healthpb.HealthCheckResponse_SERVING
	}

	return healthpb.HealthCheckResponse_NOT_SERVING
}
