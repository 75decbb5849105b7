package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/gymbooking/api"
	"github.com/Domenick1991/gymbooking/config"
	ledgerapi "github.com/Domenick1991/gymbooking/internal/api/ledger_service_api"
	"github.com/Domenick1991/gymbooking/internal/auth"
	"github.com/Domenick1991/gymbooking/internal/service/booking"
	"github.com/Domenick1991/gymbooking/internal/service/sessions"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
}

// Run starts the gRPC and HTTP servers and blocks until context is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, sessionSvc sessions.SessionUseCase, bookingSvc booking.BookingUseCase, tokens *auth.TokenManager) error {
	s := newServers(cfg, sessionSvc, bookingSvc, tokens)

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, sessionSvc sessions.SessionUseCase, bookingSvc booking.BookingUseCase, tokens *auth.TokenManager) *Servers {
	grpcSrv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		ledgerapi.ErrorInterceptor,
		ledgerapi.AuthInterceptor(tokens),
	))
	ledgerapi.RegisterLedgerServiceServer(grpcSrv, ledgerapi.NewServer(sessionSvc, bookingSvc))
	reflection.Register(grpcSrv)

	router := api.NewRouter(api.RouterDeps{
		Sessions:    sessionSvc,
		Bookings:    bookingSvc,
		Tokens:      tokens,
		ServiceName: cfg.Tracing.ServiceName,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: httpSrv,
	}
}
