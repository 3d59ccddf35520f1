package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/midani-47/Message-Queues/internal/runtime"
	"github.com/midani-47/Message-Queues/internal/server/http/controllers"
)

// Server hosts the broker's REST surface.
type Server struct {
	rt     *runtime.Runtime
	logger *zap.Logger
	srv    *http.Server
	lis    net.Listener
}

// New builds a server around the runtime. The gin engine carries request
// logging, panic recovery, and CORS; all routes come from the controller
// registry.
func New(rt *runtime.Runtime, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{rt: rt, logger: logger.Named("http")}
	s.srv = &http.Server{Handler: s.buildRouter()}
	return s
}

// Handler exposes the engine so tests can drive it through httptest.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(s.logger, true))
	router.Use(cors.Default())

	reg := controllers.NewControllerRegistry(s.rt)
	reg.RegisterAllRoutes(router)
	return router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	s.logger.Info("http listening", zap.String("addr", l.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Close releases the listener without waiting for in-flight requests.
func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}
