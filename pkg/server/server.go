package server

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/lsv/pkg/lsv"
	"github.com/charlie0129/lsv/pkg/plot"
	"github.com/charlie0129/lsv/pkg/version"
)

// Server serves one analyzed batch. The batch is read-only once the server
// is created.
type Server struct {
	batch *lsv.Batch
	html  []byte
}

func New(b *lsv.Batch) (*Server, error) {
	var buf bytes.Buffer
	if err := plot.RenderHTML(&buf, b); err != nil {
		return nil, err
	}
	return &Server{batch: b, html: buf.Bytes()}, nil
}

func (s *Server) Routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/", s.getReport)
	router.GET("/api/batch", s.getBatch)
	router.GET("/api/files", s.getFiles)
	router.GET("/api/results/:file", s.getResult)
	router.GET("/version", getVersion)

	return router
}

func (s *Server) getReport(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", s.html)
}

func (s *Server) getBatch(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.batch)
}

func (s *Server) getFiles(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.batch.Selection)
}

func (s *Server) getResult(c *gin.Context) {
	name := c.Param("file")
	for _, r := range s.batch.Results {
		if r.File == name {
			c.IndentedJSON(http.StatusOK, r)
			return
		}
	}
	c.IndentedJSON(http.StatusNotFound, "no result for "+name)
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}

// Run listens on addr until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logrus.Infof("report available at http://%s/", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)

	select {
	case err, ok := <-errc:
		if ok {
			return err
		}
		return nil
	case sig := <-sigc:
		logrus.Infof("caught signal \"%s\": shutting down.", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
		return err
	}

	logrus.Info("exiting")
	return nil
}
