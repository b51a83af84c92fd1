package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/kodekulture/contexto-server/embedding"
	"github.com/kodekulture/contexto-server/handler"
	"github.com/kodekulture/contexto-server/handler/token"
	"github.com/kodekulture/contexto-server/internal/config"
	"github.com/kodekulture/contexto-server/repository/badgr"
	"github.com/kodekulture/contexto-server/repository/postgres"
	"github.com/kodekulture/contexto-server/service"
)

const tokenValidity = 24 * time.Hour

func main() {
	done := make(chan struct{})

	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	lvl, err := zerolog.ParseLevel(config.GetOrDefault("LOG_LEVEL", "debug"))
	if err == nil {
		zerolog.SetGlobalLevel(lvl)
		zlog.WithLevel(lvl).Msgf("Setting log level to %v", lvl)
	}

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := getConnection(appCtx)
	if err != nil {
		log.Fatal(err)
	}
	cache, err := getCacher()
	if err != nil {
		log.Fatal(err)
	}
	provider, err := getProvider(cache)
	if err != nil {
		log.Fatal(err)
	}
	srv, err := service.New(appCtx, provider,
		postgres.NewVocabRepo(db),
		postgres.NewSessionRepo(db),
		postgres.NewPlayerRepo(db),
		badgr.New(cache),
	)
	if err != nil {
		log.Fatal(err)
	}
	tokener, err := token.New([]byte(config.Get("PASETO_KEY")), "", tokenValidity)
	if err != nil {
		log.Fatal(err)
	}
	h := handler.New(srv, tokener)
	go shutdown(h, srv, done)
	log.Printf("server started on port: %s", config.Get("PORT"))
	if err = h.Start(config.Get("PORT")); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	<-done
}

func getConnection(ctx context.Context) (*pgxpool.Pool, error) {
	conn, err := pgxpool.New(ctx, config.Get("POSTGRES_URL"))
	if err != nil {
		return nil, err
	}
	if err = conn.Ping(ctx); err != nil {
		return nil, errors.Join(err, errors.New("failed to ping database"))
	}
	return conn, nil
}

func getCacher() (*badger.DB, error) {
	// Created if it doesn't exist yet.
	db, err := badger.Open(badger.DefaultOptions(config.Get("BADGER_PATH")))
	if err != nil {
		return nil, err
	}
	return db, nil
}

func getProvider(cache *badger.DB) (embedding.Provider, error) {
	dim, err := strconv.Atoi(config.GetOrDefault("EMBEDDING_DIM", strconv.Itoa(embedding.DefaultDimension)))
	if err != nil {
		return nil, err
	}
	inner, err := embedding.NewSubword(dim)
	if err != nil {
		return nil, err
	}
	return embedding.NewCached(inner, badgr.NewVectorStore(cache)), nil
}

func shutdown(h *handler.Handler, srv *service.Service, done chan<- struct{}) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-sig
	log.Println("shutdown started")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	srv.Stop(ctx)
	if err := h.Stop(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("shutdown complete")
	close(done)
}
