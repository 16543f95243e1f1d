package api

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"

	db "github.com/Amity808/crypt-bappgift/db/sqlc"
	"github.com/Amity808/crypt-bappgift/models"
	"github.com/Amity808/crypt-bappgift/providers"
	"github.com/Amity808/crypt-bappgift/providers/ai"
	"github.com/Amity808/crypt-bappgift/providers/chain"
	"github.com/Amity808/crypt-bappgift/services/draft"
	"github.com/Amity808/crypt-bappgift/services/monitoring/logging"
	service "github.com/Amity808/crypt-bappgift/services/notification"
	"github.com/Amity808/crypt-bappgift/services/redis"
	"github.com/Amity808/crypt-bappgift/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type Server struct {
	router   *gin.Engine
	queries  *db.Store
	config   *utils.Config
	logger   *logging.Logger
	redis    *redis.RedisService
	chain    chain.Client
	mailer   *service.Plunk
	provider *providers.ProviderService
	drafts   *draft.Service
}

func NewServer(envPath string) *Server {
	c, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	conn, err := sql.Open(c.DBDriver, utils.GetDBSource(c, c.DBName))
	if err != nil {
		panic(fmt.Sprintf("Could not load DB: %v", err))
	}

	m, err := migrate.New(
		"file://db/migrations",
		utils.GetDBSource(c, c.DBName),
	)
	if err != nil {
		log.Fatalf("Unable to instantiate the database schema migrator - %v", err)
	}

	if err := m.Up(); err != nil {
		if err != migrate.ErrNoChange {
			log.Fatalf("Unable to migrate up to the latest database schema - %v", err)
		}
	}

	store := db.NewStore(conn)
	g := gin.Default()
	l := logging.NewLogger()

	r, err := redis.NewRedisService(&redis.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
	})
	if err != nil {
		panic(fmt.Sprintf("Could not connect to Redis: %v", err))
	}

	var chainClient chain.Client
	if c.ChainRPC == "" {
		l.Warn("no chain rpc configured, using in-memory fake ledger")
		chainClient = chain.NewFakeClient(1)
	} else {
		chainClient, err = chain.NewEthClient(context.Background(), chain.EthClientConfig{
			RPCURL:          c.ChainRPC,
			PrivateKeyHex:   c.OperatorKey,
			ContractAddress: c.GiftContract,
		}, l)
		if err != nil {
			panic(fmt.Sprintf("Could not connect to chain: %v", err))
		}
	}

	p := providers.NewProviderService()

	// Set up AI message assist
	gp := ai.NewGeminiProvider()
	p.AddProvider(gp)

	// Debounced draft notifications land in the structured log, which is the
	// preview consumers' feed.
	drafts := draft.NewService(l, func(sessionID string, snapshot draft.Draft) {
		l.WithFields(logrus.Fields{
			"session_id": sessionID,
			"draft":      snapshot,
		}).Debug("draft updated")
	})

	g.Use(CORSMiddleware())
	g.Use(l.LoggingMiddleWare())

	return &Server{
		router:   g,
		queries:  store,
		config:   c,
		logger:   l,
		redis:    r,
		chain:    chainClient,
		mailer:   service.NewPlunk(c),
		provider: p,
		drafts:   drafts,
	}
}

func (s *Server) Start() {

	dr := models.SuccessResponse{
		Status:  "success",
		Message: "Welcome to CryptBappGift!",
		Version: utils.REVISION,
	}

	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dr)
	})

	/// Register Object Routers Below
	GiftCard{}.router(s)

	s.router.Run(fmt.Sprintf(":%v", s.config.ServerPort))
}
